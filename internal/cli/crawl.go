package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contentbuild/internal/a11y"
	"contentbuild/internal/reports"
	"contentbuild/internal/sitemap"
)

func (a *app) crawlCommand() *cobra.Command {
	var (
		sitemapURL string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run accessibility checks over every page in the sitemap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if sitemapURL == "" {
				sitemapURL = strings.TrimSuffix(a.cfg.BaseURL, "/") + a.cfg.Crawl.SitemapPath
			}
			plan, err := sitemap.LoadFrom(ctx, a.fetcher, sitemapURL, a.cfg.BaseURL)
			if err != nil {
				return err
			}
			if limit > 0 && len(plan.URLs) > limit {
				plan.URLs = plan.URLs[:limit]
			}
			a.log.Info("sitemap loaded", zap.String("sitemap", sitemapURL), zap.Int("pages", len(plan.URLs)))

			store, err := reports.Open(ctx, a.cfg.Reports)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			checker, closer, err := a.newChecker(ctx, a.cfg.Crawl, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			runner := &a11y.Runner{
				Checker:     checker,
				Concurrency: a.cfg.Crawl.Concurrency,
				Segments:    a.cfg.Crawl.Segments,
				BaseURL:     a.cfg.BaseURL,
				Metrics:     a.metrics,
				Logger:      a.log,
				Now:         a.now,
			}
			report, runErr := runner.Run(ctx, plan)
			// An interrupted crawl still keeps the pages it checked.
			if err := store.Save(context.WithoutCancel(ctx), report); err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			printReport(a, report)
			if runErr != nil {
				a.log.Warn("crawl interrupted", zap.String("report_id", report.ID.String()), zap.Int("pages", len(report.Results)))
				return runErr
			}
			if len(report.Failures()) > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sitemapURL, "sitemap", "", "sitemap URL (default <base_url><crawl.sitemap_path>)")
	cmd.Flags().IntVar(&limit, "limit", 0, "check at most this many pages")
	return cmd
}

func printReport(a *app, report a11y.Report) {
	for _, res := range report.Failures() {
		if res.Err != "" {
			fmt.Fprintf(a.stdout, "ERROR %s: %s\n", res.URL, res.Err)
			continue
		}
		for _, v := range res.Violations {
			fmt.Fprintf(a.stdout, "FAIL  %s [%s] %s (%s, %d nodes)\n", res.URL, res.Ruleset, v.ID, v.Impact, len(v.Nodes))
		}
	}
	fmt.Fprintf(a.stdout, "report %s: %d pages, %d failing, %d violations\n",
		report.ID, len(report.Results), len(report.Failures()), report.ViolationCount())
}
