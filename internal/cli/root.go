// Package cli wires the contentbuild commands: export validation, feature
// flags, GraphQL queries, template rendering, the accessibility crawl and
// asset publishing.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"contentbuild/internal/a11y"
	"contentbuild/internal/config"
	"contentbuild/internal/logging"
	"contentbuild/internal/metrics"
	"contentbuild/internal/sitemap"
)

// app carries the state shared by every command for one invocation.
type app struct {
	stdout, stderr io.Writer

	configPath string
	buildtype  string
	verbose    bool

	cfg     config.Config
	log     *zap.Logger
	metrics *metrics.Collector

	// Seams for tests.
	fetcher    sitemap.Fetcher
	newChecker func(ctx context.Context, cfg config.Crawl, log *zap.Logger) (a11y.Checker, io.Closer, error)
	now        func() time.Time
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		fetcher:    sitemap.HTTPFetcher{},
		newChecker: newRodChecker,
		now:        time.Now,
	}
}

func newRodChecker(ctx context.Context, cfg config.Crawl, log *zap.Logger) (a11y.Checker, io.Closer, error) {
	c, err := a11y.NewRodChecker(ctx, a11y.RodConfig{
		BrowserBin:        cfg.BrowserBin,
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout,
		AxeScript:         cfg.AxeScript,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return c, c, nil
}

// Execute runs the command line and returns the process exit code. ctx is
// handed to every command; cancelling it stops crawls, watches and uploads.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if a.log != nil {
		err = multierr.Append(err, a.teardown())
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "contentbuild: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "contentbuild",
		Short:         "CMS content build tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", "contentbuild.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.buildtype, "buildtype", "", "build type (localhost, vagovdev, vagovstaging, vagovprod)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.validateCommand(),
		a.flagsCommand(),
		a.queryCommand(),
		a.renderCommand(),
		a.crawlCommand(),
		a.publishCommand(),
		a.reportsCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.buildtype != "" && a.buildtype != cfg.BuildType {
		bucket, err := config.AssetBucket(a.buildtype)
		if err != nil {
			return err
		}
		if prev, _ := config.AssetBucket(cfg.BuildType); cfg.Blob.PublicBaseURL == prev {
			cfg.Blob.PublicBaseURL = bucket
		}
		cfg.BuildType = a.buildtype
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("buildtype", cfg.BuildType))
	a.metrics = metrics.NewCollector()
	return nil
}

// teardown writes the metrics textfile and flushes the logger. It runs after
// every command that got past setup, failed or not.
func (a *app) teardown() error {
	err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile)
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

// errFailed marks a command whose findings were already reported.
var errFailed = errors.New("checks failed")
