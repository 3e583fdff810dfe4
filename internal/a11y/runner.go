package a11y

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"contentbuild/internal/metrics"
	"contentbuild/internal/sitemap"
)

// Runner checks every page of a plan. Segments run in parallel up to
// Concurrency; pages within a segment run in order.
type Runner struct {
	Checker     Checker
	Concurrency int
	Segments    int
	BaseURL     string
	Metrics     *metrics.Collector
	Logger      *zap.Logger
	Now         func() time.Time
}

// Run checks plan.URLs and returns the report. A page that fails to load is
// recorded with Err and does not stop the others; only cancellation of ctx
// ends the run early, in which case the partial report is returned with the
// context error.
func (r *Runner) Run(ctx context.Context, plan sitemap.Plan) (Report, error) {
	if r.Checker == nil {
		return Report{}, errors.New("a11y: runner has no checker")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	report := Report{
		ID:        uuid.New(),
		BaseURL:   r.BaseURL,
		StartedAt: now(),
		Results:   make([]Result, len(plan.URLs)),
	}

	segments := sitemap.Segment(plan.URLs, r.Segments)
	g, gctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	offset := 0
	for _, segment := range segments {
		segment, base := segment, offset
		offset += len(segment)
		g.Go(func() error {
			for i, url := range segment {
				if err := gctx.Err(); err != nil {
					return err
				}
				report.Results[base+i] = r.checkOne(gctx, log, url, plan.Only508)
			}
			return nil
		})
	}
	err := g.Wait()
	report.FinishedAt = now()
	if err != nil {
		report.Results = completed(report.Results)
		return report, err
	}
	log.Info("crawl finished",
		zap.String("report_id", report.ID.String()),
		zap.Int("pages", len(report.Results)),
		zap.Int("failures", len(report.Failures())),
		zap.Int("violations", report.ViolationCount()))
	return report, nil
}

func (r *Runner) checkOne(ctx context.Context, log *zap.Logger, url string, only508 []string) Result {
	opts := RulesFor(url, only508)
	start := time.Now()
	res, err := r.Checker.Check(ctx, url, opts)
	elapsed := time.Since(start)

	res.URL = url
	res.Ruleset = opts.Ruleset()
	res.Duration = elapsed
	if err != nil {
		res.Err = err.Error()
		log.Warn("page check failed", zap.String("url", url), zap.Duration("duration", elapsed), zap.Error(err))
	} else {
		log.Info("page checked",
			zap.String("url", url),
			zap.String("ruleset", res.Ruleset),
			zap.Duration("duration", elapsed),
			zap.Int("violations", len(res.Violations)))
	}
	r.Metrics.PageChecked(res.Ruleset, err != nil, elapsed)
	for _, v := range res.Violations {
		r.Metrics.ViolationFound(v.Impact)
	}
	return res
}

// completed drops slots left empty by a cancelled run.
func completed(results []Result) []Result {
	out := results[:0]
	for _, res := range results {
		if res.URL != "" {
			out = append(out, res)
		}
	}
	return out
}
