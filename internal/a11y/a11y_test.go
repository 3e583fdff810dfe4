package a11y

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contentbuild/internal/metrics"
	"contentbuild/internal/sitemap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeChecker struct {
	mu       sync.Mutex
	calls    map[string]Options
	fail     map[string]error
	found    map[string][]Violation
	inFlight int
	peak     int
	delay    time.Duration
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{calls: map[string]Options{}, fail: map[string]error{}, found: map[string][]Violation{}}
}

func (f *fakeChecker) Check(ctx context.Context, url string, opts Options) (Result, error) {
	f.mu.Lock()
	f.calls[url] = opts
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	err, violations := f.fail[url], f.found[url]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Violations: violations}, nil
}

func TestRulesFor(t *testing.T) {
	only := sitemap.Only508Rules
	assert.Equal(t, Options{Scope: "http://localhost:3001/404.html", Rules: []string{RulesetSection508}},
		RulesFor("http://localhost:3001/404.html", only))
	assert.Equal(t, Options{Scope: "http://localhost:3001/find-locations/"},
		RulesFor("http://localhost:3001/find-locations/facility/", only))
	assert.Equal(t, RulesetWCAG2A, RulesFor("http://localhost:3001/", only).Ruleset())
}

func TestAxeOptions(t *testing.T) {
	assert.Equal(t, []string{"wcag2a"}, axeOptions(Options{}).RunOnly.Values)
	assert.Equal(t, []string{"section508"}, axeOptions(Options{Rules: []string{"section508"}}).RunOnly.Values)
	assert.Equal(t, "tag", axeOptions(Options{}).RunOnly.Type)
}

func TestRunnerChecksEveryPage(t *testing.T) {
	checker := newFakeChecker()
	checker.delay = 5 * time.Millisecond
	checker.fail["http://x/broken/"] = errors.New("navigation timeout")
	checker.found["http://x/404.html"] = []Violation{{ID: "duplicate-id", Impact: "minor"}, {ID: "label", Impact: "critical"}}

	core, logs := observer.New(zapcore.InfoLevel)
	collector := metrics.NewCollector()
	started := time.Date(2020, 3, 1, 9, 0, 0, 0, time.UTC)
	r := &Runner{
		Checker:     checker,
		Concurrency: 2,
		Segments:    3,
		BaseURL:     "http://x",
		Metrics:     collector,
		Logger:      zap.New(core),
		Now:         func() time.Time { return started },
	}
	plan := sitemap.Plan{
		URLs:    []string{"http://x/", "http://x/a/", "http://x/broken/", "http://x/404.html", "http://x/b/", "http://x/c/"},
		Only508: sitemap.Only508Rules,
	}

	report, err := r.Run(context.Background(), plan)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, started, report.StartedAt)
	require.Len(t, report.Results, len(plan.URLs))
	for i, res := range report.Results {
		assert.Equal(t, plan.URLs[i], res.URL)
	}
	assert.Equal(t, "navigation timeout", report.Results[2].Err)
	assert.Equal(t, RulesetSection508, report.Results[3].Ruleset)
	assert.Len(t, report.Failures(), 2)
	assert.Equal(t, 2, report.ViolationCount())
	assert.LessOrEqual(t, checker.peak, 2)

	assert.Equal(t, 1, logs.FilterMessage("page check failed").Len())
	assert.Equal(t, 5, logs.FilterMessage("page checked").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.PagesChecked.WithLabelValues("wcag2a", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.PagesChecked.WithLabelValues("section508", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Violations.WithLabelValues("critical")))
}

func TestRunnerStopsOnCancel(t *testing.T) {
	checker := newFakeChecker()
	checker.delay = time.Second
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{Checker: checker, Concurrency: 1, Segments: 1}

	done := make(chan struct{})
	var (
		report Report
		err    error
	)
	go func() {
		defer close(done)
		report, err = r.Run(ctx, sitemap.Plan{URLs: []string{"http://x/a/", "http://x/b/"}})
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	require.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(report.Results), 1)
}

func TestRunnerRequiresChecker(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), sitemap.Plan{})
	assert.Error(t, err)
}
