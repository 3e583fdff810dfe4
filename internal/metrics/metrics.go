// Package metrics holds the Prometheus collectors for validation, crawl and
// publish runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "contentbuild"

// Collector owns a private registry so several collectors can coexist in
// one process (tests, one per command run). A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	PagesChecked      *prometheus.CounterVec
	CheckDuration     *prometheus.HistogramVec
	Violations        *prometheus.CounterVec
	ExportValidations *prometheus.CounterVec
	ObjectsPublished  *prometheus.CounterVec
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	pagesChecked := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "a11y_pages_checked_total",
			Help:      "Pages run through the accessibility checker",
		},
		[]string{"ruleset", "outcome"},
	)
	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "a11y_check_duration_seconds",
			Help:      "Time to load and check one page",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"ruleset"},
	)
	violations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "a11y_violations_total",
			Help:      "Accessibility violations found, by impact",
		},
		[]string{"impact"},
	)
	exportValidations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cms_export_validations_total",
			Help:      "CMS export documents validated against output schemas",
		},
		[]string{"content_model_type", "outcome"},
	)
	objectsPublished := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "assets_published_total",
			Help:      "Build files handled by publish, by outcome",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(pagesChecked, checkDuration, violations, exportValidations, objectsPublished)

	return &Collector{
		registry:          registry,
		PagesChecked:      pagesChecked,
		CheckDuration:     checkDuration,
		Violations:        violations,
		ExportValidations: exportValidations,
		ObjectsPublished:  objectsPublished,
	}
}

// Registry exposes the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// PageChecked records one page check.
func (c *Collector) PageChecked(ruleset string, failed bool, d time.Duration) {
	if c == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	c.PagesChecked.WithLabelValues(ruleset, outcome).Inc()
	c.CheckDuration.WithLabelValues(ruleset).Observe(d.Seconds())
}

// ViolationFound counts one violation. Empty impact is recorded as "unknown".
func (c *Collector) ViolationFound(impact string) {
	if c == nil {
		return
	}
	if impact == "" {
		impact = "unknown"
	}
	c.Violations.WithLabelValues(impact).Inc()
}

// ExportValidated counts one validated export document.
func (c *Collector) ExportValidated(contentModelType string, ok bool) {
	if c == nil {
		return
	}
	outcome := "valid"
	if !ok {
		outcome = "invalid"
	}
	c.ExportValidations.WithLabelValues(contentModelType, outcome).Inc()
}

// ObjectPublished counts one publish outcome (uploaded, skipped, failed).
func (c *Collector) ObjectPublished(outcome string) {
	if c == nil {
		return
	}
	c.ObjectsPublished.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes every metric to path in the node_exporter textfile
// format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
