package render

import (
	"testing"
	"time"

	"contentbuild/internal/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	set := filters.New(filters.Options{Location: time.UTC})
	return NewEngine(set, zaptest.NewLogger(t))
}

func TestRenderScalarFilters(t *testing.T) {
	e := newEngine(t)

	out, err := e.Render(`{{ date | humanizeDate }} / {{ 42 | numToWord }} / {{ "Hello World" | hashReference }}`,
		map[string]any{"date": "2019-05-15"})
	require.NoError(t, err)
	assert.Equal(t, "May 15, 2019 / forty-two / hello-world", out)
}

func TestRenderFilterArguments(t *testing.T) {
	e := newEngine(t)

	out, err := e.Render(`{{ ts | dateFromUnix: "MMMM D, YYYY h:mm A", "America/Los_Angeles" }}`,
		map[string]any{"ts": 1557930600})
	require.NoError(t, err)
	assert.Equal(t, "May 15, 2019 7:30 a.m.", out)
}

func TestRenderTypedResultsAreIndexable(t *testing.T) {
	e := newEngine(t)
	crumbs := []any{
		map[string]any{"url": map[string]any{"path": "/"}, "text": "Home"},
		map[string]any{"url": map[string]any{"path": "/resources"}, "text": "Resources"},
	}

	out, err := e.Render(
		`{% assign trail = crumbs | deriveLcBreadcrumbs: "Article", "/resources/article", "Article" %}`+
			`{% for b in trail %}{{ b.text }}={{ b.url.path }};{% endfor %}`,
		map[string]any{"crumbs": crumbs})
	require.NoError(t, err)
	assert.Equal(t, "Home=/;Resources and support=/resources;Article=/resources/article;", out)
}

func TestRenderPropagatesFilterErrors(t *testing.T) {
	e := newEngine(t)

	_, err := e.Render(`{{ "many" | numToWord }}`, nil)
	assert.Error(t, err)

	_, err = e.Render(`{% if %}`, nil)
	assert.Error(t, err)
}
