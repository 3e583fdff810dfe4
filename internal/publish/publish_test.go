package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"contentbuild/internal/blob"
	"contentbuild/internal/metrics"
)

const assetBase = "https://s3-us-gov-west-1.amazonaws.com/apps.dev.va.gov"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	return dir
}

func TestPublishUploadsAndSkips(t *testing.T) {
	ctx := context.Background()
	dir := writeTree(t, map[string]string{
		"generated/app.entry.js": "console.log(1)",
		"generated/styles.css":   "body{}",
		"img/logo":               "\x89PNG\r\n\x1a\n0000",
		"index.html":             "<!doctype html><title>VA</title>",
	})
	store := blob.NewMemory(assetBase)
	collector := metrics.NewCollector()
	p := &Publisher{Store: store, CacheControl: "max-age=3600", Metrics: collector, Logger: zaptest.NewLogger(t)}

	sum, err := p.Publish(ctx, dir, "/build")
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Uploaded)
	assert.Contains(t, sum.URLs, assetBase+"/build/generated/app.entry.js")

	info, err := store.Head(ctx, "build/img/logo")
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, "max-age=3600", info.CacheControl)

	info, err = store.Head(ctx, "build/generated/styles.css")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.ContentType, "text/css"))

	// Second run: unchanged sizes are skipped, a changed file is re-uploaded.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!doctype html><title>VA.gov</title>"), 0o644))
	sum, err = p.Publish(ctx, dir, "build")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Uploaded)
	assert.Equal(t, 3, sum.Skipped)

	_, rc, err := store.Get(ctx, "build/index.html")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Contains(t, string(body), "VA.gov")

	assert.Equal(t, 5.0, testutil.ToFloat64(collector.ObjectsPublished.WithLabelValues(OutcomeUploaded)))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.ObjectsPublished.WithLabelValues(OutcomeSkipped)))
}

func TestPublishToS3Mock(t *testing.T) {
	ctx := context.Background()
	dir := writeTree(t, map[string]string{"a.txt": "alpha", "b/c.json": `{"c":1}`})
	store := blob.NewMockS3ForTests(assetBase)

	sum, err := (&Publisher{Store: store}).Publish(ctx, dir, "")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Uploaded)

	list, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a.txt", list[0].Key)
	assert.Equal(t, "b/c.json", list[1].Key)
}

func TestPublishCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := writeTree(t, map[string]string{"a.txt": "alpha"})
	_, err := (&Publisher{Store: blob.NewMemory("")}).Publish(ctx, dir, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublishMissingDir(t *testing.T) {
	_, err := (&Publisher{Store: blob.NewMemory("")}).Publish(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}
