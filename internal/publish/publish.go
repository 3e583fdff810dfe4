// Package publish uploads a built site directory to the asset store.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"contentbuild/internal/blob"
	"contentbuild/internal/metrics"
)

// Publish outcomes, also used as the metric label.
const (
	OutcomeUploaded = "uploaded"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Publisher copies files into Store.
type Publisher struct {
	Store        blob.Store
	CacheControl string
	Metrics      *metrics.Collector
	Logger       *zap.Logger
}

// Summary reports what a run did.
type Summary struct {
	Uploaded int      `json:"uploaded"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Bytes    int64    `json:"bytes"`
	URLs     []string `json:"urls,omitempty"`
}

// Publish walks dir and uploads every regular file under prefix. Files whose
// key already exists with the same size are skipped. Individual upload
// failures are collected and returned together after the walk; a cancelled
// ctx stops the walk.
func (p *Publisher) Publish(ctx context.Context, dir, prefix string) (Summary, error) {
	if p.Store == nil {
		return Summary{}, errors.New("publish: no asset store")
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		sum    Summary
		failed error
	)
	walkErr := filepath.WalkDir(dir, func(p2 string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p2)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		outcome, size, err := p.publishFile(ctx, p2, key)
		p.Metrics.ObjectPublished(outcome)
		switch outcome {
		case OutcomeUploaded:
			sum.Uploaded++
			sum.Bytes += size
			sum.URLs = append(sum.URLs, p.Store.URL(key))
			log.Debug("asset uploaded", zap.String("key", key), zap.Int64("bytes", size))
		case OutcomeSkipped:
			sum.Skipped++
		default:
			sum.Failed++
			failed = multierr.Append(failed, fmt.Errorf("publish %s: %w", key, err))
			log.Warn("asset upload failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	})
	if walkErr != nil {
		return sum, fmt.Errorf("walk %s: %w", dir, walkErr)
	}
	log.Info("publish finished",
		zap.String("driver", string(p.Store.Driver())),
		zap.Int("uploaded", sum.Uploaded),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))
	return sum, failed
}

func (p *Publisher) publishFile(ctx context.Context, file, key string) (string, int64, error) {
	fi, err := os.Stat(file)
	if err != nil {
		return OutcomeFailed, 0, err
	}
	existing, err := p.Store.Head(ctx, key)
	switch {
	case err == nil && existing.Size == fi.Size():
		return OutcomeSkipped, 0, nil
	case err != nil && !errors.Is(err, blob.ErrNotFound):
		return OutcomeFailed, 0, err
	}

	f, err := os.Open(file)
	if err != nil {
		return OutcomeFailed, 0, err
	}
	defer func() { _ = f.Close() }()
	contentType, err := detectContentType(f, file)
	if err != nil {
		return OutcomeFailed, 0, err
	}
	info, err := p.Store.Put(ctx, key, f, blob.PutOptions{
		ContentType:  contentType,
		CacheControl: p.CacheControl,
		Overwrite:    true,
	})
	if err != nil {
		return OutcomeFailed, 0, err
	}
	return OutcomeUploaded, info.Size, nil
}

// detectContentType uses the extension, falling back to sniffing the first
// 512 bytes. f is rewound afterwards.
func detectContentType(f *os.File, name string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct, nil
	}
	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
