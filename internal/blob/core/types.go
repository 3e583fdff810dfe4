// Package core defines the asset store abstraction shared by the storage
// drivers and the packages that publish build output.
package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// Driver identifies a concrete asset store backend.
type Driver string

const (
	// DriverFilesystem stores assets under a local directory (localhost builds).
	DriverFilesystem Driver = "fs"
	// DriverS3 stores assets in an S3 bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps assets in process memory (tests).
	DriverMemory Driver = "memory"
)

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("asset not found")
	// ErrExists is returned by Put when the key exists and Overwrite is not set.
	ErrExists = errors.New("asset already exists")
	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("invalid asset key")
	// ErrUnsupported is returned when a driver lacks an optional capability.
	ErrUnsupported = errors.New("asset store: unsupported operation")
)

// PutOptions configures a write.
type PutOptions struct {
	ContentType  string
	CacheControl string
	Metadata     map[string]string
	// Overwrite replaces an existing object instead of failing with ErrExists.
	Overwrite bool
}

// Info describes a stored asset.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	CacheControl string            `json:"cache_control,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	URL          string            `json:"url,omitempty"`
}

// Store is the asset bucket the build publishes into.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get returns ErrNotFound (wrapped) when key is missing.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns assets under prefix ordered by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	// URL is the public address the site references key by.
	URL(key string) string
	Driver() Driver
}

// CleanKey validates an asset key and normalises leading slashes away.
func CleanKey(key string) (string, error) {
	k := strings.TrimLeft(strings.TrimSpace(key), "/")
	if k == "" {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(k, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	return k, nil
}

// JoinURL appends key to a public base URL.
func JoinURL(base, key string) string {
	key = strings.TrimLeft(key, "/")
	if base == "" {
		return "/" + key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// CloneMetadata copies user metadata so callers cannot alias stored maps.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
