package blob

import (
	"context"
	"fmt"
)

// Config selects and configures the asset store driver.
type Config struct {
	Driver Driver `yaml:"driver" validate:"omitempty,oneof=fs s3 memory"`
	// FSRoot is the directory used by the fs driver (default ./build-assets).
	FSRoot string `yaml:"fs_root"`
	// PublicBaseURL is prefixed to keys to form asset URLs. Defaults to the
	// bucket of the build type.
	PublicBaseURL string   `yaml:"public_base_url" validate:"omitempty,url"`
	S3            S3Config `yaml:"s3"`
}

// Open returns the store selected by cfg.Driver (fs when empty).
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.FSRoot, cfg.PublicBaseURL)
	case DriverS3:
		s3cfg := cfg.S3
		if s3cfg.PublicBaseURL == "" {
			s3cfg.PublicBaseURL = cfg.PublicBaseURL
		}
		return NewS3(ctx, s3cfg)
	case DriverMemory:
		return NewMemory(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown asset store driver %q", cfg.Driver)
	}
}
