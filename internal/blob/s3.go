package blob

import (
	"context"

	infraS3 "contentbuild/internal/infra/blob/s3"
)

// S3Config configures the S3 asset bucket driver.
type S3Config = infraS3.Config

// NewS3 returns an S3-backed Store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the in-process S3 fake for tests in other packages.
func NewMockS3ForTests(baseURL string) Store { return infraS3.NewMockForTests(baseURL) }
