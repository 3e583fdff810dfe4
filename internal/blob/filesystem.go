package blob

import (
	"contentbuild/internal/infra/blob/fs"
)

// NewFilesystem returns a directory-backed Store serving assets from baseURL.
func NewFilesystem(root, baseURL string) (Store, error) {
	return fs.New(root, baseURL)
}
