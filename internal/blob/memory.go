package blob

import (
	memorystore "contentbuild/internal/infra/blob/memory"
)

// NewMemory returns an in-memory Store for tests and dry runs.
func NewMemory(baseURL string) Store { return memorystore.New(baseURL) }
