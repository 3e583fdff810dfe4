// Package blob is the entry point to the asset stores: it re-exports the core
// abstraction and opens the configured driver.
package blob

import (
	"contentbuild/internal/blob/core"
)

type (
	// Driver identifies an asset store backend.
	Driver = core.Driver
	// PutOptions configures an asset write.
	PutOptions = core.PutOptions
	// Info describes a stored asset.
	Info = core.Info
	// Store is the asset store interface.
	Store = core.Store
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrNotFound    = core.ErrNotFound
	ErrExists      = core.ErrExists
	ErrInvalidKey  = core.ErrInvalidKey
	ErrUnsupported = core.ErrUnsupported
)
