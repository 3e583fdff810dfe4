package filters

import "errors"

// ErrInvalidArgument is returned by filters that cannot make sense of their
// input and have no sensible fallback value.
var ErrInvalidArgument = errors.New("invalid filter argument")
