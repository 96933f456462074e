package manifest

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate mod entry")
	ErrMissingField   = errors.New("missing required field")
)
