package catalog

import "errors"

var (
	ErrRegionNotFound = errors.New("region not found")
	ErrNotFound       = errors.New("not found")
)
