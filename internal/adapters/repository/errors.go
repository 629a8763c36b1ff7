package repository

import "errors"

// Sentinel kinds for snapshot loading errors.
var (
	ErrOpenSnapshot  = errors.New("open match snapshot failed")
	ErrBadRecord     = errors.New("malformed match record")
	ErrMissingColumn = errors.New("required column missing")
)
