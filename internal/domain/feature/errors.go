package feature

import "errors"

// Sentinel kinds for feature errors.
var (
	// ErrSchemaMismatch means the assembled feature set disagrees with the
	// schema the model was trained on. Fatal to the request; never patched
	// over with defaults.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)
