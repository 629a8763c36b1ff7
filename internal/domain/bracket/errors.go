package bracket

import "errors"

// Sentinel kinds for simulation errors.
var (
	// ErrInvalidBracketSize means the entrant count is not a power of two.
	// Fatal before the first round is evaluated.
	ErrInvalidBracketSize = errors.New("invalid bracket size")

	// ErrUndecidableTie means a knockout fixture was predicted a draw
	// between two teams with equal static rank. Surfaced to the caller
	// rather than picking a side silently; it marks a reference-data gap.
	ErrUndecidableTie = errors.New("undecidable tie")
)
