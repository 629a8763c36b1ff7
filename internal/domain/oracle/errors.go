package oracle

import "errors"

// Sentinel kinds for oracle errors.
var (
	// ErrModelArtifactMissing means a persisted artifact (scaler, model,
	// label encoder or feature-name list) is absent or unreadable. Fatal
	// at startup; the service never runs on a partial bundle.
	ErrModelArtifactMissing = errors.New("model artifact missing")

	// ErrInvalidDistribution means the classifier produced probabilities
	// outside [0,1] or not summing to one.
	ErrInvalidDistribution = errors.New("invalid probability distribution")
)
