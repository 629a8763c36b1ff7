package loadtest

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	ProbabilityTolerance = 0.5 // served percentages are rounded to one decimal per side
)
