// Package metrics provides Prometheus collectors for roamvid operations.
package metrics

// Label values for the status of a reclaim run.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// Label values for the mode of a reclaim run.
const (
	ModeDelete  = "delete"
	ModePretend = "pretend"
)

// Label values for removed entry kinds.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// Histogram bucket configuration constants.
const (
	// BucketStart1ms is the starting bucket for 1ms histograms (1ms to ~1s range).
	BucketStart1ms = 0.001
	// BucketStart100ms is the starting bucket for 100ms histograms (100ms to ~100s range).
	BucketStart100ms = 0.1

	// BucketFactor2 is the common exponential growth factor of 2 for histogram buckets.
	BucketFactor2 = 2

	// BucketCount10 defines 10 exponential buckets.
	BucketCount10 = 10
)

// PercentageFactor is the multiplier to convert ratio to percentage.
const PercentageFactor = 100.0
