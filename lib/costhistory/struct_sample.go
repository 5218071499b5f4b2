package costhistory

import (
	"time"
)

// Sample represents one data point measuring the cost counter's value over
// time.  The cost counter is a monotonically increasing value which records
// the sum of all costs incurred up to a moment in time.
type Sample struct {
	Time    time.Time
	Counter uint64
}

// sampleBefore is a rangesearch.LessFunc ordering Samples by time.
func sampleBefore(sample Sample, t time.Time) bool {
	return sample.Time.Before(t)
}
