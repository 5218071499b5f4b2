package costhistory

import (
	"time"

	"github.com/chronos-tachyon/rangesearch/lib/rangesearch"
)

// Snapshot obtains a copy of the detailed contents of the CostHistory's sample
// time window.  The first Sample represents the time and absolute value of the
// cost counter at the start of the window, and each subsequent Sample records
// (a) when the counter changed and (b) what value it changed to.  The current
// cost counter is the value of Sample.Counter for the last Sample.
func (hist *CostHistory) Snapshot() []Sample {
	windowInterval := hist.WindowInterval()

	hist.Mutex.Lock()
	defer hist.Mutex.Unlock()

	length := uint(len(hist.samples))
	now := hist.epoch.Add(hist.timeDeltaNow)

	out := make([]Sample, 0, length+2)
	out = append(out, Sample{Time: now.Add(-windowInterval), Counter: hist.counterThen})
	for _, packed := range hist.samples {
		out = append(out, packed.Unpack(hist.epoch))
	}
	if length == 0 || hist.samples[length-1].Delta != hist.timeDeltaNow {
		out = append(out, Sample{Time: now, Counter: hist.counterNow})
	}
	return out
}

// Window returns the recorded samples whose time lies in [from, to).  Only
// samples still inside the sample window are considered.
func (hist *CostHistory) Window(from time.Time, to time.Time) []Sample {
	hist.Mutex.Lock()
	defer hist.Mutex.Unlock()

	r := rangesearch.Range[time.Duration]{
		Lo: from.Sub(hist.epoch),
		Hi: to.Sub(hist.epoch),
	}
	return UnpackSamples(hist.epoch, rangesearch.SearchBy(hist.samples, r, packedBefore))
}

// CounterAt returns the value the cost counter had at time t, as far as the
// sample window can tell.  Times before the oldest retained sample report the
// counter value at the start of the window.
func (hist *CostHistory) CounterAt(t time.Time) uint64 {
	hist.Mutex.Lock()
	defer hist.Mutex.Unlock()

	index := rangesearch.PartitionPoint(hist.samples, t.Sub(hist.epoch), packedNotAfter)
	if index == 0 {
		return hist.counterThen
	}
	return hist.samples[index-1].Counter
}

// SamplesBetween returns the sub-slice of samples whose time lies in
// [from, to).  The samples must be in time order, as returned by Snapshot.
// The result shares storage with samples.
func SamplesBetween(samples []Sample, from time.Time, to time.Time) []Sample {
	r := rangesearch.Range[time.Time]{Lo: from, Hi: to}
	return rangesearch.SearchBy(samples, r, sampleBefore)
}
