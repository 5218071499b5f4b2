package costhistory

import (
	"sync"
	"time"
)

// CostHistory records the history of a cost-per-second (CPS) metric, where CPS
// is defined as queries-per-second (QPS) times a cost factor per query.
//
// Samples are kept in time order, which lets the window be queried by time
// range in O(log N) (see Window and CounterAt) and lets expiry find its cut
// point by binary search.
//
// The "average" CPS is computed by bucketing samples by age and taking an
// exponentially-decaying weighted average of the bucket-by-bucket QPS.  The
// most recent bucket is weighted most heavily, and data from before the start
// of the window is forgotten entirely.
//
// CostHistory is thread-safe if Mutex is set to a real sync.Locker.
type CostHistory struct {
	NumBuckets     uint
	BucketInterval time.Duration
	DecayFactor    float64
	NowFn          func() time.Time
	Mutex          sync.Locker

	buckets      []uint64
	samples      []Packed
	epoch        time.Time
	timeDeltaNow time.Duration
	counterBias  uint64
	counterThen  uint64
	counterNow   uint64
	perSecond    float64
}

// Init fills in defaults and initializes a CostHistory.
func (hist *CostHistory) Init() {
	if hist.NumBuckets == 0 {
		hist.NumBuckets = 60
	}
	if hist.BucketInterval == 0 {
		hist.BucketInterval = 1 * time.Second
	}
	if hist.DecayFactor == 0.0 {
		hist.DecayFactor = 0.984375 // 63/64
	}
	if hist.NowFn == nil {
		hist.NowFn = time.Now
	}
	if hist.Mutex == nil {
		hist.Mutex = dummyLocker{}
	}
	hist.clear()
}

// Reset resets the CostHistory to cost counter 0 and no sample data.
func (hist *CostHistory) Reset() {
	hist.Mutex.Lock()
	hist.clear()
	hist.Mutex.Unlock()
}

// WindowInterval returns the calculated width of the sample window.
func (hist *CostHistory) WindowInterval() time.Duration {
	return time.Duration(hist.NumBuckets) * hist.BucketInterval
}

// Now returns the current time in UTC.
func (hist *CostHistory) Now() time.Time {
	return hist.NowFn().UTC()
}

// Data obtains a Data snapshot.
func (hist *CostHistory) Data() Data {
	hist.Mutex.Lock()
	out := Data{
		Now:       hist.epoch.Add(hist.timeDeltaNow),
		Counter:   hist.counterNow,
		PerSecond: hist.perSecond,
	}
	hist.Mutex.Unlock()
	return out
}

func (hist *CostHistory) clear() {
	hist.buckets = make([]uint64, hist.NumBuckets)
	hist.samples = make([]Packed, 0, hist.NumBuckets)
	hist.epoch = hist.Now()
	hist.timeDeltaNow = 0
	hist.counterBias = 0
	hist.counterThen = 0
	hist.counterNow = 0
	hist.perSecond = 0.0
}

type dummyLocker struct{}

func (dummyLocker) Lock()   {}
func (dummyLocker) Unlock() {}

var _ sync.Locker = dummyLocker{}
