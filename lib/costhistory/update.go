package costhistory

import (
	"math"
	"time"

	"github.com/chronos-tachyon/rangesearch/lib/rangesearch"
	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

// Update updates the sample window and recomputes the average without adding a
// new sample.
func (hist *CostHistory) Update() {
	hist.Mutex.Lock()
	hist.timeDeltaNow = hist.Now().Sub(hist.epoch)
	hist.recompute()
	hist.Mutex.Unlock()
}

// UpdateRelative creates a new sample with the given (non-negative) cost delta
// added to the current cost counter, in addition to updating the sample window
// and recomputing the average.
func (hist *CostHistory) UpdateRelative(counterDelta uint64) {
	hist.Mutex.Lock()
	timeDeltaNow := hist.Now().Sub(hist.epoch)
	hist.timeDeltaNow = timeDeltaNow
	hist.expireOldSamples()
	hist.appendSample(timeDeltaNow, hist.counterNow+counterDelta)
	hist.regenerateBuckets()
	hist.updateAverage()
	hist.Mutex.Unlock()
}

// UpdateAbsolute creates a new sample with the given (larger) counter value,
// in addition to updating the sample window and recomputing the average.
//
// If the new cost counter is less than the previous cost counter, it's assumed
// that a reset-to-zero has occurred, and the previous cost counter will be
// added to this and all future absolute cost counter values.
func (hist *CostHistory) UpdateAbsolute(counter uint64) {
	hist.Mutex.Lock()
	timeDeltaNow := hist.Now().Sub(hist.epoch)
	counterAbs := counter + hist.counterBias
	if counterAbs < hist.counterNow {
		hist.counterBias = hist.counterNow
		counterAbs = counter + hist.counterBias
	}
	hist.timeDeltaNow = timeDeltaNow
	hist.expireOldSamples()
	hist.appendSample(timeDeltaNow, counterAbs)
	hist.regenerateBuckets()
	hist.updateAverage()
	hist.Mutex.Unlock()
}

// BulkAppend inserts the given samples into the time window, recomputing the
// average CPS.  The samples must be in strictly increasing time order with
// non-decreasing counters.  Any existing samples at or after the first new
// sample are discarded.
func (hist *CostHistory) BulkAppend(samples ...Sample) {
	newLength := uint(len(samples))
	if newLength == 0 {
		return
	}

	hist.Mutex.Lock()
	defer hist.Mutex.Unlock()

	packedList := PackSamples(hist.epoch, samples)
	for index := uint(1); index < newLength; index++ {
		prev, curr := packedList[index-1], packedList[index]
		searchutil.Assertf(
			curr.Delta > prev.Delta,
			"samples go backward in time: %q vs %q",
			hist.epoch.Add(prev.Delta).Format(time.RFC3339Nano),
			hist.epoch.Add(curr.Delta).Format(time.RFC3339Nano),
		)
		searchutil.Assertf(
			curr.Counter >= prev.Counter,
			"samples go backward in value: %d vs %d",
			prev.Counter,
			curr.Counter,
		)
	}

	first, last := packedList[0], packedList[newLength-1]

	hist.timeDeltaNow = last.Delta
	hist.expireOldSamples()

	cut := rangesearch.PartitionPoint(hist.samples, first.Delta, packedBefore)
	hist.samples = trimEnd(hist.samples, uint(len(hist.samples))-cut)

	var counterBias uint64
	if hist.counterNow > first.Counter {
		counterBias = hist.counterNow
	}

	oldLength := uint(len(hist.samples))
	if want := oldLength + newLength; want > uint(cap(hist.samples)) {
		list := make([]Packed, oldLength, want)
		copy(list, hist.samples)
		hist.samples = list
	}
	for _, packed := range packedList {
		packed.Counter += counterBias
		hist.samples = append(hist.samples, packed)
	}
	hist.counterBias = counterBias
	hist.counterNow = last.Counter + counterBias

	hist.recompute()
}

func (hist *CostHistory) recompute() {
	hist.expireOldSamples()
	hist.regenerateBuckets()
	hist.updateAverage()
}

// expireOldSamples drops every sample with Delta <= (now - WindowInterval),
// remembering the newest dropped counter as counterThen.
func (hist *CostHistory) expireOldSamples() {
	limit := hist.timeDeltaNow - hist.WindowInterval()
	cut := rangesearch.PartitionPoint(hist.samples, limit, packedNotAfter)

	var s Packed
	var ok bool
	s, hist.samples, ok = trimBegin(hist.samples, cut)
	if ok {
		hist.counterThen = s.Counter
	}
}

func (hist *CostHistory) appendSample(timeDelta time.Duration, counterAbs uint64) {
	if counterAbs == hist.counterNow {
		return
	}
	hist.counterNow = counterAbs
	hist.samples = append(hist.samples, Packed{timeDelta, counterAbs})
}

func (hist *CostHistory) regenerateBuckets() {
	for index := range hist.buckets {
		hist.buckets[index] = hist.counterThen
	}

	for _, curr := range hist.samples {
		age := hist.timeDeltaNow - curr.Delta
		bucketIndex := uint(math.Floor(float64(age) / float64(hist.BucketInterval)))
		bucketIndex = hist.NumBuckets - (bucketIndex + 1)
		if hist.buckets[bucketIndex] < curr.Counter {
			hist.buckets[bucketIndex] = curr.Counter
		}
	}

	for index := uint(1); index < hist.NumBuckets; index++ {
		if prev := hist.buckets[index-1]; prev > hist.buckets[index] {
			hist.buckets[index] = prev
		}
	}
}

func (hist *CostHistory) updateAverage() {
	var sumOfAverages float64
	var sumOfWeights float64
	prev := hist.counterThen
	for index := uint(0); index < hist.NumBuckets; index++ {
		curr := hist.buckets[index]
		avgPerSecond := float64(curr-prev) * float64(time.Second) / float64(hist.BucketInterval)
		weight := math.Pow(hist.DecayFactor, float64(hist.NumBuckets-index))
		sumOfAverages += avgPerSecond * weight
		sumOfWeights += weight
		prev = curr
	}
	hist.perSecond = sumOfAverages / sumOfWeights
}

func trimBegin(list []Packed, n uint) (Packed, []Packed, bool) {
	if n == 0 {
		return Packed{}, list, false
	}

	oldLength := uint(len(list))
	newLength := oldLength - n
	s := list[n-1]
	copy(list, list[n:])
	for index := newLength; index < oldLength; index++ {
		list[index] = Packed{}
	}
	return s, list[:newLength], true
}

func trimEnd(list []Packed, n uint) []Packed {
	oldLength := uint(len(list))
	newLength := oldLength - n
	for index := newLength; index < oldLength; index++ {
		list[index] = Packed{}
	}
	return list[:newLength]
}
