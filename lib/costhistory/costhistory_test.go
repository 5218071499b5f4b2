package costhistory

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

const T0 = 1577836800

var expectPerSecond = []float64{
	0.00000000000000000000,
	0.50196078431372548323,
	0.75294117647058822484,
	0.87843137254901959565,
	0.94117647058823528106,
	0.97254901960784312376,
	0.98823529411764710062,
	0.99607843137254903354,
	1.00000000000000000000,
	0.49803921568627451677,
	0.24705882352941177516,
	0.12156862745098039047,
	0.05882352941176470507,
	0.02745098039215686236,
	0.01176470588235294101,
	0.00392156862745098034,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
	0.00000000000000000000,
}

func TestCostHistory(t *testing.T) {
	t0 := time.Unix(T0, 0).UTC()
	tN := func(n uint) time.Time {
		dur := time.Duration(n) * time.Second
		return t0.Add(dur)
	}

	var nowCounter uint
	nowFn := func() time.Time {
		now := tN(nowCounter)
		nowCounter++
		return now
	}

	h := CostHistory{
		NumBuckets:     8,
		BucketInterval: 1 * time.Second,
		DecayFactor:    0.5,
		NowFn:          nowFn,
	}
	h.Init()

	data := h.Data()
	checkData(t, 0, data, Data{
		Now:       t0,
		Counter:   0,
		PerSecond: expectPerSecond[0],
	})

	for i := uint(1); i < 9; i++ {
		h.UpdateRelative(1)
		data := h.Data()
		checkData(t, i, data, Data{
			Now:       tN(i),
			Counter:   uint64(i),
			PerSecond: expectPerSecond[i],
		})
	}

	for i := uint(9); i < 17; i++ {
		h.Update()
		data := h.Data()
		checkData(t, i, data, Data{
			Now:       tN(i),
			Counter:   8,
			PerSecond: expectPerSecond[i],
		})
	}

	for i := uint(17); i < 25; i++ {
		h.Update()
		data := h.Data()
		checkData(t, i, data, Data{
			Now:       tN(i),
			Counter:   8,
			PerSecond: expectPerSecond[i],
		})
	}
}

func checkData(t *testing.T, index uint, actual Data, expect Data) {
	if !actual.Now.Equal(expect.Now) {
		t.Errorf(
			"[%d]: Now: expected %q, got %q",
			index,
			expect.Now.Format(time.RFC3339Nano),
			actual.Now.Format(time.RFC3339Nano),
		)
	}
	if actual.Counter != expect.Counter {
		t.Errorf(
			"[%d]: Counter: expected %d, got %d",
			index,
			expect.Counter,
			actual.Counter,
		)
	}
	if math.Abs(actual.PerSecond-expect.PerSecond) >= 1e-18 {
		t.Errorf(
			"[%d]: PerSecond: expected %.20f, got %.20f",
			index,
			expect.PerSecond,
			actual.PerSecond,
		)
	}
}

func newTestHistory() (*CostHistory, func(uint) time.Time) {
	t0 := time.Unix(T0, 0).UTC()
	tN := func(n uint) time.Time {
		return t0.Add(time.Duration(n) * time.Second)
	}

	var nowCounter uint
	h := &CostHistory{
		NumBuckets:     8,
		BucketInterval: 1 * time.Second,
		DecayFactor:    0.5,
		NowFn: func() time.Time {
			now := tN(nowCounter)
			nowCounter++
			return now
		},
	}
	h.Init()
	return h, tN
}

func counters(samples []Sample) []uint64 {
	out := make([]uint64, len(samples))
	for index, s := range samples {
		out[index] = s.Counter
	}
	return out
}

func TestCostHistory_Window(t *testing.T) {
	h, tN := newTestHistory()
	for i := 0; i < 8; i++ {
		h.UpdateRelative(1)
	}

	type testRow struct {
		From   time.Time
		To     time.Time
		Expect []uint64
	}

	testData := []testRow{
		{From: tN(3), To: tN(6), Expect: []uint64{3, 4, 5}},
		{From: tN(0), To: tN(100), Expect: []uint64{1, 2, 3, 4, 5, 6, 7, 8}},
		{From: tN(8), To: tN(9), Expect: []uint64{8}},
		{From: tN(9), To: tN(20), Expect: nil},
		{From: tN(6), To: tN(3), Expect: nil},
		{From: tN(4), To: tN(4), Expect: nil},
	}

	for index, row := range testData {
		actual := counters(h.Window(row.From, row.To))
		if diff := cmp.Diff(row.Expect, actual, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("[%d]: Window: unexpected counters (-want +got):\n%s", index, diff)
		}
	}

	// Expire the first sample.
	h.Update()

	if diff := cmp.Diff([]uint64{2}, counters(h.Window(tN(0), tN(3)))); diff != "" {
		t.Errorf("Window after expiry: unexpected counters (-want +got):\n%s", diff)
	}

	snapshot := h.Snapshot()
	if diff := cmp.Diff([]uint64{1, 2, 3, 4, 5, 6, 7, 8, 8}, counters(snapshot)); diff != "" {
		t.Errorf("Snapshot: unexpected counters (-want +got):\n%s", diff)
	}
	between := SamplesBetween(snapshot, tN(1), tN(3))
	if diff := cmp.Diff([]uint64{1, 2}, counters(between)); diff != "" {
		t.Errorf("SamplesBetween: unexpected counters (-want +got):\n%s", diff)
	}
}

func TestCostHistory_CounterAt(t *testing.T) {
	h, tN := newTestHistory()
	for i := 0; i < 8; i++ {
		h.UpdateRelative(1)
	}

	type testRow struct {
		At     time.Time
		Expect uint64
	}

	testData := []testRow{
		{At: tN(0), Expect: 0},
		{At: tN(1), Expect: 1},
		{At: tN(5), Expect: 5},
		{At: tN(5).Add(500 * time.Millisecond), Expect: 5},
		{At: tN(20), Expect: 8},
	}

	for index, row := range testData {
		if actual := h.CounterAt(row.At); actual != row.Expect {
			t.Errorf("[%d]: CounterAt: expected %d, got %d", index, row.Expect, actual)
		}
	}

	h.Update()
	if actual := h.CounterAt(tN(0)); actual != 1 {
		t.Errorf("CounterAt after expiry: expected 1, got %d", actual)
	}
}

func TestCostHistory_BulkAppend(t *testing.T) {
	h, tN := newTestHistory()

	h.BulkAppend(
		Sample{Time: tN(1), Counter: 10},
		Sample{Time: tN(2), Counter: 20},
		Sample{Time: tN(3), Counter: 30},
		Sample{Time: tN(4), Counter: 40},
	)

	if diff := cmp.Diff([]uint64{20, 30}, counters(h.Window(tN(2), tN(4)))); diff != "" {
		t.Errorf("Window: unexpected counters (-want +got):\n%s", diff)
	}

	// Overlapping append: samples at or after tN(3) are replaced, and the
	// lower counter is treated as a reset.
	h.BulkAppend(
		Sample{Time: tN(3), Counter: 35},
		Sample{Time: tN(5), Counter: 50},
	)

	if diff := cmp.Diff([]uint64{10, 20, 75, 90}, counters(h.Window(tN(0), tN(10)))); diff != "" {
		t.Errorf("Window after overlap: unexpected counters (-want +got):\n%s", diff)
	}
	if actual := h.Data().Counter; actual != 90 {
		t.Errorf("Data.Counter: expected 90, got %d", actual)
	}
}

func TestCostHistory_BulkAppendBackwards(t *testing.T) {
	h, tN := newTestHistory()

	defer func() {
		if _, ok := recover().(searchutil.CheckError); !ok {
			t.Errorf("expected panic with searchutil.CheckError")
		}
	}()

	h.BulkAppend(
		Sample{Time: tN(2), Counter: 10},
		Sample{Time: tN(1), Counter: 20},
	)
}
