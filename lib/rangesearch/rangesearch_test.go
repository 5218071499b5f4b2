package rangesearch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func lessInt(elem int, key int) bool {
	return elem < key
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func rng(lo int, hi int) Range[int] {
	return Range[int]{Lo: lo, Hi: hi}
}

// linearBounds finds the matching run by brute force.
func linearBounds(list []int, r Range[int]) (first uint, last uint, found bool) {
	for index, value := range list {
		if value >= r.Lo && value < r.Hi {
			if !found {
				first = uint(index)
				found = true
			}
			last = uint(index) + 1
		}
	}
	return
}

func TestSearchBy(t *testing.T) {
	type testRow struct {
		List   []int
		Range  Range[int]
		Expect []int
	}

	dups := []int{1, 2, 2, 2, 3, 3, 5}

	testData := []testRow{
		{List: nil, Range: rng(0, 0), Expect: nil},
		{List: []int{0}, Range: rng(1, 2), Expect: nil},
		{List: []int{1}, Range: rng(0, 2), Expect: []int{1}},
		{List: seq(10), Range: rng(5, 7), Expect: []int{5, 6}},
		{List: seq(10), Range: rng(0, 1), Expect: []int{0}},
		{List: seq(10), Range: rng(9, 11), Expect: []int{9}},
		{List: seq(10), Range: rng(-5, 0), Expect: nil},
		{List: seq(10), Range: rng(10, 20), Expect: nil},
		{List: seq(10), Range: rng(-1, 100), Expect: seq(10)},
		{List: seq(10), Range: rng(4, 4), Expect: nil},
		{List: seq(10), Range: rng(7, 3), Expect: nil},
		{List: seq(10), Range: rng(100, -100), Expect: nil},
		{List: []int{5}, Range: rng(5, 5), Expect: nil},
		{List: []int{5}, Range: rng(5, 6), Expect: []int{5}},
		{List: []int{5}, Range: rng(4, 5), Expect: nil},
		{List: dups, Range: rng(2, 3), Expect: []int{2, 2, 2}},
		{List: dups, Range: rng(3, 5), Expect: []int{3, 3}},
		{List: dups, Range: rng(4, 5), Expect: nil},
		{List: dups, Range: rng(0, 6), Expect: dups},
		{List: []int{1, 1, 1, 1}, Range: rng(1, 2), Expect: []int{1, 1, 1, 1}},
		{List: []int{1, 1, 1, 1}, Range: rng(0, 1), Expect: nil},
	}

	for index, row := range testData {
		actual := SearchBy(row.List, row.Range, lessInt)
		if diff := cmp.Diff(row.Expect, actual, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("[%d]: SearchBy(%v, %v): unexpected result (-want +got):\n%s", index, row.List, row.Range, diff)
		}

		actual = Search(row.List, row.Range)
		if diff := cmp.Diff(row.Expect, actual, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("[%d]: Search(%v, %v): unexpected result (-want +got):\n%s", index, row.List, row.Range, diff)
		}
	}
}

func TestBoundsBy_Exhaustive(t *testing.T) {
	for n := 0; n <= 16; n++ {
		// every value appears twice, with gaps between runs
		list := make([]int, n)
		for i := range list {
			list[i] = (i / 2) * 3
		}
		top := 0
		if n > 0 {
			top = list[n-1]
		}

		for lo := -2; lo <= top+2; lo++ {
			for hi := -2; hi <= top+2; hi++ {
				r := rng(lo, hi)
				actualLo, actualHi := BoundsBy(list, r, lessInt)
				expectLo, expectHi, found := linearBounds(list, r)

				if actualLo > actualHi || actualHi > uint(n) {
					t.Errorf("%v %v: bounds [%d,%d) out of order or out of range", list, r, actualLo, actualHi)
					continue
				}
				if !found {
					if actualLo != actualHi {
						t.Errorf("%v %v: expected empty result, got [%d,%d)", list, r, actualLo, actualHi)
					}
					continue
				}
				if actualLo != expectLo || actualHi != expectHi {
					t.Errorf("%v %v: expected [%d,%d), got [%d,%d)", list, r, expectLo, expectHi, actualLo, actualHi)
				}
			}
		}
	}
}

func TestSearchBy_SubView(t *testing.T) {
	list := seq(10)
	result := SearchBy(list, rng(3, 6), lessInt)

	if len(result) != 3 {
		t.Fatalf("expected 3 elements, got %v", result)
	}
	if &result[0] != &list[3] {
		t.Errorf("result does not share storage with the input")
	}
	if cap(result) != len(result) {
		t.Errorf("expected capacity clipped to %d, got %d", len(result), cap(result))
	}

	result = append(result, 99)
	if list[6] != 6 {
		t.Errorf("append on the result overwrote list[6]: got %d", list[6])
	}
}

func TestSearchBy_Heterogeneous(t *testing.T) {
	type record struct {
		At   time.Time
		Name string
	}

	t0 := time.Unix(1577836800, 0).UTC()
	records := make([]record, 8)
	for i := range records {
		records[i] = record{At: t0.Add(time.Duration(i) * time.Minute), Name: string(rune('a' + i))}
	}

	before := func(rec record, key time.Time) bool {
		return rec.At.Before(key)
	}

	window := Range[time.Time]{Lo: t0.Add(2 * time.Minute), Hi: t0.Add(5 * time.Minute)}
	result := SearchBy(records, window, before)

	var names string
	for _, rec := range result {
		names += rec.Name
	}
	if names != "cde" {
		t.Errorf("expected records %q, got %q", "cde", names)
	}

	for index, rec := range records {
		expect := index >= 2 && index < 5
		if actual := ContainsBy(rec, window, before); actual != expect {
			t.Errorf("[%d]: ContainsBy: expected %v, got %v", index, expect, actual)
		}
	}
}

func TestBoundsBy_InconsistentComparator(t *testing.T) {
	if debugChecks {
		t.Skip("comparators are deliberately inconsistent; debug checks reject them")
	}

	rnd := rand.New(rand.NewSource(1))
	coinFlip := func(int, int) bool {
		return rnd.Intn(2) == 0
	}
	alwaysLess := func(int, int) bool { return true }
	neverLess := func(int, int) bool { return false }

	for n := 0; n <= 200; n++ {
		list := seq(n)
		for trial := 0; trial < 8; trial++ {
			lo, hi := BoundsBy(list, rng(0, n), coinFlip)
			if lo > hi || hi > uint(n) {
				t.Fatalf("n=%d trial=%d: bounds [%d,%d) out of order or out of range", n, trial, lo, hi)
			}
		}

		if lo, hi := BoundsBy(list, rng(0, n), alwaysLess); lo != hi || hi > uint(n) {
			t.Errorf("n=%d: alwaysLess: expected empty bounds, got [%d,%d)", n, lo, hi)
		}
		if lo, hi := BoundsBy(list, rng(0, n), neverLess); lo != hi || hi > uint(n) {
			t.Errorf("n=%d: neverLess: expected empty bounds, got [%d,%d)", n, lo, hi)
		}
	}
}

func TestPartitionPoint(t *testing.T) {
	type testRow struct {
		List   []int
		Key    int
		Expect uint
	}

	testData := []testRow{
		{List: nil, Key: 0, Expect: 0},
		{List: []int{1}, Key: 0, Expect: 0},
		{List: []int{1}, Key: 1, Expect: 0},
		{List: []int{1}, Key: 2, Expect: 1},
		{List: seq(10), Key: 5, Expect: 5},
		{List: seq(10), Key: -1, Expect: 0},
		{List: seq(10), Key: 10, Expect: 10},
		{List: []int{1, 2, 2, 2, 3}, Key: 2, Expect: 1},
		{List: []int{1, 2, 2, 2, 3}, Key: 3, Expect: 4},
	}

	for index, row := range testData {
		actual := PartitionPoint(row.List, row.Key, lessInt)
		if actual != row.Expect {
			t.Errorf("[%d]: PartitionPoint(%v, %d): expected %d, got %d", index, row.List, row.Key, row.Expect, actual)
		}
	}
}

func TestRange_String(t *testing.T) {
	if actual, expect := rng(1, 5).String(), "[1,5)"; actual != expect {
		t.Errorf("expected %q, got %q", expect, actual)
	}
}
