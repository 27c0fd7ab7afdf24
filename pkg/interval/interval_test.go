package interval

import (
	"slices"
	"testing"
)

func collect(ix *Index, lo, hi float64) []int {
	var ids []int
	ix.Overlapping(lo, hi, func(e Entry) bool {
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

func TestOverlapping(t *testing.T) {
	ix := &Index{}
	ix.Insert(0, 0, 5)
	ix.Insert(1, 3, 8)
	ix.Insert(2, 5, 9)
	ix.Insert(3, 10, 12)

	tests := []struct {
		name   string
		lo, hi float64
		want   []int
	}{
		{"spans all but last", 0, 9, []int{0, 1, 2}},
		{"touching is not overlapping", 5, 10, []int{1, 2}},
		{"point-ish probe inside", 4, 4.5, []int{0, 1}},
		{"gap between entries", 9, 10, nil},
		{"degenerate query", 5, 5, nil},
		{"beyond everything", 20, 30, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collect(ix, tc.lo, tc.hi)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Overlapping(%v, %v) = %v, want %v", tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestInsertRejectsDegenerate(t *testing.T) {
	ix := &Index{}
	if ix.Insert(0, 5, 5) {
		t.Error("Insert(5,5) accepted a degenerate interval")
	}
	if ix.Insert(1, 5, 4) {
		t.Error("Insert(5,4) accepted an inverted interval")
	}
	if ix.Len() != 0 {
		t.Errorf("Len = %d after rejected inserts", ix.Len())
	}
}

func TestOverlappingEarlyStop(t *testing.T) {
	ix := &Index{}
	for i := 0; i < 5; i++ {
		ix.Insert(i, 0, 10)
	}
	var seen int
	ix.Overlapping(0, 10, func(Entry) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Errorf("scan visited %d entries, want 2", seen)
	}
}

func TestOverlaps(t *testing.T) {
	if !Overlaps(0, 5, 4, 9) {
		t.Error("expected overlap")
	}
	if Overlaps(0, 5, 5, 9) {
		t.Error("touching intervals must not overlap")
	}
}
