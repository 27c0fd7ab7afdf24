// Package interval provides a small index over half-open 1D intervals,
// used to find overlap candidates along a single axis.
package interval

import "slices"

// Entry is one indexed interval [Lo, Hi) tagged with the caller's id.
type Entry struct {
	ID int
	Lo float64
	Hi float64
}

// Index holds entries sorted by Lo for ordered overlap scans.
//
// The zero value is ready to use. Index is not safe for concurrent
// modification.
type Index struct {
	entries []Entry
	sorted  bool
}

// Insert adds the half-open interval [lo, hi) under the given id.
// Degenerate intervals (hi <= lo) are rejected and not indexed.
func (ix *Index) Insert(id int, lo, hi float64) bool {
	if hi <= lo {
		return false
	}
	ix.entries = append(ix.entries, Entry{ID: id, Lo: lo, Hi: hi})
	ix.sorted = false
	return true
}

// Len returns the number of indexed intervals.
func (ix *Index) Len() int {
	return len(ix.entries)
}

func (ix *Index) sort() {
	if ix.sorted {
		return
	}
	slices.SortFunc(ix.entries, func(a, b Entry) int {
		switch {
		case a.Lo < b.Lo:
			return -1
		case a.Lo > b.Lo:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	ix.sorted = true
}

// Overlapping calls fn for every entry whose interval intersects [lo, hi),
// in (Lo, ID) order. Touching intervals do not intersect: [0,5) and [5,9)
// share no point. Returning false from fn stops the scan.
func (ix *Index) Overlapping(lo, hi float64, fn func(Entry) bool) {
	if hi <= lo {
		return
	}
	ix.sort()
	for _, e := range ix.entries {
		if e.Lo >= hi {
			break
		}
		if e.Hi <= lo {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Overlaps reports whether [aLo, aHi) and [bLo, bHi) share any point.
func Overlaps(aLo, aHi, bLo, bHi float64) bool {
	return aLo < bHi && bLo < aHi
}
