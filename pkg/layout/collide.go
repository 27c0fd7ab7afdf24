package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/scorewell/engrave/pkg/interval"
)

// collisionGap is the clearance inserted between blocks separated during
// horizontal collision resolution.
const collisionGap = 0.25

// detectCollisions finds pairs of collidable blocks whose solved rectangles
// overlap on both axes.
//
// Each collidable block's solved extents are indexed per axis; blocks with a
// degenerate horizontal extent are skipped entirely, and a degenerate
// vertical extent keeps a block out of the vertical index. Candidates are
// then scanned on the denser axis first, which discards the most false
// positives before the cross-check on the other axis. Blocks never collide
// with themselves or with blocks sharing their source item.
func detectCollisions(sys *System, tr *translator) [][2]int {
	var xIndex, yIndex interval.Index

	for i := range sys.Blocks {
		if !sys.Blocks[i].Collidable {
			continue
		}
		if xIndex.Insert(i, tr.startOf(i), tr.endOf(i)) {
			yIndex.Insert(i, tr.topOf(i), tr.bottomOf(i))
		}
	}

	if len(sys.HorizontalLines) > len(sys.VerticalLines) {
		// More horizontal lines means the system is horizontally denser, so
		// horizontal overlaps are the more selective first filter.
		return scanCollisions(sys, tr, &xIndex, &yIndex, tr.startOf, tr.endOf, tr.topOf, tr.bottomOf)
	}
	return scanCollisions(sys, tr, &yIndex, &xIndex, tr.topOf, tr.bottomOf, tr.startOf, tr.endOf)
}

// scanCollisions walks the primary-axis index for overlap candidates and
// confirms each candidate against the secondary axis. The first secondary
// confirmation settles a candidate pair.
func scanCollisions(
	sys *System,
	tr *translator,
	primary, secondary *interval.Index,
	primaryLo, primaryHi, secondaryLo, secondaryHi func(int) float64,
) [][2]int {
	var collisions [][2]int

	for i := range sys.Blocks {
		if !sys.Blocks[i].Collidable {
			continue
		}
		primary.Overlapping(primaryLo(i), primaryHi(i), func(cand interval.Entry) bool {
			j := cand.ID
			if j == i || sys.Blocks[i].Source.ItemID == sys.Blocks[j].Source.ItemID {
				return true
			}
			secondary.Overlapping(secondaryLo(i), secondaryHi(i), func(other interval.Entry) bool {
				if other.ID != j {
					return true
				}
				collisions = append(collisions, [2]int{i, j})
				return false
			})
			return true
		})
	}

	return collisions
}

// resolveCollisions repairs detected collisions and returns the pairs it
// could not repair.
//
// A pair where either block may move vertically is left unresolved: vertical
// repair would need to re-run detection on every moved block, and that pass
// is not implemented yet. The pair is logged and reported instead. All other
// pairs are separated horizontally by locking the block with the later
// solved start behind the other one. Horizontal repair does not re-run
// detection either, so a repair can in principle introduce a new overlap
// further along the row.
func resolveCollisions(sys *System, tr *translator, collisions [][2]int, logger *log.Logger) ([][2]int, error) {
	var unresolved [][2]int

	for _, pair := range collisions {
		a, b := pair[0], pair[1]
		blockA, blockB := sys.Blocks[a], sys.Blocks[b]

		if blockA.CanMoveUp || blockA.CanMoveDown || blockB.CanMoveUp || blockB.CanMoveDown {
			logger.Warn("unresolved vertical collision between blocks", "block_a", a, "block_b", b)
			unresolved = append(unresolved, pair)
			continue
		}

		var err error
		if tr.startOf(a) > tr.startOf(b) {
			err = tr.addBlockConstraint(a, blockA, BlockConstraint{Kind: LockAfterBlock, A: b, Distance: collisionGap})
		} else {
			err = tr.addBlockConstraint(b, blockB, BlockConstraint{Kind: LockAfterBlock, A: a, Distance: collisionGap})
		}
		if err != nil {
			return nil, fmt.Errorf("resolving collision between blocks %d and %d: %w", a, b, err)
		}
	}

	return unresolved, nil
}
