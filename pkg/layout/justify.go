package layout

import (
	"fmt"

	"github.com/scorewell/engrave/pkg/solver"
)

// applyJustification aligns or stretches the solved system to its target
// width.
//
// The engraved width is the maximal solved block end before justification.
// Start, end, and centered alignment move the whole system by re-suggesting
// the aligned start. Justified mode instead stretches every spacing block by
// a common ratio so the surplus width spreads evenly across the system.
func applyJustification(sys *System, tr *translator) error {
	engraved := 0.0
	for i := range sys.Blocks {
		if end := tr.endOf(i); end > engraved {
			engraved = end
		}
	}

	switch sys.Justification {
	case JustifyStart:
		// Already the default; re-suggesting the same value is a no-op in
		// the solver.
		if err := tr.slv.SuggestValue(tr.alignedStart, 0); err != nil {
			return fmt.Errorf("justify start: %w", err)
		}

	case JustifyEnd:
		if err := tr.slv.SuggestValue(tr.alignedStart, sys.TargetWidth-engraved); err != nil {
			return fmt.Errorf("justify end: %w", err)
		}

	case JustifyCentered:
		if err := tr.slv.SuggestValue(tr.alignedStart, (sys.TargetWidth-engraved)/2); err != nil {
			return fmt.Errorf("justify centered: %w", err)
		}

	case Justified:
		if len(tr.spacingBlocks) == 0 {
			return nil
		}
		ratio := (tr.totalSpacing + sys.TargetWidth - engraved) / tr.totalSpacing
		for _, i := range tr.spacingBlocks {
			b := sys.Blocks[i]
			_, _, start, end, err := tr.blockEdges(i)
			if err != nil {
				return err
			}
			// Required so the stretch overrides the block's strong
			// fixed-width relation.
			rhs := start.PlusConstant(b.Width.Value * ratio)
			if err := tr.add(end, rhs, solver.EQ, solver.Required); err != nil {
				return fmt.Errorf("justify spacing block %d: %w", i, err)
			}
		}
	}

	return nil
}
