package editor

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// Direction is the direction of a caret movement.
type Direction uint8

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	default:
		return "unknown"
	}
}

// Granularity is the unit of a horizontal caret movement.
type Granularity uint8

const (
	// GranCharacter moves by one grapheme cluster.
	GranCharacter Granularity = iota
	// GranWord moves to the next word segment boundary.
	GranWord
	// GranLine moves to the start or end of the current visual line. Line
	// movement never crosses node boundaries.
	GranLine
)

// MoveCaretCommand moves or expands the selection. Movement that cannot
// proceed (caret at a document edge, or only unselectable nodes beyond)
// is rejected: the selection is left untouched and the command is a
// no-op. Unselectable nodes encountered mid-document are skipped over.
type MoveCaretCommand struct {
	Direction   Direction
	Granularity Granularity

	// Expand keeps the selection base in place and moves only the extent.
	Expand bool
}

// Execute implements Command.
func (c MoveCaretCommand) Execute(ctx *EditContext, tx *Transaction) error {
	sel, ok := ctx.Composer.Selection()
	if !ok {
		return nil
	}

	if c.Direction == MoveUp || c.Direction == MoveDown {
		return c.moveVertical(ctx, tx, sel)
	}
	return c.moveHorizontal(ctx, tx, sel)
}

func (c MoveCaretCommand) moveHorizontal(ctx *EditContext, tx *Transaction, sel document.Selection) error {
	// A plain move with an expanded selection collapses to the
	// direction-facing edge instead of moving.
	if !c.Expand && !sel.IsCollapsed() && c.Granularity == GranCharacter {
		rng, err := ctx.Document.GetRangeBetween(sel.Base, sel.Extent)
		if err != nil {
			return err
		}
		target := rng.Start
		if c.Direction == MoveRight {
			target = rng.End
		}
		applySelection(ctx, tx, document.NewCollapsedSelection(target))
		return nil
	}

	cur := sel.Extent
	n := ctx.Document.GetNodeByID(cur.NodeID)
	if n == nil {
		return fmt.Errorf("%w: %s", document.ErrNodeNotFound, cur.NodeID)
	}

	target, moved, err := c.moveWithinNode(ctx, n, cur)
	if err != nil {
		return err
	}
	if !moved {
		if c.Granularity == GranLine {
			// Line movement stays within the node.
			return nil
		}
		landing, found := crossToNeighbor(ctx, cur.NodeID, c.Direction)
		if !found {
			// Rejected at a document edge.
			return nil
		}
		target = landing
	}

	c.applyMove(ctx, tx, sel, target)
	return nil
}

// moveWithinNode computes the movement target inside the extent's node,
// reporting moved=false when the movement must cross to a neighbor.
func (c MoveCaretCommand) moveWithinNode(ctx *EditContext, n node.Node, cur document.Position) (document.Position, bool, error) {
	switch np := cur.NodePosition.(type) {
	case node.TextPosition:
		tn, ok := n.(node.TextBearing)
		if !ok {
			return document.Position{}, false, fmt.Errorf("%w: text position on %T", node.ErrPositionKind, n)
		}
		return c.moveWithinText(ctx, tn, cur, np)

	case node.BlockPosition:
		// A block exposes two caret stops. Moving toward the far sentinel
		// flips the caret across the block; moving past it crosses out.
		if c.Direction == MoveRight && np.Affinity == node.AffinityUpstream {
			return document.NewPosition(cur.NodeID, node.BlockPosition{Affinity: node.AffinityDownstream}), true, nil
		}
		if c.Direction == MoveLeft && np.Affinity == node.AffinityDownstream {
			return document.NewPosition(cur.NodeID, node.BlockPosition{Affinity: node.AffinityUpstream}), true, nil
		}
		return document.Position{}, false, nil

	default:
		return document.Position{}, false, fmt.Errorf("%w: %T", node.ErrPositionKind, cur.NodePosition)
	}
}

func (c MoveCaretCommand) moveWithinText(ctx *EditContext, tn node.TextBearing, cur document.Position, np node.TextPosition) (document.Position, bool, error) {
	content := tn.Text().String()
	length := tn.Text().Len()

	var target int
	switch c.Granularity {
	case GranWord:
		if c.Direction == MoveLeft {
			target = prevWordOffset(content, np.Offset)
		} else {
			target = nextWordOffset(content, np.Offset)
		}
	case GranLine:
		var p document.Position
		var ok bool
		if c.Direction == MoveLeft {
			p, ok = ctx.Layout.PositionAtStartOfLine(cur)
		} else {
			p, ok = ctx.Layout.PositionAtEndOfLine(cur)
		}
		if !ok || p.Equal(cur) {
			return document.Position{}, false, nil
		}
		return p, true, nil
	default:
		if c.Direction == MoveLeft {
			target = prevGraphemeOffset(content, np.Offset)
		} else {
			target = nextGraphemeOffset(content, np.Offset)
		}
	}

	if target == np.Offset {
		return document.Position{}, false, nil
	}
	aff := node.AffinityDownstream
	if target == length {
		aff = node.AffinityUpstream
	}
	return document.NewPosition(cur.NodeID, node.TextPosition{Offset: target, Affinity: aff}), true, nil
}

func (c MoveCaretCommand) moveVertical(ctx *EditContext, tx *Transaction, sel document.Selection) error {
	cur := sel.Extent
	n := ctx.Document.GetNodeByID(cur.NodeID)
	if n == nil {
		return fmt.Errorf("%w: %s", document.ErrNodeNotFound, cur.NodeID)
	}

	var target document.Position
	var found bool
	if c.Direction == MoveUp {
		target, found = ctx.Layout.PositionOneLineUp(cur)
	} else {
		target, found = ctx.Layout.PositionOneLineDown(cur)
	}
	if !found {
		// No line above/below inside this node: land on the adjacent
		// selectable node as a whole.
		dir := MoveLeft
		if c.Direction == MoveDown {
			dir = MoveRight
		}
		target, found = crossToNeighbor(ctx, cur.NodeID, dir)
		if !found {
			return nil
		}
	}

	c.applyMove(ctx, tx, sel, target)
	return nil
}

func (c MoveCaretCommand) applyMove(ctx *EditContext, tx *Transaction, sel document.Selection, target document.Position) {
	if c.Expand {
		applySelection(ctx, tx, sel.Expand(target))
	} else {
		applySelection(ctx, tx, document.NewCollapsedSelection(target))
	}
}

// crossToNeighbor finds the nearest selectable node beyond fromID in the
// given direction, skipping unselectable nodes, and returns its
// direction-facing boundary position: the beginning when moving right,
// the end when moving left. found is false when no selectable node
// remains, which callers treat as a rejected move.
func crossToNeighbor(ctx *EditContext, fromID node.ID, direction Direction) (document.Position, bool) {
	idx := ctx.Document.GetNodeIndexByID(fromID)
	if idx < 0 {
		return document.Position{}, false
	}

	step := 1
	if direction == MoveLeft {
		step = -1
	}
	for i := idx + step; i >= 0 && i < ctx.Document.NodeCount(); i += step {
		n := ctx.Document.GetNodeAt(i)
		if !n.Selectable() {
			continue
		}
		if direction == MoveLeft {
			return document.NewPosition(n.ID(), n.EndPosition()), true
		}
		return document.NewPosition(n.ID(), n.BeginningPosition()), true
	}
	return document.Position{}, false
}
