package editor

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// DeleteUpstreamCommand deletes backward from the caret: the grapheme
// before a mid-text caret, or whatever sits upstream of a boundary caret.
// An expanded selection deletes its covered content instead. Deleting
// against an unselectable neighbor or the document edge is a no-op.
type DeleteUpstreamCommand struct{}

// Execute implements Command.
func (DeleteUpstreamCommand) Execute(ctx *EditContext, tx *Transaction) error {
	sel, ok := ctx.Composer.Selection()
	if !ok {
		return nil
	}
	if !sel.IsCollapsed() {
		return deleteSelection(ctx, tx, sel)
	}

	pos := sel.Extent
	n := ctx.Document.GetNodeByID(pos.NodeID)
	if n == nil {
		return nil
	}

	switch np := pos.NodePosition.(type) {
	case node.TextPosition:
		tn, ok := n.(node.TextBearing)
		if !ok {
			return fmt.Errorf("%w: text position on %T", node.ErrPositionKind, n)
		}
		if np.Offset > 0 {
			return deleteGraphemeBefore(ctx, tx, tn, np.Offset)
		}
		return deleteUpstreamBoundary(ctx, tx, tn)

	case node.BlockPosition:
		return deleteBlockAtCaret(ctx, tx, n)

	default:
		return fmt.Errorf("%w: %T", node.ErrPositionKind, pos.NodePosition)
	}
}

// DeleteDownstreamCommand deletes forward from the caret. It mirrors
// DeleteUpstreamCommand.
type DeleteDownstreamCommand struct{}

// Execute implements Command.
func (DeleteDownstreamCommand) Execute(ctx *EditContext, tx *Transaction) error {
	sel, ok := ctx.Composer.Selection()
	if !ok {
		return nil
	}
	if !sel.IsCollapsed() {
		return deleteSelection(ctx, tx, sel)
	}

	pos := sel.Extent
	n := ctx.Document.GetNodeByID(pos.NodeID)
	if n == nil {
		return nil
	}

	switch np := pos.NodePosition.(type) {
	case node.TextPosition:
		tn, ok := n.(node.TextBearing)
		if !ok {
			return fmt.Errorf("%w: text position on %T", node.ErrPositionKind, n)
		}
		if np.Offset < tn.Text().Len() {
			return deleteGraphemeAfter(ctx, tx, tn, np.Offset)
		}
		return deleteDownstreamBoundary(ctx, tx, tn)

	case node.BlockPosition:
		return deleteBlockAtCaret(ctx, tx, n)

	default:
		return fmt.Errorf("%w: %T", node.ErrPositionKind, pos.NodePosition)
	}
}

// DeleteSelectionCommand deletes the content covered by an explicit
// selection, independent of the composer's current selection.
type DeleteSelectionCommand struct {
	Selection document.Selection
}

// Execute implements Command.
func (c DeleteSelectionCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if c.Selection.IsCollapsed() {
		return nil
	}
	return deleteSelection(ctx, tx, c.Selection)
}

// DeleteNodeCommand removes a node outright. This is the only way to
// remove an unselectable node, which caret-driven deletion refuses to
// touch. A missing node is a no-op.
type DeleteNodeCommand struct {
	NodeID node.ID
}

// Execute implements Command.
func (c DeleteNodeCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if !ctx.Document.DeleteNode(c.NodeID) {
		return nil
	}
	tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: c.NodeID})

	if sel, ok := ctx.Composer.Selection(); ok {
		if sel.Base.NodeID == c.NodeID || sel.Extent.NodeID == c.NodeID {
			ctx.Composer.ClearSelection()
			tx.RecordEdit(Edit{Kind: EditSelectionMoved})
		}
	}
	return nil
}

func deleteGraphemeBefore(ctx *EditContext, tx *Transaction, tn node.TextBearing, offset int) error {
	prev := prevGraphemeOffset(tn.Text().String(), offset)
	trimmed, err := tn.Text().RemoveRange(prev, offset)
	if err != nil {
		return err
	}
	if err := ctx.Document.ReplaceNodeText(tn.ID(), trimmed); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})

	caret := document.NewPosition(tn.ID(), node.TextPosition{Offset: prev, Affinity: node.AffinityDownstream})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

func deleteGraphemeAfter(ctx *EditContext, tx *Transaction, tn node.TextBearing, offset int) error {
	next := nextGraphemeOffset(tn.Text().String(), offset)
	trimmed, err := tn.Text().RemoveRange(offset, next)
	if err != nil {
		return err
	}
	if err := ctx.Document.ReplaceNodeText(tn.ID(), trimmed); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})

	caret := document.NewPosition(tn.ID(), node.TextPosition{Offset: offset, Affinity: node.AffinityDownstream})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

// deleteUpstreamBoundary handles backspace at offset 0: merge with a
// preceding text node, delete a preceding selectable block, or do nothing
// when the neighbor is unselectable or absent.
func deleteUpstreamBoundary(ctx *EditContext, tx *Transaction, tn node.TextBearing) error {
	neighbor := ctx.Document.GetNodeBefore(tn.ID())
	if neighbor == nil {
		return nil
	}

	if prev, ok := neighbor.(node.TextBearing); ok {
		return mergeTextNodes(ctx, tx, prev, tn)
	}
	if !neighbor.Selectable() {
		return nil
	}

	// The block goes away and the caret lands on the boundary of the node
	// that sat on the block's far side, when one exists and can host it.
	other := ctx.Document.GetNodeBefore(neighbor.ID())
	ctx.Document.DeleteNode(neighbor.ID())
	tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: neighbor.ID()})

	if other != nil && other.Selectable() {
		caret := document.NewPosition(other.ID(), other.EndPosition())
		applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	}
	return nil
}

// deleteDownstreamBoundary handles forward-delete at the end of a text
// node's content. It mirrors deleteUpstreamBoundary, except a text merge
// pulls the following node's content into the caret's node.
func deleteDownstreamBoundary(ctx *EditContext, tx *Transaction, tn node.TextBearing) error {
	neighbor := ctx.Document.GetNodeAfter(tn.ID())
	if neighbor == nil {
		return nil
	}

	if next, ok := neighbor.(node.TextBearing); ok {
		return mergeTextNodes(ctx, tx, tn, next)
	}
	if !neighbor.Selectable() {
		return nil
	}

	other := ctx.Document.GetNodeAfter(neighbor.ID())
	ctx.Document.DeleteNode(neighbor.ID())
	tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: neighbor.ID()})

	if other != nil && other.Selectable() {
		caret := document.NewPosition(other.ID(), other.BeginningPosition())
		applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	}
	return nil
}

// deleteBlockAtCaret removes the block hosting the caret and moves the
// caret to the nearest selectable neighbor, preferring the upstream side.
func deleteBlockAtCaret(ctx *EditContext, tx *Transaction, n node.Node) error {
	id := n.ID()
	before := ctx.Document.GetNodeBefore(id)
	after := ctx.Document.GetNodeAfter(id)

	ctx.Document.DeleteNode(id)
	tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: id})

	switch {
	case before != nil && before.Selectable():
		caret := document.NewPosition(before.ID(), before.EndPosition())
		applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	case after != nil && after.Selectable():
		caret := document.NewPosition(after.ID(), after.BeginningPosition())
		applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	default:
		ctx.Composer.ClearSelection()
		tx.RecordEdit(Edit{Kind: EditSelectionMoved})
	}
	return nil
}

// mergeTextNodes appends the downstream node's text onto the upstream
// node, removes the downstream node, and places the caret at the seam.
func mergeTextNodes(ctx *EditContext, tx *Transaction, upstream, downstream node.TextBearing) error {
	seam := upstream.Text().Len()
	merged := upstream.Text().Append(downstream.Text())

	if err := ctx.Document.ReplaceNodeText(upstream.ID(), merged); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextInserted, NodeID: upstream.ID()})
	ctx.Document.DeleteNode(downstream.ID())
	tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: downstream.ID()})

	caret := document.NewPosition(upstream.ID(), node.TextPosition{Offset: seam, Affinity: node.AffinityDownstream})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

// deleteSelection removes everything an expanded selection covers. Text
// nodes at the edges are trimmed, fully covered nodes are removed, and
// surviving text nodes at both edges are merged into one. The caret
// collapses to the start of the deleted range.
func deleteSelection(ctx *EditContext, tx *Transaction, sel document.Selection) error {
	rng, err := ctx.Document.GetRangeBetween(sel.Base, sel.Extent)
	if err != nil {
		return err
	}
	nodes := ctx.Document.GetNodesInside(rng.Start, rng.End)
	if len(nodes) == 0 {
		return nil
	}

	if len(nodes) == 1 {
		return deleteWithinNode(ctx, tx, nodes[0], rng)
	}

	first, last := nodes[0], nodes[len(nodes)-1]
	for _, n := range nodes[1 : len(nodes)-1] {
		ctx.Document.DeleteNode(n.ID())
		tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: n.ID()})
	}

	firstSurvives, err := trimEdgeNode(ctx, tx, first, rng.Start.NodePosition, true)
	if err != nil {
		return err
	}
	lastSurvives, err := trimEdgeNode(ctx, tx, last, rng.End.NodePosition, false)
	if err != nil {
		return err
	}

	firstText, firstIsText := first.(node.TextBearing)
	lastText, lastIsText := last.(node.TextBearing)

	if firstSurvives && lastSurvives && firstIsText && lastIsText {
		// mergeTextNodes places the caret at the seam, which is exactly
		// the deletion start.
		return mergeTextNodes(ctx, tx, firstText, lastText)
	}

	caret, ok := caretAfterRangeDelete(rng, first, firstSurvives, last, lastSurvives)
	if ok {
		applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	} else {
		ctx.Composer.ClearSelection()
		tx.RecordEdit(Edit{Kind: EditSelectionMoved})
	}
	return nil
}

// deleteWithinNode handles a selection confined to one node.
func deleteWithinNode(ctx *EditContext, tx *Transaction, n node.Node, rng document.Range) error {
	tn, ok := n.(node.TextBearing)
	if !ok {
		// An expanded selection over a block covers the whole block.
		return deleteBlockAtCaret(ctx, tx, n)
	}

	start, sok := rng.Start.NodePosition.(node.TextPosition)
	end, eok := rng.End.NodePosition.(node.TextPosition)
	if !sok || !eok {
		return fmt.Errorf("%w: block position on %T", node.ErrPositionKind, n)
	}
	if start.Offset == end.Offset {
		return nil
	}

	trimmed, err := tn.Text().RemoveRange(start.Offset, end.Offset)
	if err != nil {
		return err
	}
	if err := ctx.Document.ReplaceNodeText(tn.ID(), trimmed); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})

	caret := document.NewPosition(tn.ID(), node.TextPosition{Offset: start.Offset, Affinity: node.AffinityDownstream})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

// trimEdgeNode removes the covered portion of a range's edge node.
// survives is false when the node was removed entirely.
func trimEdgeNode(ctx *EditContext, tx *Transaction, n node.Node, np node.Position, isStart bool) (bool, error) {
	tn, isText := n.(node.TextBearing)
	if !isText {
		bp, ok := np.(node.BlockPosition)
		if !ok {
			return false, fmt.Errorf("%w: %T on %T", node.ErrPositionKind, np, n)
		}
		// The block is covered unless the range boundary stops on its
		// near side: upstream for the start edge, downstream for the end.
		covered := bp.Affinity == node.AffinityUpstream
		if !isStart {
			covered = bp.Affinity == node.AffinityDownstream
		}
		if !covered {
			return true, nil
		}
		ctx.Document.DeleteNode(n.ID())
		tx.RecordEdit(Edit{Kind: EditNodeRemoved, NodeID: n.ID()})
		return false, nil
	}

	tp, ok := np.(node.TextPosition)
	if !ok {
		return false, fmt.Errorf("%w: %T on text node", node.ErrPositionKind, np)
	}

	text := tn.Text()
	var trimmed attrtext.Text
	var err error
	if isStart {
		trimmed, err = text.RemoveRange(tp.Offset, text.Len())
	} else {
		trimmed, err = text.RemoveRange(0, tp.Offset)
	}
	if err != nil {
		return false, err
	}
	if err := ctx.Document.ReplaceNodeText(tn.ID(), trimmed); err != nil {
		return false, err
	}
	tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})
	return true, nil
}

// caretAfterRangeDelete picks the caret landing after a multi-node
// deletion when the edges could not merge.
func caretAfterRangeDelete(rng document.Range, first node.Node, firstSurvives bool, last node.Node, lastSurvives bool) (document.Position, bool) {
	if firstSurvives {
		if _, ok := first.(node.TextBearing); ok {
			if tp, ok := rng.Start.NodePosition.(node.TextPosition); ok {
				return document.NewPosition(first.ID(), node.TextPosition{Offset: tp.Offset, Affinity: node.AffinityDownstream}), true
			}
		}
		return document.NewPosition(first.ID(), rng.Start.NodePosition), true
	}
	if lastSurvives && last.Selectable() {
		return document.NewPosition(last.ID(), last.BeginningPosition()), true
	}
	return document.Position{}, false
}
