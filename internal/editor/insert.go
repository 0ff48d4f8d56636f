package editor

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// InsertTextCommand inserts text at the caret. The selection must be
// collapsed on a text-bearing node; anything else is a no-op. When a
// composing region is active in the caret's node the region's content is
// replaced, which is how IME composition updates flow through the
// engine.
type InsertTextCommand struct {
	Text string

	// Attributions to apply to the inserted range. When nil the
	// composer's active styles are used.
	Attributions []attrtext.Attribution
}

// Execute implements Command.
func (c InsertTextCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if c.Text == "" {
		return nil
	}

	sel, ok := ctx.Composer.Selection()
	if !ok || !sel.IsCollapsed() {
		return nil
	}
	tn, tp, ok, err := resolveTextCaret(ctx, sel.Extent)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	text := tn.Text()
	offset := tp.Offset

	// An active composing region in this node is replaced by the
	// incoming text.
	if region, has := ctx.Composer.ComposingRegion(); has && region.Start.NodeID == tn.ID() && region.End.NodeID == tn.ID() {
		start, sok := region.Start.NodePosition.(node.TextPosition)
		end, eok := region.End.NodePosition.(node.TextPosition)
		if sok && eok && start.Offset < end.Offset {
			trimmed, rerr := text.RemoveRange(start.Offset, end.Offset)
			if rerr != nil {
				return rerr
			}
			text = trimmed
			offset = start.Offset
			tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})
		}
		ctx.Composer.ClearComposingRegion()
	}

	attrs := c.Attributions
	if attrs == nil {
		attrs = ctx.Composer.ActiveStyles()
	}
	inserted, err := text.InsertString(c.Text, offset, attrs...)
	if err != nil {
		return err
	}
	if err := ctx.Document.ReplaceNodeText(tn.ID(), inserted); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextInserted, NodeID: tn.ID()})

	caret := document.NewPosition(tn.ID(), node.TextPosition{
		Offset:   offset + utf8.RuneCountInString(c.Text),
		Affinity: node.AffinityDownstream,
	})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

// SplitTextNodeCommand splits the caret's node in two at the caret,
// producing a new node of the same kind carrying the downstream half.
// This is the newline/Enter behavior. A non-collapsed or non-text
// selection is a no-op.
type SplitTextNodeCommand struct{}

// Execute implements Command.
func (SplitTextNodeCommand) Execute(ctx *EditContext, tx *Transaction) error {
	sel, ok := ctx.Composer.Selection()
	if !ok || !sel.IsCollapsed() {
		return nil
	}
	tn, tp, ok, err := resolveTextCaret(ctx, sel.Extent)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	text := tn.Text()
	upstream, err := text.CopyText(0, tp.Offset)
	if err != nil {
		return err
	}
	downstream, err := text.CopyText(tp.Offset, text.Len())
	if err != nil {
		return err
	}

	next := tn.CopyWithText(downstream)
	if err := ctx.Document.ReplaceNodeText(tn.ID(), upstream); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditTextRemoved, NodeID: tn.ID()})
	if err := ctx.Document.InsertNodeAfter(tn.ID(), next); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditNodeInserted, NodeID: next.ID()})

	caret := document.NewPosition(next.ID(), node.TextPosition{Affinity: node.AffinityDownstream})
	applySelection(ctx, tx, document.NewCollapsedSelection(caret))
	return nil
}

// InsertNodeAfterCommand inserts a node after an existing one.
type InsertNodeAfterCommand struct {
	ExistingID node.ID
	Node       node.Node
}

// Execute implements Command.
func (c InsertNodeAfterCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if err := ctx.Document.InsertNodeAfter(c.ExistingID, c.Node); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditNodeInserted, NodeID: c.Node.ID()})
	return nil
}

// InsertNodeAtCommand inserts a node at a document index.
type InsertNodeAtCommand struct {
	Index int
	Node  node.Node
}

// Execute implements Command.
func (c InsertNodeAtCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if err := ctx.Document.InsertNodeAt(c.Index, c.Node); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditNodeInserted, NodeID: c.Node.ID()})
	return nil
}

// ReplaceNodeCommand swaps an existing node for a new one in place.
type ReplaceNodeCommand struct {
	OldID node.ID
	Node  node.Node
}

// Execute implements Command.
func (c ReplaceNodeCommand) Execute(ctx *EditContext, tx *Transaction) error {
	if err := ctx.Document.ReplaceNode(c.OldID, c.Node); err != nil {
		return err
	}
	tx.RecordEdit(Edit{Kind: EditNodeReplaced, NodeID: c.Node.ID()})

	// A selection anchored in the replaced node is stale.
	if sel, ok := ctx.Composer.Selection(); ok {
		if sel.Base.NodeID == c.OldID || sel.Extent.NodeID == c.OldID {
			ctx.Composer.ClearSelection()
			tx.RecordEdit(Edit{Kind: EditSelectionMoved})
		}
	}
	return nil
}

// resolveTextCaret resolves a document position to its text-bearing node
// and text position. ok is false when the position addresses a block
// node, which callers treat as a no-op. A text position paired with a
// non-text node is a contract violation.
func resolveTextCaret(ctx *EditContext, p document.Position) (node.TextBearing, node.TextPosition, bool, error) {
	n := ctx.Document.GetNodeByID(p.NodeID)
	if n == nil {
		return nil, node.TextPosition{}, false, nil
	}
	tp, ok := p.NodePosition.(node.TextPosition)
	if !ok {
		return nil, node.TextPosition{}, false, nil
	}
	tn, ok := n.(node.TextBearing)
	if !ok {
		return nil, node.TextPosition{}, false, fmt.Errorf("%w: text position on %T", node.ErrPositionKind, n)
	}
	return tn, tp, true, nil
}
