package editor

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// nodeTextRange pairs a text node with the inclusive character range a
// document selection covers within it.
type nodeTextRange struct {
	node node.TextBearing
	r    attrtext.SpanRange
}

// textRangesInSelection resolves a document selection to per-node
// inclusive character ranges. The boundary nodes contribute their covered
// portion, interior text nodes their full content; block nodes and empty
// coverage are skipped.
func textRangesInSelection(ctx *EditContext, sel document.Selection) ([]nodeTextRange, error) {
	rng, err := ctx.Document.GetRangeBetween(sel.Base, sel.Extent)
	if err != nil {
		return nil, err
	}
	nodes := ctx.Document.GetNodesInside(rng.Start, rng.End)

	var out []nodeTextRange
	for i, n := range nodes {
		tn, ok := n.(node.TextBearing)
		if !ok {
			continue
		}
		length := tn.Text().Len()
		if length == 0 {
			continue
		}

		var start, end int
		switch {
		case len(nodes) == 1:
			s, e, err := textOffsets(rng.Start.NodePosition, rng.End.NodePosition)
			if err != nil {
				return nil, err
			}
			start, end = s, e-1
		case i == 0:
			s, err := textOffset(rng.Start.NodePosition)
			if err != nil {
				return nil, err
			}
			start, end = s, length-1
		case i == len(nodes)-1:
			e, err := textOffset(rng.End.NodePosition)
			if err != nil {
				return nil, err
			}
			start, end = 0, e-1
		default:
			start, end = 0, length-1
		}
		if start > end {
			continue
		}

		out = append(out, nodeTextRange{node: tn, r: attrtext.NewSpanRange(start, end)})
	}
	return out, nil
}

func textOffset(p node.Position) (int, error) {
	tp, ok := p.(node.TextPosition)
	if !ok {
		return 0, fmt.Errorf("%w: %T on text node", node.ErrPositionKind, p)
	}
	return tp.Offset, nil
}

func textOffsets(a, b node.Position) (int, int, error) {
	s, err := textOffset(a)
	if err != nil {
		return 0, 0, err
	}
	e, err := textOffset(b)
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

// AddAttributionsCommand applies attributions to every character the
// selection covers.
type AddAttributionsCommand struct {
	Selection    document.Selection
	Attributions []attrtext.Attribution
}

// Execute implements Command.
func (c AddAttributionsCommand) Execute(ctx *EditContext, tx *Transaction) error {
	ranges, err := textRangesInSelection(ctx, c.Selection)
	if err != nil {
		return err
	}
	return applyAttributions(ctx, tx, ranges, c.Attributions, true)
}

// RemoveAttributionsCommand strips attributions from every character the
// selection covers.
type RemoveAttributionsCommand struct {
	Selection    document.Selection
	Attributions []attrtext.Attribution
}

// Execute implements Command.
func (c RemoveAttributionsCommand) Execute(ctx *EditContext, tx *Transaction) error {
	ranges, err := textRangesInSelection(ctx, c.Selection)
	if err != nil {
		return err
	}
	return applyAttributions(ctx, tx, ranges, c.Attributions, false)
}

// ToggleAttributionsCommand toggles attributions across the selection
// with global-any semantics: if any covered character in any covered
// node carries a requested attribution, the whole operation removes;
// only a selection completely free of them adds.
type ToggleAttributionsCommand struct {
	Selection    document.Selection
	Attributions []attrtext.Attribution
}

// Execute implements Command.
func (c ToggleAttributionsCommand) Execute(ctx *EditContext, tx *Transaction) error {
	ranges, err := textRangesInSelection(ctx, c.Selection)
	if err != nil {
		return err
	}

	anyPresent := false
	for _, ntr := range ranges {
		for _, a := range c.Attributions {
			if ntr.node.Text().HasAttributionWithin(a, ntr.r) {
				anyPresent = true
				break
			}
		}
		if anyPresent {
			break
		}
	}
	return applyAttributions(ctx, tx, ranges, c.Attributions, !anyPresent)
}

func applyAttributions(ctx *EditContext, tx *Transaction, ranges []nodeTextRange, attrs []attrtext.Attribution, add bool) error {
	for _, ntr := range ranges {
		text := ntr.node.Text()
		for _, a := range attrs {
			var err error
			if add {
				text, err = text.AddAttribution(a, ntr.r)
			} else {
				text, err = text.RemoveAttribution(a, ntr.r)
			}
			if err != nil {
				return err
			}
		}
		if text.Equal(ntr.node.Text()) {
			continue
		}
		if err := ctx.Document.ReplaceNodeText(ntr.node.ID(), text); err != nil {
			return err
		}
		tx.RecordEdit(Edit{Kind: EditAttributionsChanged, NodeID: ntr.node.ID()})
	}
	return nil
}

// selectionHasAttributions reports whether each attribution appears on at
// least one character the selection covers.
func selectionHasAttributions(ctx *EditContext, sel document.Selection, attrs []attrtext.Attribution) (bool, error) {
	ranges, err := textRangesInSelection(ctx, sel)
	if err != nil {
		return false, err
	}
	for _, a := range attrs {
		found := false
		for _, ntr := range ranges {
			if ntr.node.Text().HasAttributionWithin(a, ntr.r) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return len(ranges) > 0, nil
}
