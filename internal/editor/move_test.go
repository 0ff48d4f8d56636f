package editor

import (
	"testing"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

func TestMoveCaretWithinText(t *testing.T) {
	para := node.NewTextNode(attrtext.New("héllo"))
	ed, _, comp := newSession(t, para)

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 0}))

	if res := ed.MoveCaretRight(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 1 {
		t.Errorf("expected offset 1, got %d", off)
	}

	if res := ed.MoveCaretLeft(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 0 {
		t.Errorf("expected offset 0, got %d", off)
	}
}

func TestMoveCaretByGraphemeCluster(t *testing.T) {
	// Family emoji: one grapheme cluster, seven runes.
	family := "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"
	para := node.NewTextNode(attrtext.New("a" + family + "b"))
	ed, _, comp := newSession(t, para)

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 1}))
	if res := ed.MoveCaretRight(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	_, off := textOffsetAt(t, comp)
	if off != 8 {
		t.Errorf("expected caret past the whole cluster at 8, got %d", off)
	}

	if res := ed.MoveCaretLeft(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 1 {
		t.Errorf("expected caret back at 1, got %d", off)
	}
}

func TestMoveCaretByWord(t *testing.T) {
	para := node.NewTextNode(attrtext.New("foo bar baz"))
	ed, _, comp := newSession(t, para)

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 0}))
	if res := ed.MoveCaretRight(GranWord); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 3 {
		t.Errorf("expected word boundary at 3, got %d", off)
	}

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 5}))
	if res := ed.MoveCaretLeft(GranWord); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 4 {
		t.Errorf("expected word boundary at 4, got %d", off)
	}
}

func TestMoveCaretLineBoundaries(t *testing.T) {
	para := node.NewTextNode(attrtext.New("one\ntwo"))
	ed, _, comp := newSession(t, para)

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 5}))
	if res := ed.MoveCaretLeft(GranLine); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 4 {
		t.Errorf("expected start of line at 4, got %d", off)
	}

	// Already at the line start: no movement, no node crossing.
	if res := ed.MoveCaretLeft(GranLine); !res.IsNoOp() {
		t.Errorf("expected no-op at line start, got %v", res.Status)
	}

	if res := ed.MoveCaretRight(GranLine); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 7 {
		t.Errorf("expected end of line at 7, got %d", off)
	}
}

func TestMoveCaretSkipsUnselectableNode(t *testing.T) {
	p1 := node.NewTextNode(attrtext.New("ab"))
	hr := node.NewHorizontalRuleNode(node.WithRuleSelectable(false))
	p2 := node.NewTextNode(attrtext.New("cd"))
	ed, _, comp := newSession(t, p1, hr, p2)

	ed.PlaceCaret(document.NewPosition(p1.ID(), node.TextPosition{Offset: 2}))
	if res := ed.MoveCaretRight(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	id, off := textOffsetAt(t, comp)
	if id != p2.ID() || off != 0 {
		t.Errorf("expected caret at third node offset 0, got %s@%d", id, off)
	}

	// And back again leftward.
	if res := ed.MoveCaretLeft(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	id, off = textOffsetAt(t, comp)
	if id != p1.ID() || off != 2 {
		t.Errorf("expected caret at first node offset 2, got %s@%d", id, off)
	}
}

func TestMoveCaretRejectedAtDocumentEdge(t *testing.T) {
	p1 := node.NewTextNode(attrtext.New("ab"))
	hr := node.NewHorizontalRuleNode(node.WithRuleSelectable(false))
	ed, _, comp := newSession(t, p1, hr)

	start := document.NewPosition(p1.ID(), node.TextPosition{Offset: 2})
	ed.PlaceCaret(start)

	// Only an unselectable node remains downstream: the move is rejected
	// and the selection is untouched.
	if res := ed.MoveCaretRight(GranCharacter); !res.IsNoOp() {
		t.Errorf("expected no-op, got %v", res.Status)
	}
	if got := caretAt(t, comp); !got.Equal(start) {
		t.Errorf("selection moved on rejected edge: %v", got)
	}

	// Idempotence: repeating changes nothing.
	if res := ed.MoveCaretRight(GranCharacter); !res.IsNoOp() {
		t.Errorf("expected repeated no-op, got %v", res.Status)
	}
}

func TestMoveCaretAcrossSelectableBlock(t *testing.T) {
	p1 := node.NewTextNode(attrtext.New("a"))
	hr := node.NewHorizontalRuleNode()
	p2 := node.NewTextNode(attrtext.New("b"))
	ed, _, comp := newSession(t, p1, hr, p2)

	ed.PlaceCaret(document.NewPosition(p1.ID(), node.TextPosition{Offset: 1}))

	// First move lands on the block's upstream sentinel.
	ed.MoveCaretRight(GranCharacter)
	pos := caretAt(t, comp)
	bp, ok := pos.NodePosition.(node.BlockPosition)
	if pos.NodeID != hr.ID() || !ok || bp.Affinity != node.AffinityUpstream {
		t.Fatalf("expected upstream block caret, got %v", pos)
	}

	// Second move flips to the downstream sentinel.
	ed.MoveCaretRight(GranCharacter)
	pos = caretAt(t, comp)
	bp, ok = pos.NodePosition.(node.BlockPosition)
	if pos.NodeID != hr.ID() || !ok || bp.Affinity != node.AffinityDownstream {
		t.Fatalf("expected downstream block caret, got %v", pos)
	}

	// Third move crosses out of the block.
	ed.MoveCaretRight(GranCharacter)
	id, off := textOffsetAt(t, comp)
	if id != p2.ID() || off != 0 {
		t.Errorf("expected caret in following node, got %s@%d", id, off)
	}
}

func TestMoveCaretExpandsSelection(t *testing.T) {
	para := node.NewTextNode(attrtext.New("abc"))
	ed, _, comp := newSession(t, para)

	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 0}))
	ed.MoveCaret(MoveRight, GranCharacter, true)
	ed.MoveCaret(MoveRight, GranCharacter, true)

	sel, _ := comp.Selection()
	if sel.IsCollapsed() {
		t.Fatal("expected expanded selection")
	}
	base := sel.Base.NodePosition.(node.TextPosition)
	extent := sel.Extent.NodePosition.(node.TextPosition)
	if base.Offset != 0 || extent.Offset != 2 {
		t.Errorf("expected selection 0..2, got %d..%d", base.Offset, extent.Offset)
	}
}

func TestPlainMoveCollapsesExpandedSelection(t *testing.T) {
	para := node.NewTextNode(attrtext.New("abc"))
	ed, _, comp := newSession(t, para)

	ed.SetSelection(document.NewSelection(
		document.NewPosition(para.ID(), node.TextPosition{Offset: 2}),
		document.NewPosition(para.ID(), node.TextPosition{Offset: 0}),
	))

	// Left-arrow collapses a backwards selection to its upstream edge.
	if res := ed.MoveCaretLeft(GranCharacter); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 0 {
		t.Errorf("expected collapse at 0, got %d", off)
	}
}

func TestMoveCaretVerticalWithinNode(t *testing.T) {
	para := node.NewTextNode(attrtext.New("alpha\nbe\ngamma"))
	ed, _, comp := newSession(t, para)

	// Column 4 on the first line; the second line is shorter so the
	// column clamps.
	ed.PlaceCaret(document.NewPosition(para.ID(), node.TextPosition{Offset: 4}))
	if res := ed.MoveCaretDown(); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 8 {
		t.Errorf("expected clamped offset 8, got %d", off)
	}

	if res := ed.MoveCaretUp(); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	if _, off := textOffsetAt(t, comp); off != 2 {
		t.Errorf("expected offset 2, got %d", off)
	}
}

func TestMoveCaretVerticalCrossesNodes(t *testing.T) {
	p1 := node.NewTextNode(attrtext.New("ab"))
	p2 := node.NewTextNode(attrtext.New("cd"))
	ed, _, comp := newSession(t, p1, p2)

	ed.PlaceCaret(document.NewPosition(p1.ID(), node.TextPosition{Offset: 1}))
	if res := ed.MoveCaretDown(); !res.IsOK() {
		t.Fatalf("expected ok, got %v", res.Status)
	}
	id, off := textOffsetAt(t, comp)
	if id != p2.ID() || off != 0 {
		t.Errorf("expected beginning of next node, got %s@%d", id, off)
	}

	// Up from the first node's only line is rejected at the edge.
	ed.PlaceCaret(document.NewPosition(p1.ID(), node.TextPosition{Offset: 1}))
	if res := ed.MoveCaretUp(); !res.IsNoOp() {
		t.Errorf("expected no-op at top edge, got %v", res.Status)
	}
}

func TestMoveCaretWithoutSelectionIsNoOp(t *testing.T) {
	para := node.NewTextNode(attrtext.New("ab"))
	ed, _, _ := newSession(t, para)

	if res := ed.MoveCaretRight(GranCharacter); !res.IsNoOp() {
		t.Errorf("expected no-op without selection, got %v", res.Status)
	}
}
