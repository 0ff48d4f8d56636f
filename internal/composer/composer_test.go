package composer

import (
	"testing"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
	"github.com/dshills/quill/internal/engine/notify"
)

func caretAt(id node.ID, offset int) document.Selection {
	return document.NewCollapsedSelection(
		document.NewPosition(id, node.TextPosition{Offset: offset}),
	)
}

func TestSelectionLifecycle(t *testing.T) {
	c := New()

	if c.HasSelection() {
		t.Fatal("new composer must have no selection")
	}
	if _, ok := c.Selection(); ok {
		t.Fatal("expected no selection")
	}

	sel := caretAt("a", 3)
	c.SetSelection(sel)

	got, ok := c.Selection()
	if !ok || !got.Equal(sel) {
		t.Errorf("expected selection %s, got %s (ok=%v)", sel, got, ok)
	}

	c.ClearSelection()
	if c.HasSelection() {
		t.Error("expected selection cleared")
	}
}

func TestSelectionChangeNotifies(t *testing.T) {
	c := New()

	count := 0
	c.Subscribe(func(ch notify.Change) {
		if ch.Type != notify.ChangeSelection {
			t.Errorf("unexpected change type %v", ch.Type)
		}
		count++
	})

	c.SetSelection(caretAt("a", 0))
	c.SetSelection(caretAt("a", 0)) // identical, no notification
	c.SetSelection(caretAt("a", 1))
	c.ClearSelection()
	c.ClearSelection() // already clear, no notification

	if count != 3 {
		t.Errorf("expected 3 notifications, got %d", count)
	}
}

func TestComposingRegion(t *testing.T) {
	c := New()

	if _, ok := c.ComposingRegion(); ok {
		t.Fatal("expected no composing region")
	}

	r := document.Range{
		Start: document.NewPosition("a", node.TextPosition{Offset: 0}),
		End:   document.NewPosition("a", node.TextPosition{Offset: 2}),
	}
	c.SetComposingRegion(r)

	got, ok := c.ComposingRegion()
	if !ok || !got.Start.Equal(r.Start) || !got.End.Equal(r.End) {
		t.Errorf("expected composing region %s, got %s", r, got)
	}

	c.ClearComposingRegion()
	if _, ok := c.ComposingRegion(); ok {
		t.Error("expected composing region cleared")
	}
}

func TestClearSelectionDropsComposingRegion(t *testing.T) {
	c := New()
	c.SetSelection(caretAt("a", 1))
	c.SetComposingRegion(document.Range{
		Start: document.NewPosition("a", node.TextPosition{Offset: 0}),
		End:   document.NewPosition("a", node.TextPosition{Offset: 1}),
	})

	c.ClearSelection()
	if _, ok := c.ComposingRegion(); ok {
		t.Error("clearing the selection must end composition")
	}
}

func TestActiveStyles(t *testing.T) {
	c := New()

	if len(c.ActiveStyles()) != 0 {
		t.Fatal("expected no active styles")
	}

	c.ToggleActiveStyle(attrtext.Bold)
	c.ToggleActiveStyle(attrtext.Italics)
	if len(c.ActiveStyles()) != 2 {
		t.Fatalf("expected 2 active styles, got %d", len(c.ActiveStyles()))
	}

	c.ToggleActiveStyle(attrtext.Bold)
	styles := c.ActiveStyles()
	if len(styles) != 1 || !styles[0].Equal(attrtext.Italics) {
		t.Errorf("expected italics only, got %v", styles)
	}
}
