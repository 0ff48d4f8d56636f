package editor

import (
	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// The methods below are the editor's primitive operation surface: each
// wraps one command in a transaction. Hosts that need compound edits can
// pass multiple commands to Execute directly.

// MoveCaret moves or expands the selection in the given direction and
// granularity.
func (e *Editor) MoveCaret(d Direction, g Granularity, expand bool) Result {
	return e.Execute(MoveCaretCommand{Direction: d, Granularity: g, Expand: expand})
}

// MoveCaretLeft moves the caret one unit upstream.
func (e *Editor) MoveCaretLeft(g Granularity) Result {
	return e.MoveCaret(MoveLeft, g, false)
}

// MoveCaretRight moves the caret one unit downstream.
func (e *Editor) MoveCaretRight(g Granularity) Result {
	return e.MoveCaret(MoveRight, g, false)
}

// MoveCaretUp moves the caret one line up.
func (e *Editor) MoveCaretUp() Result {
	return e.MoveCaret(MoveUp, GranCharacter, false)
}

// MoveCaretDown moves the caret one line down.
func (e *Editor) MoveCaretDown() Result {
	return e.MoveCaret(MoveDown, GranCharacter, false)
}

// SetSelection places the selection directly.
func (e *Editor) SetSelection(sel document.Selection) Result {
	return e.Execute(setSelectionCommand{sel: sel})
}

// PlaceCaret collapses the selection at a position.
func (e *Editor) PlaceCaret(p document.Position) Result {
	return e.SetSelection(document.NewCollapsedSelection(p))
}

// SelectAll selects from the first selectable node's beginning to the
// last selectable node's end.
func (e *Editor) SelectAll() Result {
	doc := e.ctx.Document
	var first, last node.Node
	for i := 0; i < doc.NodeCount(); i++ {
		n := doc.GetNodeAt(i)
		if !n.Selectable() {
			continue
		}
		if first == nil {
			first = n
		}
		last = n
	}
	if first == nil {
		return Result{Status: StatusNoOp}
	}
	return e.SetSelection(document.NewSelection(
		document.NewPosition(first.ID(), first.BeginningPosition()),
		document.NewPosition(last.ID(), last.EndPosition()),
	))
}

// InsertText inserts text at the caret using the composer's active
// styles.
func (e *Editor) InsertText(text string) Result {
	return e.Execute(InsertTextCommand{Text: text})
}

// SplitBlock splits the caret's node at the caret, the Enter-key
// behavior.
func (e *Editor) SplitBlock() Result {
	return e.Execute(SplitTextNodeCommand{})
}

// DeleteUpstream deletes backward from the caret, or the covered content
// when the selection is expanded.
func (e *Editor) DeleteUpstream() Result {
	return e.Execute(DeleteUpstreamCommand{})
}

// DeleteDownstream deletes forward from the caret, or the covered content
// when the selection is expanded.
func (e *Editor) DeleteDownstream() Result {
	return e.Execute(DeleteDownstreamCommand{})
}

// DeleteSelection deletes the current selection's covered content.
func (e *Editor) DeleteSelection() Result {
	sel, ok := e.ctx.Composer.Selection()
	if !ok {
		return Result{Status: StatusNoOp}
	}
	return e.Execute(DeleteSelectionCommand{Selection: sel})
}

// AddAttributions applies attributions across the current selection.
func (e *Editor) AddAttributions(attrs ...attrtext.Attribution) Result {
	sel, ok := e.ctx.Composer.Selection()
	if !ok {
		return Result{Status: StatusNoOp}
	}
	return e.Execute(AddAttributionsCommand{Selection: sel, Attributions: attrs})
}

// RemoveAttributions strips attributions across the current selection.
func (e *Editor) RemoveAttributions(attrs ...attrtext.Attribution) Result {
	sel, ok := e.ctx.Composer.Selection()
	if !ok {
		return Result{Status: StatusNoOp}
	}
	return e.Execute(RemoveAttributionsCommand{Selection: sel, Attributions: attrs})
}

// ToggleAttributions toggles attributions across the current selection.
// With a collapsed selection the composer's active styles are toggled
// instead, affecting subsequently typed text.
func (e *Editor) ToggleAttributions(attrs ...attrtext.Attribution) Result {
	sel, ok := e.ctx.Composer.Selection()
	if !ok {
		return Result{Status: StatusNoOp}
	}
	if sel.IsCollapsed() {
		for _, a := range attrs {
			e.ctx.Composer.ToggleActiveStyle(a)
		}
		return Result{Status: StatusOK}
	}
	return e.Execute(ToggleAttributionsCommand{Selection: sel, Attributions: attrs})
}

// SelectionHasAttributions reports whether each attribution appears
// somewhere in the current selection.
func (e *Editor) SelectionHasAttributions(attrs ...attrtext.Attribution) (bool, error) {
	sel, ok := e.ctx.Composer.Selection()
	if !ok {
		return false, nil
	}
	return selectionHasAttributions(e.ctx, sel, attrs)
}

// setSelectionCommand routes direct selection placement through the
// transaction machinery so it coalesces and records like any other edit.
type setSelectionCommand struct {
	sel document.Selection
}

func (c setSelectionCommand) Execute(ctx *EditContext, tx *Transaction) error {
	applySelection(ctx, tx, c.sel)
	return nil
}
