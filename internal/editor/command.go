package editor

import (
	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/composer"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/layout"
)

// Command is a single logical edit executed inside a transaction. A
// command reads document and selection state through the context, applies
// its mutations through the document's methods, and records every
// primitive change on the transaction. Returning a nil error with no
// recorded edits is how a command reports a no-op.
type Command interface {
	Execute(ctx *EditContext, tx *Transaction) error
}

// EditContext gives commands access to the editing session's subsystems.
type EditContext struct {
	Document *document.Document
	Composer *composer.Composer
	Layout   layout.Provider
	Log      zerolog.Logger
}

// Transaction accumulates the primitive mutations of one command batch so
// callers and observers see a single coherent edit. There is no rollback:
// a failing command leaves earlier steps committed.
type Transaction struct {
	edits []Edit
}

// RecordEdit appends a primitive mutation to the transaction's log.
// Commands must record every change they apply; the editor reports a
// batch as a no-op when nothing was recorded.
func (tx *Transaction) RecordEdit(e Edit) {
	tx.edits = append(tx.edits, e)
}

// Edits returns the mutations recorded so far.
func (tx *Transaction) Edits() []Edit {
	out := make([]Edit, len(tx.edits))
	copy(out, tx.edits)
	return out
}

// applySelection moves the composer's selection and records the move,
// skipping both when the selection would not change.
func applySelection(ctx *EditContext, tx *Transaction, sel document.Selection) {
	if cur, ok := ctx.Composer.Selection(); ok && cur.Equal(sel) {
		return
	}
	ctx.Composer.SetSelection(sel)
	tx.RecordEdit(Edit{Kind: EditSelectionMoved})
}
