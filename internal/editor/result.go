package editor

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/node"
)

// Status indicates the outcome of executing a command batch.
type Status uint8

const (
	// StatusOK indicates the batch changed document or selection state.
	StatusOK Status = iota
	// StatusNoOp indicates the batch ran but had no effect. This is the
	// expected outcome for rejected boundary operations and is not an
	// error.
	StatusNoOp
	// StatusError indicates a command failed. Steps applied before the
	// failure remain committed; there is no rollback.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// EditKind categorizes a primitive mutation recorded by a transaction.
type EditKind uint8

const (
	EditTextInserted EditKind = iota
	EditTextRemoved
	EditAttributionsChanged
	EditNodeInserted
	EditNodeRemoved
	EditNodeReplaced
	EditSelectionMoved
)

// String returns a string representation of the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditTextInserted:
		return "text-inserted"
	case EditTextRemoved:
		return "text-removed"
	case EditAttributionsChanged:
		return "attributions-changed"
	case EditNodeInserted:
		return "node-inserted"
	case EditNodeRemoved:
		return "node-removed"
	case EditNodeReplaced:
		return "node-replaced"
	case EditSelectionMoved:
		return "selection-moved"
	default:
		return "unknown"
	}
}

// Edit records one primitive mutation applied during a transaction. Hosts
// can use the edit list to build change tracking or undo on top of the
// engine.
type Edit struct {
	Kind   EditKind
	NodeID node.ID
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.NodeID == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.NodeID)
}

// Result represents the outcome of executing commands.
type Result struct {
	// Status indicates the result status.
	Status Status

	// Err contains the failure when Status is StatusError.
	Err error

	// Edits lists the primitive mutations that were applied, including
	// any applied before a failure.
	Edits []Edit
}

// IsOK returns true if the result indicates applied changes.
func (r Result) IsOK() bool { return r.Status == StatusOK }

// IsNoOp returns true if the result indicates nothing happened.
func (r Result) IsNoOp() bool { return r.Status == StatusNoOp }

// IsError returns true if the result indicates a failure.
func (r Result) IsError() bool { return r.Status == StatusError }
