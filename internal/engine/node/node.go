package node

import (
	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/attrtext"
)

// ID uniquely identifies a node for its lifetime. IDs are never reused
// after removal; selections reference nodes by ID because index positions
// shift under structural edits.
type ID string

// NewID generates a fresh unique node ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// Metadata keys used by the engine. Hosts may attach arbitrary additional
// keys (e.g. rendering hints).
const (
	// MetadataBlockType tags a text node with its block role, e.g.
	// "paragraph", "header1", "blockquote".
	MetadataBlockType = "blockType"
)

// Node is one block-level unit of document structure. Every node has a
// stable identity and exposes a position/selection algebra over its own
// content; the document orders nodes but never interprets their
// node-local positions.
type Node interface {
	// ID returns the node's immutable identifier.
	ID() ID

	// Metadata returns the value stored under key.
	Metadata(key string) (any, bool)

	// SetMetadata stores a value under key.
	SetMetadata(key string, value any)

	// Selectable reports whether the node can host a caret. Unselectable
	// nodes are traversed during navigation but never accept selection.
	Selectable() bool

	// BeginningPosition returns the node's first caret location.
	BeginningPosition() Position

	// EndPosition returns the node's last caret location.
	EndPosition() Position

	// SelectUpstreamPosition returns whichever of two positions comes
	// earlier in node-local order. Returns ErrPositionKind when a position
	// of the wrong kind is supplied.
	SelectUpstreamPosition(p1, p2 Position) (Position, error)

	// SelectDownstreamPosition returns whichever of two positions comes
	// later in node-local order. Returns ErrPositionKind when a position
	// of the wrong kind is supplied.
	SelectDownstreamPosition(p1, p2 Position) (Position, error)

	// ComputeSelection builds the node-local selection between base and
	// extent. Returns ErrPositionKind for wrong-kind positions.
	ComputeSelection(base, extent Position) (Selection, error)

	// CopyContent returns the textual content covered by a node-local
	// selection. Block nodes return an opaque placeholder or the empty
	// string.
	CopyContent(selection Selection) (string, error)

	// HasEquivalentContent reports value equality ignoring identity. Used
	// for content diffing, not reference comparison.
	HasEquivalentContent(other Node) bool
}

// TextBearing is implemented by nodes that own attributed text and expose
// rune-offset positions (paragraphs, list items).
type TextBearing interface {
	Node

	// Text returns the node's current attributed text value.
	Text() attrtext.Text

	// SetText replaces the node's text value. Mutation notifications are
	// the document's responsibility; prefer Document.ReplaceNodeText.
	SetText(text attrtext.Text)

	// CopyWithText creates a node of the same kind carrying the given
	// text, with a fresh ID and a copy of the metadata. Used when a
	// structural edit splits a node.
	CopyWithText(text attrtext.Text) TextBearing
}

// metadata is the shared key/value store embedded by node kinds.
type metadata struct {
	values map[string]any
}

func (m *metadata) Metadata(key string) (any, bool) {
	if m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *metadata) SetMetadata(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
}

func (m *metadata) copyValues() map[string]any {
	if m.values == nil {
		return nil
	}
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
