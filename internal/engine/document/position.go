package document

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/node"
)

// Position addresses a caret location anywhere in a document: a node
// identity plus a node-local position. A position is meaningless once its
// node has been removed.
type Position struct {
	NodeID       node.ID
	NodePosition node.Position
}

// NewPosition creates a document position.
func NewPosition(id node.ID, p node.Position) Position {
	return Position{NodeID: id, NodePosition: p}
}

// Equal reports whether two positions address the same caret location.
func (p Position) Equal(other Position) bool {
	if p.NodeID != other.NodeID {
		return false
	}
	if p.NodePosition == nil || other.NodePosition == nil {
		return p.NodePosition == other.NodePosition
	}
	return p.NodePosition.Equal(other.NodePosition)
}

// IsZero returns true for the zero value.
func (p Position) IsZero() bool {
	return p.NodeID == "" && p.NodePosition == nil
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%s@%v", p.NodeID, p.NodePosition)
}

// Selection is a document-wide selection between a base and an extent.
// Base is where the gesture started and extent where it currently ends;
// they are deliberately not sorted so expand/contract keeps its
// directionality. Use Document.GetRangeBetween for the document-order
// normalized range.
type Selection struct {
	Base   Position
	Extent Position
}

// NewSelection creates a selection from base to extent.
func NewSelection(base, extent Position) Selection {
	return Selection{Base: base, Extent: extent}
}

// NewCollapsedSelection creates a caret with no extent.
func NewCollapsedSelection(p Position) Selection {
	return Selection{Base: p, Extent: p}
}

// IsCollapsed returns true when base and extent are the same position.
func (s Selection) IsCollapsed() bool {
	return s.Base.Equal(s.Extent)
}

// Equal reports whether two selections have the same base and extent.
func (s Selection) Equal(other Selection) bool {
	return s.Base.Equal(other.Base) && s.Extent.Equal(other.Extent)
}

// CollapseTo returns a collapsed selection at the given position.
func (s Selection) CollapseTo(p Position) Selection {
	return Selection{Base: p, Extent: p}
}

// Expand returns a selection with the same base and a new extent.
func (s Selection) Expand(extent Position) Selection {
	return Selection{Base: s.Base, Extent: extent}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("caret(%s)", s.Extent)
	}
	return fmt.Sprintf("selection(%s→%s)", s.Base, s.Extent)
}

// Range is a document-order normalized span: Start never comes after End.
// Produced by Document.GetRangeBetween.
type Range struct {
	Start Position
	End   Position
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s]", r.Start, r.End)
}
