package node

import (
	"errors"
	"fmt"
)

// ErrPositionKind is returned when a position of the wrong kind is passed
// to a node. This is a caller contract violation, not an expected editing
// outcome, and callers must not swallow it.
var ErrPositionKind = errors.New("position kind mismatch")

// Affinity disambiguates a caret at a boundary: upstream leans toward the
// start of the document, downstream toward the end.
type Affinity uint8

const (
	// AffinityUpstream places the caret logically before the boundary.
	AffinityUpstream Affinity = iota
	// AffinityDownstream places the caret logically after the boundary.
	AffinityDownstream
)

// String returns the affinity name.
func (a Affinity) String() string {
	switch a {
	case AffinityUpstream:
		return "upstream"
	case AffinityDownstream:
		return "downstream"
	default:
		return "unknown"
	}
}

// Position addresses a caret location inside a single node. The concrete
// type depends on the node kind: TextPosition for text-bearing nodes,
// BlockPosition for opaque block nodes. The set of implementations is
// closed; cross-kind comparisons are contract violations.
type Position interface {
	// Equal reports whether two positions address the same caret location.
	Equal(other Position) bool

	String() string

	isPosition()
}

// TextPosition is a caret location in a text node: a rune offset plus the
// affinity the caret leans toward when the offset sits on a boundary.
// Equality compares offsets only; affinity is a rendering/navigation hint.
type TextPosition struct {
	Offset   int
	Affinity Affinity
}

func (TextPosition) isPosition() {}

// Equal implements Position. Affinity does not participate: two carets at
// the same offset are the same caret.
func (p TextPosition) Equal(other Position) bool {
	q, ok := other.(TextPosition)
	return ok && q.Offset == p.Offset
}

// String returns a human-readable representation of the position.
func (p TextPosition) String() string {
	return fmt.Sprintf("text(%d %s)", p.Offset, p.Affinity)
}

// BlockPosition is the sentinel caret location for a block node that has
// no internal content. The two affinity values act as pseudo-positions so
// a caret can rest just before or just after the block.
type BlockPosition struct {
	Affinity Affinity
}

func (BlockPosition) isPosition() {}

// Equal implements Position. Unlike text positions, affinity matters: the
// caret before a block and the caret after it are distinct locations.
func (p BlockPosition) Equal(other Position) bool {
	q, ok := other.(BlockPosition)
	return ok && q.Affinity == p.Affinity
}

// String returns a human-readable representation of the position.
func (p BlockPosition) String() string {
	return fmt.Sprintf("block(%s)", p.Affinity)
}
