package node

import "fmt"

// Selection is a node-local selection between two same-kind positions.
// Base and extent preserve gesture direction; use the node's
// SelectUpstreamPosition/SelectDownstreamPosition to order them.
type Selection interface {
	// IsCollapsed returns true when base and extent are the same position.
	IsCollapsed() bool

	String() string

	isSelection()
}

// TextSelection selects a rune range inside a text node. Base is where the
// selection started, Extent where it currently ends; either may be the
// smaller offset.
type TextSelection struct {
	Base   int
	Extent int
}

func (TextSelection) isSelection() {}

// IsCollapsed implements Selection.
func (s TextSelection) IsCollapsed() bool {
	return s.Base == s.Extent
}

// Start returns the lower of base and extent.
func (s TextSelection) Start() int {
	if s.Base <= s.Extent {
		return s.Base
	}
	return s.Extent
}

// End returns the higher of base and extent.
func (s TextSelection) End() int {
	if s.Base >= s.Extent {
		return s.Base
	}
	return s.Extent
}

// String returns a human-readable representation of the selection.
func (s TextSelection) String() string {
	return fmt.Sprintf("textsel(%d→%d)", s.Base, s.Extent)
}

// BlockSelection selects a block node, in whole or not at all. A collapsed
// block selection is a caret resting on one side of the block; an expanded
// one covers the block itself.
type BlockSelection struct {
	Base   BlockPosition
	Extent BlockPosition
}

func (BlockSelection) isSelection() {}

// IsCollapsed implements Selection.
func (s BlockSelection) IsCollapsed() bool {
	return s.Base.Affinity == s.Extent.Affinity
}

// String returns a human-readable representation of the selection.
func (s BlockSelection) String() string {
	return fmt.Sprintf("blocksel(%s→%s)", s.Base.Affinity, s.Extent.Affinity)
}
