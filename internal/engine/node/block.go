package node

// BlockNode is the shared implementation for nodes with no internal
// addressable content. Its position algebra is the two-affinity sentinel:
// a caret rests just before (upstream) or just after (downstream) the
// block, never inside it.
type BlockNode struct {
	metadata
	id         ID
	selectable bool
}

// newBlockNode builds the embedded base for a concrete block kind.
func newBlockNode(id ID, selectable bool) BlockNode {
	return BlockNode{id: id, selectable: selectable}
}

// ID implements Node.
func (n *BlockNode) ID() ID { return n.id }

// Selectable implements Node. Unselectable blocks never accept caret
// placement but remain traversable for navigation skip-over.
func (n *BlockNode) Selectable() bool { return n.selectable }

// BeginningPosition implements Node.
func (n *BlockNode) BeginningPosition() Position {
	return BlockPosition{Affinity: AffinityUpstream}
}

// EndPosition implements Node.
func (n *BlockNode) EndPosition() Position {
	return BlockPosition{Affinity: AffinityDownstream}
}

// SelectUpstreamPosition implements Node.
func (n *BlockNode) SelectUpstreamPosition(p1, p2 Position) (Position, error) {
	b1, b2, err := blockPositions(p1, p2)
	if err != nil {
		return nil, err
	}
	if b1.Affinity == AffinityUpstream {
		return b1, nil
	}
	return b2, nil
}

// SelectDownstreamPosition implements Node.
func (n *BlockNode) SelectDownstreamPosition(p1, p2 Position) (Position, error) {
	b1, b2, err := blockPositions(p1, p2)
	if err != nil {
		return nil, err
	}
	if b1.Affinity == AffinityDownstream {
		return b1, nil
	}
	return b2, nil
}

// ComputeSelection implements Node.
func (n *BlockNode) ComputeSelection(base, extent Position) (Selection, error) {
	b, e, err := blockPositions(base, extent)
	if err != nil {
		return nil, err
	}
	return BlockSelection{Base: b, Extent: e}, nil
}

// CopyContent implements Node. Block nodes carry no textual content; the
// engine treats their representation as opaque.
func (n *BlockNode) CopyContent(selection Selection) (string, error) {
	if _, ok := selection.(BlockSelection); !ok {
		return "", ErrPositionKind
	}
	return "", nil
}

func blockPositions(p1, p2 Position) (BlockPosition, BlockPosition, error) {
	b1, ok1 := p1.(BlockPosition)
	b2, ok2 := p2.(BlockPosition)
	if !ok1 || !ok2 {
		return BlockPosition{}, BlockPosition{}, ErrPositionKind
	}
	return b1, b2, nil
}

// HorizontalRuleNode is a thematic break between blocks.
type HorizontalRuleNode struct {
	BlockNode
}

// HorizontalRuleOption configures a horizontal rule at construction.
type HorizontalRuleOption func(*HorizontalRuleNode)

// WithRuleSelectable overrides whether the rule accepts a caret.
func WithRuleSelectable(selectable bool) HorizontalRuleOption {
	return func(n *HorizontalRuleNode) {
		n.selectable = selectable
	}
}

// NewHorizontalRuleNode creates a horizontal rule with a fresh ID.
// Rules are selectable by default.
func NewHorizontalRuleNode(opts ...HorizontalRuleOption) *HorizontalRuleNode {
	return NewHorizontalRuleNodeWithID(NewID(), opts...)
}

// NewHorizontalRuleNodeWithID creates a horizontal rule with an explicit ID.
func NewHorizontalRuleNodeWithID(id ID, opts ...HorizontalRuleOption) *HorizontalRuleNode {
	n := &HorizontalRuleNode{BlockNode: newBlockNode(id, true)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// HasEquivalentContent implements Node. All horizontal rules look alike.
func (n *HorizontalRuleNode) HasEquivalentContent(other Node) bool {
	_, ok := other.(*HorizontalRuleNode)
	return ok
}

// ImageNode is an opaque image block.
type ImageNode struct {
	BlockNode
	url     string
	altText string
}

// ImageOption configures an image node at construction.
type ImageOption func(*ImageNode)

// WithAltText sets the image's alternative text.
func WithAltText(alt string) ImageOption {
	return func(n *ImageNode) {
		n.altText = alt
	}
}

// WithImageSelectable overrides whether the image accepts a caret.
func WithImageSelectable(selectable bool) ImageOption {
	return func(n *ImageNode) {
		n.selectable = selectable
	}
}

// NewImageNode creates an image node with a fresh ID. Images are
// selectable by default.
func NewImageNode(url string, opts ...ImageOption) *ImageNode {
	return NewImageNodeWithID(NewID(), url, opts...)
}

// NewImageNodeWithID creates an image node with an explicit ID.
func NewImageNodeWithID(id ID, url string, opts ...ImageOption) *ImageNode {
	n := &ImageNode{BlockNode: newBlockNode(id, true), url: url}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// URL returns the image source.
func (n *ImageNode) URL() string { return n.url }

// AltText returns the image's alternative text.
func (n *ImageNode) AltText() string { return n.altText }

// CopyContent implements Node. The alt text stands in for the image.
func (n *ImageNode) CopyContent(selection Selection) (string, error) {
	if _, ok := selection.(BlockSelection); !ok {
		return "", ErrPositionKind
	}
	return n.altText, nil
}

// HasEquivalentContent implements Node.
func (n *ImageNode) HasEquivalentContent(other Node) bool {
	o, ok := other.(*ImageNode)
	if !ok {
		return false
	}
	return n.url == o.url && n.altText == o.altText
}
