package node

import (
	"github.com/dshills/quill/internal/engine/attrtext"
)

// TextNode is a paragraph-like node owning one attributed text value.
// Positions are rune offsets in [0, Len] with boundary affinity.
type TextNode struct {
	metadata
	id   ID
	text attrtext.Text
}

// TextNodeOption configures a TextNode at construction.
type TextNodeOption func(*TextNode)

// WithBlockType tags the node's block role ("paragraph", "header1", ...).
func WithBlockType(blockType string) TextNodeOption {
	return func(n *TextNode) {
		n.SetMetadata(MetadataBlockType, blockType)
	}
}

// WithTextMetadata attaches an arbitrary metadata entry.
func WithTextMetadata(key string, value any) TextNodeOption {
	return func(n *TextNode) {
		n.SetMetadata(key, value)
	}
}

// NewTextNode creates a text node with a fresh ID.
func NewTextNode(text attrtext.Text, opts ...TextNodeOption) *TextNode {
	return NewTextNodeWithID(NewID(), text, opts...)
}

// NewTextNodeWithID creates a text node with an explicit ID. Intended for
// tests and deserialization; editing commands use NewTextNode.
func NewTextNodeWithID(id ID, text attrtext.Text, opts ...TextNodeOption) *TextNode {
	n := &TextNode{id: id, text: text}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ID implements Node.
func (n *TextNode) ID() ID { return n.id }

// Selectable implements Node. Text nodes always accept a caret.
func (n *TextNode) Selectable() bool { return true }

// Text implements TextBearing.
func (n *TextNode) Text() attrtext.Text { return n.text }

// SetText implements TextBearing.
func (n *TextNode) SetText(text attrtext.Text) { n.text = text }

// BeginningPosition implements Node.
func (n *TextNode) BeginningPosition() Position {
	return TextPosition{Offset: 0, Affinity: AffinityDownstream}
}

// EndPosition implements Node.
func (n *TextNode) EndPosition() Position {
	return TextPosition{Offset: n.text.Len(), Affinity: AffinityUpstream}
}

// SelectUpstreamPosition implements Node.
func (n *TextNode) SelectUpstreamPosition(p1, p2 Position) (Position, error) {
	t1, t2, err := textPositions(p1, p2)
	if err != nil {
		return nil, err
	}
	if t1.Offset <= t2.Offset {
		return t1, nil
	}
	return t2, nil
}

// SelectDownstreamPosition implements Node.
func (n *TextNode) SelectDownstreamPosition(p1, p2 Position) (Position, error) {
	t1, t2, err := textPositions(p1, p2)
	if err != nil {
		return nil, err
	}
	if t1.Offset >= t2.Offset {
		return t1, nil
	}
	return t2, nil
}

// ComputeSelection implements Node.
func (n *TextNode) ComputeSelection(base, extent Position) (Selection, error) {
	b, e, err := textPositions(base, extent)
	if err != nil {
		return nil, err
	}
	return TextSelection{Base: b.Offset, Extent: e.Offset}, nil
}

// CopyContent implements Node.
func (n *TextNode) CopyContent(selection Selection) (string, error) {
	sel, ok := selection.(TextSelection)
	if !ok {
		return "", ErrPositionKind
	}
	return n.text.Slice(sel.Start(), sel.End())
}

// CopyWithText implements TextBearing.
func (n *TextNode) CopyWithText(text attrtext.Text) TextBearing {
	return &TextNode{
		metadata: metadata{values: n.copyValues()},
		id:       NewID(),
		text:     text,
	}
}

// HasEquivalentContent implements Node. Two text nodes are equivalent when
// their attributed text and block type match, regardless of ID.
func (n *TextNode) HasEquivalentContent(other Node) bool {
	o, ok := other.(*TextNode)
	if !ok {
		return false
	}
	return n.text.Equal(o.text) && blockTypeOf(n) == blockTypeOf(o)
}

func blockTypeOf(n Node) string {
	v, ok := n.Metadata(MetadataBlockType)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func textPositions(p1, p2 Position) (TextPosition, TextPosition, error) {
	t1, ok1 := p1.(TextPosition)
	t2, ok2 := p2.(TextPosition)
	if !ok1 || !ok2 {
		return TextPosition{}, TextPosition{}, ErrPositionKind
	}
	return t1, t2, nil
}
