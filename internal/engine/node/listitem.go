package node

import (
	"github.com/dshills/quill/internal/engine/attrtext"
)

// ListType distinguishes ordered from unordered list items.
type ListType uint8

const (
	ListUnordered ListType = iota
	ListOrdered
)

// String returns the list type name.
func (lt ListType) String() string {
	switch lt {
	case ListOrdered:
		return "ordered"
	case ListUnordered:
		return "unordered"
	default:
		return "unknown"
	}
}

// ListItemNode is a text-bearing node rendered as a list item. It shares
// the TextNode position algebra; only its block role and indentation
// differ.
type ListItemNode struct {
	TextNode
	listType ListType
	indent   int
}

// NewListItemNode creates a list item with a fresh ID.
func NewListItemNode(text attrtext.Text, listType ListType, indent int) *ListItemNode {
	return NewListItemNodeWithID(NewID(), text, listType, indent)
}

// NewListItemNodeWithID creates a list item with an explicit ID.
func NewListItemNodeWithID(id ID, text attrtext.Text, listType ListType, indent int) *ListItemNode {
	if indent < 0 {
		indent = 0
	}
	return &ListItemNode{
		TextNode: TextNode{id: id, text: text},
		listType: listType,
		indent:   indent,
	}
}

// ListType returns whether the item belongs to an ordered or unordered list.
func (n *ListItemNode) ListType() ListType { return n.listType }

// Indent returns the item's nesting level, 0 for top level.
func (n *ListItemNode) Indent() int { return n.indent }

// SetIndent sets the item's nesting level, clamped at 0.
func (n *ListItemNode) SetIndent(indent int) {
	if indent < 0 {
		indent = 0
	}
	n.indent = indent
}

// CopyWithText implements TextBearing.
func (n *ListItemNode) CopyWithText(text attrtext.Text) TextBearing {
	return &ListItemNode{
		TextNode: TextNode{
			metadata: metadata{values: n.copyValues()},
			id:       NewID(),
			text:     text,
		},
		listType: n.listType,
		indent:   n.indent,
	}
}

// HasEquivalentContent implements Node.
func (n *ListItemNode) HasEquivalentContent(other Node) bool {
	o, ok := other.(*ListItemNode)
	if !ok {
		return false
	}
	return n.listType == o.listType && n.indent == o.indent && n.text.Equal(o.text)
}
