// Package node defines the block-level units of document structure and
// their position/selection algebra.
//
// Node kinds form two families. Text-bearing nodes (TextNode,
// ListItemNode) own attributed text and address carets by rune offset.
// Block nodes (ImageNode, HorizontalRuleNode) have no internal content;
// their only caret locations are the upstream/downstream sentinels on
// either side of the block.
//
// Positions and selections are closed variant sets. Passing a position of
// the wrong kind to a node is a contract violation and surfaces as
// ErrPositionKind; it is never silently coerced.
package node
