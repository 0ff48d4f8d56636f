// Package layout defines the geometry collaborator the engine consults
// for line-aware caret movement. The engine treats providers as opaque
// services; hosts supply real text layout, while LineProvider offers a
// newline-based implementation with no soft wrapping for tests and
// headless use.
package layout

import (
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// Provider supplies line geometry for vertical movement and line-boundary
// modifiers. All methods operate within a single node: ok is false when
// the position has no line above/below inside its node, or when the node
// has no line geometry at all (block nodes).
type Provider interface {
	// PositionOneLineUp returns the position one visual line above p.
	PositionOneLineUp(p document.Position) (document.Position, bool)

	// PositionOneLineDown returns the position one visual line below p.
	PositionOneLineDown(p document.Position) (document.Position, bool)

	// PositionAtStartOfLine returns the first position on p's line.
	PositionAtStartOfLine(p document.Position) (document.Position, bool)

	// PositionAtEndOfLine returns the last position on p's line.
	PositionAtEndOfLine(p document.Position) (document.Position, bool)
}

// LineProvider computes line geometry from newline characters in a text
// node's content. One visual line per hard line break; no soft wrap.
type LineProvider struct {
	doc *document.Document
}

// NewLineProvider creates a line provider reading from the document.
func NewLineProvider(doc *document.Document) *LineProvider {
	return &LineProvider{doc: doc}
}

// PositionOneLineUp implements Provider.
func (lp *LineProvider) PositionOneLineUp(p document.Position) (document.Position, bool) {
	lines, line, col, ok := lp.resolve(p)
	if !ok || line == 0 {
		return document.Position{}, false
	}
	target := lines[line-1]
	if col > target.length {
		col = target.length
	}
	return lp.positionAt(p, target.start+col), true
}

// PositionOneLineDown implements Provider.
func (lp *LineProvider) PositionOneLineDown(p document.Position) (document.Position, bool) {
	lines, line, col, ok := lp.resolve(p)
	if !ok || line == len(lines)-1 {
		return document.Position{}, false
	}
	target := lines[line+1]
	if col > target.length {
		col = target.length
	}
	return lp.positionAt(p, target.start+col), true
}

// PositionAtStartOfLine implements Provider.
func (lp *LineProvider) PositionAtStartOfLine(p document.Position) (document.Position, bool) {
	lines, line, _, ok := lp.resolve(p)
	if !ok {
		return document.Position{}, false
	}
	return lp.positionAt(p, lines[line].start), true
}

// PositionAtEndOfLine implements Provider.
func (lp *LineProvider) PositionAtEndOfLine(p document.Position) (document.Position, bool) {
	lines, line, _, ok := lp.resolve(p)
	if !ok {
		return document.Position{}, false
	}
	return lp.positionAt(p, lines[line].start+lines[line].length), true
}

type lineSpan struct {
	start  int // rune offset of the line's first character
	length int // line length excluding the newline
}

// resolve maps a position onto its node's line table. ok is false for
// block nodes, missing nodes, and wrong-kind positions.
func (lp *LineProvider) resolve(p document.Position) (lines []lineSpan, line, col int, ok bool) {
	n := lp.doc.GetNodeByID(p.NodeID)
	if n == nil {
		return nil, 0, 0, false
	}
	tn, isText := n.(node.TextBearing)
	if !isText {
		return nil, 0, 0, false
	}
	tp, isTextPos := p.NodePosition.(node.TextPosition)
	if !isTextPos {
		return nil, 0, 0, false
	}

	content := []rune(tn.Text().String())
	offset := tp.Offset
	if offset < 0 || offset > len(content) {
		return nil, 0, 0, false
	}

	start := 0
	for i, r := range content {
		if r == '\n' {
			lines = append(lines, lineSpan{start: start, length: i - start})
			start = i + 1
		}
	}
	lines = append(lines, lineSpan{start: start, length: len(content) - start})

	for i, ls := range lines {
		if offset >= ls.start && offset <= ls.start+ls.length {
			return lines, i, offset - ls.start, true
		}
	}
	// Offset on a newline boundary resolves within the loop; reaching
	// here means the table and offset disagree.
	return nil, 0, 0, false
}

func (lp *LineProvider) positionAt(p document.Position, offset int) document.Position {
	return document.NewPosition(p.NodeID, node.TextPosition{
		Offset:   offset,
		Affinity: node.AffinityDownstream,
	})
}
