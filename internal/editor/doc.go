// Package editor is the command engine that drives all document
// mutation. Hosts describe edits as Commands, the Editor executes them
// in single-threaded transactions, and observers receive one coalesced
// notification burst per transaction.
//
// The engine distinguishes outcomes carefully: an edit that cannot
// proceed for a legitimate structural reason (caret at a document edge,
// deletion against an unselectable block) is a no-op, not an error.
// Errors are reserved for caller contract violations such as wrong-kind
// positions or out-of-range offsets.
//
// Typical usage:
//
//	doc, _ := document.New(node.NewTextNode(attrtext.New("Hello world")))
//	comp := composer.New()
//	ed := editor.New(doc, comp)
//
//	ed.PlaceCaret(document.NewPosition(doc.GetNodeAt(0).ID(), node.TextPosition{Offset: 11}))
//	ed.InsertText("!")
package editor
