// Package attrtext provides an immutable attributed text buffer: a rune
// sequence carrying layered style annotations over character ranges.
//
// Text values are immutable by replacement. Every mutating operation
// returns a new Text, which lets callers detect change by comparing
// references and lets snapshots be shared freely.
//
// Two range conventions coexist and the asymmetry is deliberate:
//
//   - InsertString and RemoveRange address characters with half-open
//     ranges: the end offset is exclusive.
//   - AddAttribution, RemoveAttribution, and ToggleAttribution take a
//     SpanRange, whose End is the last included character index.
//
// Selection-to-range resolution in the editor depends on both conventions,
// so tests pin them down explicitly.
//
// Basic usage:
//
//	text := attrtext.New("Hello world")
//	text, _ = text.AddAttribution(attrtext.Bold, attrtext.NewSpanRange(0, 4))
//	text, _ = text.InsertString("!", text.Len())
package attrtext
