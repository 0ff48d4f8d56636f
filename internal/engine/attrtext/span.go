package attrtext

import "fmt"

// Span applies one attribution over the half-open character range
// [Start, End). A zero-length span (Start == End) is a marker pinned at an
// offset; markers survive normalization but never cover characters.
type Span struct {
	Attribution Attribution
	Start       int // Inclusive start offset
	End         int // Exclusive end offset
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Attribution.ID(), s.Start, s.End)
}

// Len returns the number of characters the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsMarker returns true if the span covers no characters.
func (s Span) IsMarker() bool {
	return s.Start == s.End
}

// Contains returns true if the span covers the character at offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// SpanRange addresses characters by inclusive bounds: End is the index of
// the last included character. Attribution operations use SpanRange while
// InsertString/RemoveRange use exclusive ends; selection range resolution
// relies on this asymmetry.
type SpanRange struct {
	Start int // Inclusive start offset
	End   int // Inclusive end offset
}

// NewSpanRange creates a SpanRange from inclusive bounds.
func NewSpanRange(start, end int) SpanRange {
	return SpanRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r SpanRange) String() string {
	return fmt.Sprintf("[%d:%d]", r.Start, r.End)
}

// Len returns the number of characters the range covers.
func (r SpanRange) Len() int {
	return r.End - r.Start + 1
}

// IsValid returns true if Start <= End.
func (r SpanRange) IsValid() bool {
	return r.Start <= r.End
}

// overlapsSpan reports whether any character in the inclusive range is
// covered by the half-open span. Markers cover nothing.
func (r SpanRange) overlapsSpan(s Span) bool {
	if s.IsMarker() {
		return false
	}
	return s.Start <= r.End && r.Start < s.End
}
