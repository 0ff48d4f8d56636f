package attrtext

import (
	"errors"
	"sort"
	"unicode/utf8"
)

// Errors returned by attributed text operations. These indicate caller
// contract violations (bad offsets), never expected editing outcomes.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Text is an immutable attributed text buffer: a sequence of characters
// plus attribution spans layered over character ranges. Mutating methods
// return a new Text value; callers replace their reference, which is what
// allows change detection by comparison.
//
// Offsets are rune offsets. InsertString and RemoveRange address characters
// with exclusive end offsets; attribution operations use SpanRange, whose
// end is the last included character.
type Text struct {
	content []rune
	spans   []Span
}

// New creates attributed text from content and optional spans. Spans are
// clamped to the content bounds and normalized.
func New(content string, spans ...Span) Text {
	runes := []rune(content)

	clamped := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > len(runes) {
			s.End = len(runes)
		}
		if s.Start > s.End || s.Attribution == nil {
			continue
		}
		clamped = append(clamped, s)
	}

	return Text{content: runes, spans: normalize(clamped)}
}

// Len returns the number of characters.
func (t Text) Len() int {
	return len(t.content)
}

// IsEmpty returns true if the text has no characters.
func (t Text) IsEmpty() bool {
	return len(t.content) == 0
}

// String returns the plain text content.
func (t Text) String() string {
	return string(t.content)
}

// Spans returns a copy of the normalized span set.
func (t Text) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// Slice returns the plain text in [start, end).
func (t Text) Slice(start, end int) (string, error) {
	if start < 0 || start > end || end > len(t.content) {
		return "", ErrRangeInvalid
	}
	return string(t.content[start:end]), nil
}

// CopyText returns the attributed text in [start, end) with spans clipped
// and rebased to the new text.
func (t Text) CopyText(start, end int) (Text, error) {
	if start < 0 || start > end || end > len(t.content) {
		return Text{}, ErrRangeInvalid
	}

	content := make([]rune, end-start)
	copy(content, t.content[start:end])

	var spans []Span
	for _, s := range t.spans {
		if s.IsMarker() {
			if s.Start >= start && s.Start < end {
				spans = append(spans, Span{Attribution: s.Attribution, Start: s.Start - start, End: s.Start - start})
			}
			continue
		}

		cs, ce := s.Start, s.End
		if cs < start {
			cs = start
		}
		if ce > end {
			ce = end
		}
		if cs >= ce {
			continue
		}
		spans = append(spans, Span{Attribution: s.Attribution, Start: cs - start, End: ce - start})
	}

	return Text{content: content, spans: normalize(spans)}, nil
}

// Append concatenates other onto t, shifting other's spans past t's content.
// Equal attributions that touch across the seam coalesce.
func (t Text) Append(other Text) Text {
	content := make([]rune, 0, len(t.content)+len(other.content))
	content = append(content, t.content...)
	content = append(content, other.content...)

	spans := make([]Span, 0, len(t.spans)+len(other.spans))
	spans = append(spans, t.spans...)
	for _, s := range other.spans {
		spans = append(spans, Span{
			Attribution: s.Attribution,
			Start:       s.Start + len(t.content),
			End:         s.End + len(t.content),
		})
	}

	return Text{content: content, spans: normalize(spans)}
}

// InsertString inserts text at startOffset and returns the new value.
// Span coordinates at or past startOffset shift right, so a span that
// straddles the insertion point extends to cover the inserted text. The
// inserted range receives the given attributions.
func (t Text) InsertString(text string, startOffset int, attributions ...Attribution) (Text, error) {
	if startOffset < 0 || startOffset > len(t.content) {
		return Text{}, ErrOffsetOutOfRange
	}

	n := utf8.RuneCountInString(text)
	content := make([]rune, 0, len(t.content)+n)
	content = append(content, t.content[:startOffset]...)
	content = append(content, []rune(text)...)
	content = append(content, t.content[startOffset:]...)

	spans := make([]Span, 0, len(t.spans)+len(attributions))
	for _, s := range t.spans {
		if s.Start >= startOffset {
			s.Start += n
		}
		if s.End >= startOffset {
			s.End += n
		}
		spans = append(spans, s)
	}

	if n > 0 {
		for _, a := range attributions {
			if a == nil {
				continue
			}
			spans = append(spans, Span{Attribution: a, Start: startOffset, End: startOffset + n})
		}
	}

	return Text{content: content, spans: normalize(spans)}, nil
}

// RemoveRange deletes the characters in [start, end). Spans entirely inside
// the range are dropped, spans overlapping a boundary are truncated, and
// spans past end shift left.
func (t Text) RemoveRange(start, end int) (Text, error) {
	if start < 0 || start > end || end > len(t.content) {
		return Text{}, ErrRangeInvalid
	}

	d := end - start
	content := make([]rune, 0, len(t.content)-d)
	content = append(content, t.content[:start]...)
	content = append(content, t.content[end:]...)

	remap := func(offset int) int {
		switch {
		case offset <= start:
			return offset
		case offset >= end:
			return offset - d
		default:
			return start
		}
	}

	var spans []Span
	for _, s := range t.spans {
		if s.IsMarker() {
			// Markers strictly inside the deleted range disappear with it.
			if s.Start > start && s.Start < end {
				continue
			}
			p := remap(s.Start)
			spans = append(spans, Span{Attribution: s.Attribution, Start: p, End: p})
			continue
		}

		ns, ne := remap(s.Start), remap(s.End)
		if ns >= ne {
			continue
		}
		spans = append(spans, Span{Attribution: s.Attribution, Start: ns, End: ne})
	}

	return Text{content: content, spans: normalize(spans)}, nil
}

// AddAttribution applies the attribution over an inclusive character range.
func (t Text) AddAttribution(attribution Attribution, r SpanRange) (Text, error) {
	if err := t.validateSpanRange(r); err != nil {
		return Text{}, err
	}

	spans := make([]Span, 0, len(t.spans)+1)
	spans = append(spans, t.spans...)
	spans = append(spans, Span{Attribution: attribution, Start: r.Start, End: r.End + 1})

	return Text{content: t.content, spans: normalize(spans)}, nil
}

// RemoveAttribution clears the attribution from an inclusive character
// range, truncating or splitting spans that extend past the range.
func (t Text) RemoveAttribution(attribution Attribution, r SpanRange) (Text, error) {
	if err := t.validateSpanRange(r); err != nil {
		return Text{}, err
	}

	rs, re := r.Start, r.End+1

	var spans []Span
	for _, s := range t.spans {
		if !s.Attribution.Equal(attribution) || s.End <= rs || s.Start >= re {
			spans = append(spans, s)
			continue
		}
		if s.Start < rs {
			spans = append(spans, Span{Attribution: s.Attribution, Start: s.Start, End: rs})
		}
		if s.End > re {
			spans = append(spans, Span{Attribution: s.Attribution, Start: re, End: s.End})
		}
	}

	return Text{content: t.content, spans: normalize(spans)}, nil
}

// ToggleAttribution removes the attribution from the whole range when any
// character in the range already carries it, and adds it to the whole
// range otherwise.
func (t Text) ToggleAttribution(attribution Attribution, r SpanRange) (Text, error) {
	if err := t.validateSpanRange(r); err != nil {
		return Text{}, err
	}

	if t.HasAttributionWithin(attribution, r) {
		return t.RemoveAttribution(attribution, r)
	}
	return t.AddAttribution(attribution, r)
}

// HasAttributionWithin returns true if at least one character in the range
// carries the attribution.
func (t Text) HasAttributionWithin(attribution Attribution, r SpanRange) bool {
	for _, s := range t.spans {
		if s.Attribution.Equal(attribution) && r.overlapsSpan(s) {
			return true
		}
	}
	return false
}

// HasAttributionsWithin returns true if every requested attribution is
// carried by at least one character in the range. The characters need not
// be the same, and no character needs to carry all of them.
func (t Text) HasAttributionsWithin(attributions []Attribution, r SpanRange) bool {
	for _, a := range attributions {
		if !t.HasAttributionWithin(a, r) {
			return false
		}
	}
	return true
}

// AttributionsAt returns the attributions covering the character at offset.
func (t Text) AttributionsAt(offset int) []Attribution {
	var out []Attribution
	for _, s := range t.spans {
		if s.Contains(offset) {
			out = append(out, s.Attribution)
		}
	}
	return out
}

// Equal reports structural equality: same characters and the same span
// set, independent of the order spans were added.
func (t Text) Equal(other Text) bool {
	if len(t.content) != len(other.content) || len(t.spans) != len(other.spans) {
		return false
	}
	for i, r := range t.content {
		if other.content[i] != r {
			return false
		}
	}

	// Both span sets are normalized; match as multisets.
	matched := make([]bool, len(other.spans))
outer:
	for _, s := range t.spans {
		for i, o := range other.spans {
			if matched[i] {
				continue
			}
			if s.Start == o.Start && s.End == o.End && s.Attribution.Equal(o.Attribution) {
				matched[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func (t Text) validateSpanRange(r SpanRange) error {
	if r.Start < 0 || r.Start > r.End || r.End >= len(t.content) {
		return ErrRangeInvalid
	}
	return nil
}

// normalize coalesces overlapping or touching spans whose attributions are
// equal. A marker touched by an equal-attribution span is absorbed into it;
// standalone markers survive.
func normalize(spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}

	// Group spans by attribution equality, then merge each group's
	// intervals in one sorted pass.
	var groups [][]Span
outer:
	for _, s := range spans {
		for i, g := range groups {
			if g[0].Attribution.Equal(s.Attribution) {
				groups[i] = append(groups[i], s)
				continue outer
			}
		}
		groups = append(groups, []Span{s})
	}

	var out []Span
	for _, g := range groups {
		out = append(out, mergeGroup(g)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].Attribution.ID() < out[j].Attribution.ID()
	})

	return out
}

// mergeGroup merges intervals of a single attribution. Input spans all
// carry equal attributions.
func mergeGroup(g []Span) []Span {
	sort.SliceStable(g, func(i, j int) bool {
		if g[i].Start != g[j].Start {
			return g[i].Start < g[j].Start
		}
		return g[i].End < g[j].End
	})

	var out []Span
	for _, s := range g {
		if len(out) == 0 {
			out = append(out, s)
			continue
		}
		last := &out[len(out)-1]
		if s.Start <= last.End {
			// Overlap or touch: absorb. A marker at last.End extends
			// nothing; two markers at the same offset deduplicate.
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
