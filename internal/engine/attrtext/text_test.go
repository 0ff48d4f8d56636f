package attrtext

import (
	"errors"
	"testing"
)

func TestInsertStringIntoEmpty(t *testing.T) {
	text := New("")
	text, err := text.InsertString("abc", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.String() != "abc" {
		t.Errorf("expected %q, got %q", "abc", text.String())
	}
}

func TestInsertStringShiftsSpans(t *testing.T) {
	text := New("Hello world", Span{Attribution: Bold, Start: 6, End: 11})

	text, err := text.InsertString("big ", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.String() != "Hello big world" {
		t.Errorf("expected %q, got %q", "Hello big world", text.String())
	}

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 10 || spans[0].End != 15 {
		t.Errorf("expected span [10:15), got %s", spans[0])
	}
}

func TestInsertStringStraddlingSpanExtends(t *testing.T) {
	text := New("Hello world", Span{Attribution: Bold, Start: 0, End: 11})

	text, err := text.InsertString("big ", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 15 {
		t.Errorf("straddled span should cover inserted text, got %s", spans[0])
	}
}

func TestInsertStringAppliesAttributions(t *testing.T) {
	text := New("ac")
	text, err := text.InsertString("b", 1, Bold, Italics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	for _, s := range spans {
		if s.Start != 1 || s.End != 2 {
			t.Errorf("expected span [1:2), got %s", s)
		}
	}
}

func TestInsertStringOffsetOutOfRange(t *testing.T) {
	text := New("ab")
	if _, err := text.InsertString("x", 3); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if _, err := text.InsertString("x", -1); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestRemoveRange(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		start    int
		end      int
		wantText string
		want     []Span
	}{
		{
			name:     "span inside range is dropped",
			span:     Span{Attribution: Bold, Start: 2, End: 4},
			start:    1,
			end:      5,
			wantText: "af",
			want:     nil,
		},
		{
			name:     "span after range shifts left",
			span:     Span{Attribution: Bold, Start: 4, End: 6},
			start:    0,
			end:      2,
			wantText: "cdef",
			want:     []Span{{Attribution: Bold, Start: 2, End: 4}},
		},
		{
			name:     "span overlapping boundary truncates",
			span:     Span{Attribution: Bold, Start: 0, End: 4},
			start:    2,
			end:      6,
			wantText: "ab",
			want:     []Span{{Attribution: Bold, Start: 0, End: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := New("abcdef", tt.span)
			got, err := text.RemoveRange(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.wantText {
				t.Errorf("expected text %q, got %q", tt.wantText, got.String())
			}
			spans := got.Spans()
			if len(spans) != len(tt.want) {
				t.Fatalf("expected %d spans, got %d", len(tt.want), len(spans))
			}
			for i, s := range spans {
				w := tt.want[i]
				if s.Start != w.Start || s.End != w.End {
					t.Errorf("span %d: expected [%d:%d), got %s", i, w.Start, w.End, s)
				}
			}
		})
	}
}

func TestRemoveRangeInvalid(t *testing.T) {
	text := New("abc")
	if _, err := text.RemoveRange(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid for start > end, got %v", err)
	}
	if _, err := text.RemoveRange(0, 4); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid for end past length, got %v", err)
	}
	if _, err := text.RemoveRange(-1, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid for negative start, got %v", err)
	}
}

// AddAttribution treats End as the last included character, while
// RemoveRange treats end as exclusive. Both conventions over the full text
// must cover every character.
func TestRangeInclusivityAsymmetry(t *testing.T) {
	const content = "abcdef"
	text := New(content)

	attributed, err := text.AddAttribution(Bold, NewSpanRange(0, len(content)-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spans := attributed.Spans()
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != len(content) {
		t.Fatalf("expected bold to cover all %d characters, got %v", len(content), spans)
	}

	removed, err := text.RemoveRange(0, len(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Len() != 0 {
		t.Errorf("expected empty text, got %q", removed.String())
	}
}

func TestAddAttributionCoalesces(t *testing.T) {
	text := New("abcdef")

	text, _ = text.AddAttribution(Bold, NewSpanRange(0, 2))
	text, _ = text.AddAttribution(Bold, NewSpanRange(3, 5))

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected touching spans to coalesce, got %d spans", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 6 {
		t.Errorf("expected span [0:6), got %s", spans[0])
	}
}

func TestAddAttributionDistinctPayloadsDoNotMerge(t *testing.T) {
	text := New("abcdef")

	text, _ = text.AddAttribution(Link{URL: "https://a.example"}, NewSpanRange(0, 2))
	text, _ = text.AddAttribution(Link{URL: "https://b.example"}, NewSpanRange(3, 5))

	if len(text.Spans()) != 2 {
		t.Errorf("links with different URLs must not merge, got %v", text.Spans())
	}
}

func TestRemoveAttributionSplitsSpan(t *testing.T) {
	text := New("abcdef", Span{Attribution: Bold, Start: 0, End: 6})

	text, err := text.RemoveAttribution(Bold, NewSpanRange(2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected span split into 2, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 2 {
		t.Errorf("expected first span [0:2), got %s", spans[0])
	}
	if spans[1].Start != 4 || spans[1].End != 6 {
		t.Errorf("expected second span [4:6), got %s", spans[1])
	}
}

func TestToggleAttribution(t *testing.T) {
	t.Run("absent adds to whole range", func(t *testing.T) {
		text := New("abcdef")
		text, err := text.ToggleAttribution(Bold, NewSpanRange(0, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !text.HasAttributionWithin(Bold, NewSpanRange(0, 5)) {
			t.Error("expected bold after toggle on plain text")
		}
	})

	t.Run("partially present removes from whole range", func(t *testing.T) {
		text := New("abcdef", Span{Attribution: Bold, Start: 2, End: 4})
		text, err := text.ToggleAttribution(Bold, NewSpanRange(0, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(text.Spans()) != 0 {
			t.Errorf("expected no spans after toggle, got %v", text.Spans())
		}
	})
}

func TestHasAttributionsWithin(t *testing.T) {
	text := New("abcdef",
		Span{Attribution: Bold, Start: 0, End: 2},
		Span{Attribution: Italics, Start: 4, End: 6},
	)

	// Each attribution appears somewhere in the range; no character has both.
	if !text.HasAttributionsWithin([]Attribution{Bold, Italics}, NewSpanRange(0, 5)) {
		t.Error("expected both attributions found somewhere in range")
	}
	if text.HasAttributionsWithin([]Attribution{Bold, Italics}, NewSpanRange(2, 3)) {
		t.Error("expected neither attribution in uncovered middle range")
	}
	if text.HasAttributionsWithin([]Attribution{Bold, Underline}, NewSpanRange(0, 5)) {
		t.Error("underline is absent; all requested attributions must be found")
	}
}

func TestAttributionRangeInvalid(t *testing.T) {
	text := New("abc")
	if _, err := text.AddAttribution(Bold, NewSpanRange(0, 3)); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("inclusive end == length must be rejected, got %v", err)
	}
	if _, err := text.AddAttribution(Bold, NewSpanRange(2, 1)); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid for start > end, got %v", err)
	}
}

func TestEqualIsOrderIndependent(t *testing.T) {
	a := New("abcdef",
		Span{Attribution: Bold, Start: 0, End: 2},
		Span{Attribution: Italics, Start: 3, End: 5},
	)
	b := New("abcdef",
		Span{Attribution: Italics, Start: 3, End: 5},
		Span{Attribution: Bold, Start: 0, End: 2},
	)

	if !a.Equal(b) {
		t.Error("expected structural equality regardless of span insertion order")
	}

	c := New("abcdef", Span{Attribution: Bold, Start: 0, End: 3})
	if a.Equal(c) {
		t.Error("expected inequality for differing spans")
	}
}

func TestZeroLengthMarkerSurvives(t *testing.T) {
	text := New("abc", Span{Attribution: Name("composing"), Start: 1, End: 1})

	spans := text.Spans()
	if len(spans) != 1 || !spans[0].IsMarker() {
		t.Fatalf("expected a zero-length marker, got %v", spans)
	}

	// Inserting at the marker pushes it past the inserted text.
	text, _ = text.InsertString("xy", 1)
	spans = text.Spans()
	if len(spans) != 1 || spans[0].Start != 3 {
		t.Errorf("expected marker at offset 3, got %v", spans)
	}

	// Deleting the surrounding region swallows the marker.
	text, _ = text.RemoveRange(1, 4)
	if got := text.Spans(); len(got) != 0 {
		t.Errorf("expected marker removed with its region, got %v", got)
	}
}

func TestCopyTextRebasesSpans(t *testing.T) {
	text := New("Hello world", Span{Attribution: Bold, Start: 4, End: 9})

	sub, err := text.CopyText(6, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.String() != "world" {
		t.Errorf("expected %q, got %q", "world", sub.String())
	}
	spans := sub.Spans()
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != 3 {
		t.Errorf("expected clipped span [0:3), got %v", spans)
	}
}

func TestAppendMergesSeamSpans(t *testing.T) {
	a := New("ab", Span{Attribution: Bold, Start: 0, End: 2})
	b := New("cd", Span{Attribution: Bold, Start: 0, End: 2})

	joined := a.Append(b)
	if joined.String() != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", joined.String())
	}
	spans := joined.Spans()
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != 4 {
		t.Errorf("expected merged span [0:4), got %v", spans)
	}
}

func TestRuneOffsets(t *testing.T) {
	text := New("héllo")
	if text.Len() != 5 {
		t.Fatalf("expected rune length 5, got %d", text.Len())
	}

	text, err := text.InsertString("ü", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.String() != "héüllo" {
		t.Errorf("expected %q, got %q", "héüllo", text.String())
	}
}
