package editor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// The helpers below map between character offsets and Unicode segment
// boundaries. Offsets count runes, matching the text storage; grapheme
// and word boundaries follow UAX #29.

// nextGraphemeOffset returns the first grapheme cluster boundary after
// offset, or the text length if offset is already at or past the end.
func nextGraphemeOffset(s string, offset int) int {
	g := uniseg.NewGraphemes(s)
	pos := 0
	for g.Next() {
		next := pos + len(g.Runes())
		if next > offset {
			return next
		}
		pos = next
	}
	return pos
}

// prevGraphemeOffset returns the last grapheme cluster boundary before
// offset, or 0 if offset is already at the start.
func prevGraphemeOffset(s string, offset int) int {
	g := uniseg.NewGraphemes(s)
	pos := 0
	for g.Next() {
		next := pos + len(g.Runes())
		if next >= offset {
			return pos
		}
		pos = next
	}
	return pos
}

// nextWordOffset returns the first word segment boundary after offset.
func nextWordOffset(s string, offset int) int {
	pos := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		next := pos + utf8.RuneCountInString(word)
		if next > offset {
			return next
		}
		pos = next
	}
	return pos
}

// prevWordOffset returns the last word segment boundary before offset.
func prevWordOffset(s string, offset int) int {
	pos := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		next := pos + utf8.RuneCountInString(word)
		if next >= offset {
			return pos
		}
		pos = next
	}
	return pos
}
