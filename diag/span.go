package diag

import "sort"

// Span is a range of byte offsets into the source text. Both offsets are
// inclusive.
type Span struct {
	Start int
	End   int
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}

	if other.End > s.End {
		s.End = other.End
	}

	return s
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// LineOffsets is a precomputed index of the newline positions in a source
// text, used to turn span offsets into line and column numbers.
type LineOffsets struct {
	// newlines holds the byte offset of every '\n' in the source.
	newlines []int
}

// NewLineOffsets builds the newline index for a source text.
func NewLineOffsets(source string) *LineOffsets {
	offsets := &LineOffsets{}

	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			offsets.newlines = append(offsets.newlines, i)
		}
	}

	return offsets
}

// LineAndNewlineOffset maps a byte offset to its 1-based line number and the
// offset just past the preceding newline. The column of the position is
// pos - newlineOffset + 1.
func (l *LineOffsets) LineAndNewlineOffset(pos int) (line, newlineOffset int) {
	// number of newlines strictly before pos
	n := sort.SearchInts(l.newlines, pos)

	if n == 0 {
		return 1, 0
	}

	return n + 1, l.newlines[n-1] + 1
}
