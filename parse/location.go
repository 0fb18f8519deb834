package parse

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrInvalidSpan is returned by NewSpan when the end does not follow the start.
var ErrInvalidSpan = errors.New("invalid span")

// Location is a position in the source text.
type Location struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

// StartLocation is the location of the first byte of any source.
var StartLocation = Location{Offset: 0, Line: 1, Column: 1}

// Advance returns the location after r. The offset grows by r's UTF-8
// length, so r must come from valid input.
func (l Location) Advance(r rune) Location {
	l.Offset += utf8.RuneLen(r)
	if r == '\n' {
		l.Line++
		l.Column = 1
	} else {
		l.Column++
	}
	return l
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span is a half-open byte range over the source text.
type Span struct {
	Start  Location
	Length int
}

// NewSpan builds the span from start up to, but not including, end.
func NewSpan(start, end Location) (Span, error) {
	if end.Offset <= start.Offset {
		return Span{}, fmt.Errorf("%w: end offset %d does not follow start offset %d", ErrInvalidSpan, end.Offset, start.Offset)
	}
	if end.Line < start.Line || (end.Line == start.Line && end.Column <= start.Column) {
		return Span{}, fmt.Errorf("%w: end %v does not follow start %v", ErrInvalidSpan, end, start)
	}
	return Span{Start: start, Length: end.Offset - start.Offset}, nil
}

// End returns the byte offset one past the span.
func (s Span) End() int {
	return s.Start.Offset + s.Length
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// Join returns the smallest span enclosing both a and b.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start.Offset < start.Offset {
		start = b.Start
	}
	end := a.End()
	if b.End() > end {
		end = b.End()
	}
	return Span{Start: start, Length: end - start.Offset}
}

// Text returns the part of source covered by the span, or "" when the span
// does not fit.
func (s Span) Text(source string) string {
	if s.Start.Offset < 0 || s.End() > len(source) || s.Length < 0 {
		return ""
	}
	return source[s.Start.Offset:s.End()]
}

// Render resolves the span's start against source. It never panics: a span
// starting at the end of source renders as "end of input" and one starting
// past it as "(invalid span)".
func (s Span) Render(source string) string {
	switch {
	case s.Start.Offset < 0 || s.Start.Offset > len(source):
		return "(invalid span)"
	case s.Start.Offset == len(source):
		return "end of input"
	}
	return newLineIndex(source).locate(s.Start.Offset).String()
}

func (s Span) String() string {
	return fmt.Sprintf("%v+%d", s.Start, s.Length)
}

// lineIndex maps byte offsets to line and column numbers.
type lineIndex struct {
	source string
	starts []int // byte offset of the first byte of every line
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{source: source, starts: starts}
}

// locate clamps offset into the source before resolving it.
func (li *lineIndex) locate(offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.source) {
		offset = len(li.source)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	start := li.starts[line]
	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(li.source[start:offset]) + 1,
	}
}

// lineText returns the full line containing offset, without its newline.
func (li *lineIndex) lineText(offset int) string {
	loc := li.locate(offset)
	start := li.starts[loc.Line-1]
	end := len(li.source)
	if loc.Line < len(li.starts) {
		end = li.starts[loc.Line] - 1
	}
	return li.source[start:end]
}
