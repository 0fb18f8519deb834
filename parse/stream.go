package parse

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
)

// DefaultMaxDepth is the rule nesting limit of a new Stream.
const DefaultMaxDepth = 512

// WhitespaceMode controls whether matching primitives skip leading whitespace.
type WhitespaceMode int

const (
	IgnoreWhitespace WhitespaceMode = iota
	PreserveWhitespace
)

func (m WhitespaceMode) String() string {
	switch m {
	case IgnoreWhitespace:
		return "ignore"
	case PreserveWhitespace:
		return "preserve"
	default:
		return fmt.Sprintf("WhitespaceMode(%d)", int(m))
	}
}

type Option func(*Stream)

// WithFile names the source in log output.
func WithFile(name string) Option {
	return func(s *Stream) {
		s.file = name
	}
}

// WithMaxDepth limits rule nesting. Zero disables the limit.
func WithMaxDepth(n int) Option {
	return func(s *Stream) {
		s.maxDepth = n
	}
}

// WithTrace captures the goroutine stack in every hard error.
func WithTrace() Option {
	return func(s *Stream) {
		s.trace = true
	}
}

// WithLogger logs every driven rule attempt at debug level.
func WithLogger(log commonlog.Logger) Option {
	return func(s *Stream) {
		s.log = log
	}
}

// Checkpoint is a saved stream position.
type Checkpoint struct {
	offset int
}

// Stream is the cursor over one complete source text. It is not safe for
// concurrent use.
type Stream struct {
	source   string
	file     string
	lines    *lineIndex
	offset   int
	start    int // offset at which the innermost driven attempt began
	modes    []WhitespaceMode
	depth    int
	maxDepth int
	trace    bool
	log      commonlog.Logger
}

func NewStream(source string, opts ...Option) *Stream {
	s := &Stream{
		source:   source,
		lines:    newLineIndex(source),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stream) Source() string {
	return s.source
}

func (s *Stream) File() string {
	return s.file
}

// Offset returns the current byte offset.
func (s *Stream) Offset() int {
	return s.offset
}

// Rest returns the unconsumed input.
func (s *Stream) Rest() string {
	return s.source[s.offset:]
}

// Location returns the current position. It does not skip whitespace.
func (s *Stream) Location() Location {
	return s.lines.locate(s.offset)
}

// Locate resolves a byte offset of this stream's source.
func (s *Stream) Locate(offset int) Location {
	return s.lines.locate(offset)
}

// LineText returns the source line on which span starts.
func (s *Stream) LineText(span Span) string {
	return s.lines.lineText(span.Start.Offset)
}

func (s *Stream) Checkpoint() Checkpoint {
	return Checkpoint{offset: s.offset}
}

// Restore moves the stream back (or forward) to cp. The checkpoint must
// come from this stream.
func (s *Stream) Restore(cp Checkpoint) {
	s.offset = cp.offset
	if s.start > s.offset {
		s.start = s.offset
	}
}

// SpanSince returns the span from cp to the current position.
func (s *Stream) SpanSince(cp Checkpoint) Span {
	return Span{Start: s.lines.locate(cp.offset), Length: s.offset - cp.offset}
}

// Whitespace returns the innermost whitespace mode.
func (s *Stream) Whitespace() WhitespaceMode {
	if len(s.modes) == 0 {
		return IgnoreWhitespace
	}
	return s.modes[len(s.modes)-1]
}

// WhitespaceScope overrides the whitespace mode until Close is called on the
// returned scope.
//
//	defer s.WhitespaceScope(parse.PreserveWhitespace).Close()
func (s *Stream) WhitespaceScope(mode WhitespaceMode) *WhitespaceScope {
	s.modes = append(s.modes, mode)
	return &WhitespaceScope{s: s, depth: len(s.modes) - 1}
}

// WhitespaceScope is an active whitespace mode override.
type WhitespaceScope struct {
	s     *Stream
	depth int
}

// Close pops the override and any override pushed after it and not yet
// closed. Calling Close more than once has no further effect.
func (ws *WhitespaceScope) Close() {
	if ws.s == nil {
		return
	}
	if len(ws.s.modes) > ws.depth {
		ws.s.modes = ws.s.modes[:ws.depth]
	}
	ws.s = nil
}

// SkipWhitespace consumes leading whitespace unless whitespace is being
// preserved. It reports whether anything was consumed.
func (s *Stream) SkipWhitespace() bool {
	if s.Whitespace() == PreserveWhitespace {
		return false
	}
	start := s.offset
	for s.offset < len(s.source) {
		r, n := utf8.DecodeRuneInString(s.source[s.offset:])
		if !unicode.IsSpace(r) {
			break
		}
		s.offset += n
	}
	return s.offset != start
}

// AtEnd reports whether only skippable whitespace remains.
func (s *Stream) AtEnd() bool {
	s.SkipWhitespace()
	return s.offset >= len(s.source)
}

// PeekChar returns the next character without consuming it.
func (s *Stream) PeekChar() (rune, bool) {
	s.SkipWhitespace()
	if s.offset >= len(s.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.offset:])
	return r, true
}

// PeekStr returns the next n characters, or false if fewer remain.
func (s *Stream) PeekStr(n int) (string, bool) {
	s.SkipWhitespace()
	rest := s.source[s.offset:]
	end := 0
	for i := 0; i < n; i++ {
		if end >= len(rest) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
	}
	return rest[:end], true
}

// TakeChar consumes the next character. An invalid byte is returned as
// utf8.RuneError and consumes only that byte.
func (s *Stream) TakeChar() (rune, bool) {
	s.SkipWhitespace()
	if s.offset >= len(s.source) {
		return 0, false
	}
	r, n := utf8.DecodeRuneInString(s.source[s.offset:])
	s.offset += n
	return r, true
}

// TakeWhile consumes the longest prefix whose characters all satisfy f and
// returns it. The prefix may be empty.
func (s *Stream) TakeWhile(f func(rune) bool) string {
	s.SkipWhitespace()
	start := s.offset
	for s.offset < len(s.source) {
		r, n := utf8.DecodeRuneInString(s.source[s.offset:])
		if !f(r) {
			break
		}
		s.offset += n
	}
	return s.source[start:s.offset]
}

// MatchStr reports whether the input continues with text.
func (s *Stream) MatchStr(text string) bool {
	s.SkipWhitespace()
	return strings.HasPrefix(s.source[s.offset:], text)
}

// TakeStr consumes text if the input continues with it.
func (s *Stream) TakeStr(text string) bool {
	if !s.MatchStr(text) {
		return false
	}
	s.offset += len(text)
	return true
}

// FindStr advances to the next occurrence of text and returns the span that
// was skipped over. Whitespace mode does not apply.
func (s *Stream) FindStr(text string) (Span, bool) {
	i := strings.Index(s.source[s.offset:], text)
	if i < 0 {
		return Span{}, false
	}
	cp := s.Checkpoint()
	s.offset += i
	return s.SpanSince(cp), true
}

// attemptSpan is the span of the innermost attempt, with the whitespace it
// skipped trimmed from the front. An attempt that consumed nothing gets the
// span of the next character that is not skippable whitespace instead.
func (s *Stream) attemptSpan() Span {
	start := s.start
	if start > s.offset {
		start = s.offset
	}
	if s.Whitespace() == IgnoreWhitespace {
		for start < s.offset {
			r, n := utf8.DecodeRuneInString(s.source[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += n
		}
	}
	end := s.offset
	if end == start {
		if s.Whitespace() == IgnoreWhitespace {
			for start < len(s.source) {
				r, n := utf8.DecodeRuneInString(s.source[start:])
				if !unicode.IsSpace(r) {
					break
				}
				start += n
			}
		}
		end = start
		if end < len(s.source) {
			_, n := utf8.DecodeRuneInString(s.source[end:])
			end += n
		}
	}
	return Span{Start: s.lines.locate(start), Length: end - start}
}

// Mismatch reports that the current rule does not apply here.
func (s *Stream) Mismatch() *Error {
	return &Error{mismatch: true, span: s.attemptSpan(), message: "mismatch"}
}

// Mismatchf is Mismatch with a message.
func (s *Stream) Mismatchf(format string, args ...any) *Error {
	return &Error{mismatch: true, span: s.attemptSpan(), message: fmt.Sprintf(format, args...)}
}

// Errorf reports malformed input for the current rule.
func (s *Stream) Errorf(format string, args ...any) *Error {
	return s.hardError(s.attemptSpan(), nil, fmt.Sprintf(format, args...))
}

// ErrorAt reports malformed input at span.
func (s *Stream) ErrorAt(span Span, format string, args ...any) *Error {
	return s.hardError(span, nil, fmt.Sprintf(format, args...))
}

// WrapError reports malformed input caused by err.
func (s *Stream) WrapError(err error, format string, args ...any) *Error {
	return s.hardError(s.attemptSpan(), err, fmt.Sprintf(format, args...)+": "+err.Error())
}

func (s *Stream) hardError(span Span, cause error, message string) *Error {
	e := &Error{span: span, message: message, cause: cause}
	if s.trace {
		var stack [1 << 16]byte
		size := runtime.Stack(stack[:], false)
		e.trace = make([]byte, size)
		copy(e.trace, stack[:size])
	}
	return e
}
