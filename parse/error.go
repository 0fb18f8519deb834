package parse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStackLimitExceeded is the cause of the hard error produced when rule
	// nesting goes deeper than the stream's maximum depth.
	ErrStackLimitExceeded = errors.New("stack limit exceeded")

	// ErrUnexpectedInput is the cause of the hard error produced by Run when
	// the root rule does not apply or leaves input behind.
	ErrUnexpectedInput = errors.New("unexpected input")
)

// Frame is one context annotation on a propagating error.
type Frame struct {
	Span    Span
	Message string
}

// Error is the failure of a rule. A mismatch means the rule does not apply
// at this position and another alternative may be tried; any other Error
// means the input is malformed for a rule that was already committed to.
type Error struct {
	mismatch bool
	span     Span
	message  string
	frames   []Frame // innermost first
	cause    error
	trace    []byte
}

func (e *Error) IsMismatch() bool {
	return e.mismatch
}

func (e *Error) Span() Span {
	return e.span
}

func (e *Error) Message() string {
	return e.message
}

// Frames returns a copy of the context chain, innermost frame first.
func (e *Error) Frames() []Frame {
	return append([]Frame(nil), e.frames...)
}

// Trace returns the goroutine stack captured when the error was built, if
// the stream was created WithTrace.
func (e *Error) Trace() []byte {
	return e.trace
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithContext returns a copy of e with one more frame at the outer end of
// its chain. e itself is not modified.
func (e *Error) WithContext(span Span, message string) *Error {
	c := *e
	c.frames = make([]Frame, len(e.frames), len(e.frames)+1)
	copy(c.frames, e.frames)
	c.frames = append(c.frames, Frame{Span: span, Message: message})
	return &c
}

// WithContextf is WithContext with a formatted message.
func (e *Error) WithContextf(span Span, format string, args ...any) *Error {
	return e.WithContext(span, fmt.Sprintf(format, args...))
}

// promote turns a mismatch into a hard error. Hard errors are returned as is.
func (e *Error) promote() *Error {
	if !e.mismatch {
		return e
	}
	c := *e
	c.mismatch = false
	return &c
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %s", e.span.Start, e.message)
	for _, f := range e.frames {
		fmt.Fprintf(&b, "; %v: %s", f.Span.Start, f.Message)
	}
	return b.String()
}

// Render formats the error against the source it was produced from: the
// primary message first, then every context frame from innermost to
// outermost, one per line.
func (e *Error) Render(source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.span.Render(source), e.message)
	for _, f := range e.frames {
		fmt.Fprintf(&b, "  %s: %s\n", f.Span.Render(source), f.Message)
	}
	return b.String()
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsMismatch reports whether err is a recoverable mismatch. Errors that are
// not *Error are never mismatches.
func IsMismatch(err error) bool {
	pe, ok := AsError(err)
	return ok && pe.mismatch
}
