package parse

import (
	"reflect"
	"strconv"
	"strings"
)

// Rule consumes a prefix of the stream. On success the stream has advanced
// past exactly the matched text. A rule that does not apply returns a
// mismatch and leaves restoring the stream to the driver; any other error
// means the input is malformed.
type Rule[T any] func(s *Stream) (T, error)

// enter starts a driven attempt at the current offset.
func (s *Stream) enter(name func() string) (func(), error) {
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		e := s.hardError(s.attemptSpan(), ErrStackLimitExceeded, "rule nesting exceeds "+strconv.Itoa(s.maxDepth)+" levels")
		return nil, e
	}
	start := s.start
	s.start = s.offset
	s.depth++
	if s.log != nil {
		if s.file != "" {
			s.log.Debugf("%s:%s: try %s", s.file, s.Location(), name())
		} else {
			s.log.Debugf("%s: try %s", s.Location(), name())
		}
	}
	return func() {
		s.depth--
		s.start = start
	}, nil
}

// Parse runs r and returns its result and error unchanged.
func Parse[T any](s *Stream, r Rule[T]) (T, error) {
	leave, err := s.enter(typeName[T])
	if err != nil {
		var zero T
		return zero, err
	}
	defer leave()
	return r(s)
}

// TryParse runs r and reports whether it applied. On a mismatch the stream
// is restored and ok is false; a hard error is returned without restoring.
func TryParse[T any](s *Stream, r Rule[T]) (v T, ok bool, err error) {
	cp := s.Checkpoint()
	v, err = Parse(s, r)
	switch {
	case err == nil:
		return v, true, nil
	case IsMismatch(err):
		s.Restore(cp)
		var zero T
		return zero, false, nil
	default:
		return v, false, err
	}
}

// Require runs r in a position that is already committed. A mismatch becomes
// a hard error with a frame naming the expected type.
func Require[T any](s *Stream, r Rule[T]) (T, error) {
	return Expect(s, r, typeName[T]())
}

// Expect is Require with an explicit description of what was expected.
func Expect[T any](s *Stream, r Rule[T], what string) (T, error) {
	v, err := Parse(s, r)
	if err == nil {
		return v, nil
	}
	pe, ok := AsError(err)
	if !ok || !pe.mismatch {
		return v, err
	}
	return v, pe.promote().WithContext(pe.span, "expected "+what)
}

// Lookahead reports whether r would apply here. The stream is always
// restored and hard errors count as not applying.
func Lookahead[T any](s *Stream, r Rule[T]) bool {
	cp := s.Checkpoint()
	defer s.Restore(cp)
	_, err := Parse(s, r)
	return err == nil
}

// Run parses all of source with r. Leading and trailing whitespace is
// skipped; anything else left over, or a root rule that does not apply, is a
// hard error wrapping ErrUnexpectedInput.
func Run[T any](source string, r Rule[T], opts ...Option) (T, error) {
	s := NewStream(source, opts...)
	v, err := Parse(s, r)
	if err != nil {
		if pe, ok := AsError(err); ok && pe.mismatch {
			return v, unexpected(pe, typeName[T]())
		}
		return v, err
	}
	if _, err := Parse(s, EOF); err != nil {
		if pe, ok := AsError(err); ok && pe.mismatch {
			return v, unexpected(pe, "end of input")
		}
		return v, err
	}
	return v, nil
}

func unexpected(pe *Error, what string) *Error {
	e := pe.promote()
	e.cause = ErrUnexpectedInput
	return e.WithContext(pe.span, "expected "+what)
}

// typeName is the type's name with package paths removed, so that
// "github.com/dhamidi/dparse/token.Ident" reads "token.Ident".
func typeName[T any]() string {
	name := reflect.TypeOf((*T)(nil)).Elem().String()
	var b strings.Builder
	seg := 0
	for _, r := range name {
		switch r {
		case '/':
			kept := b.String()[:seg]
			b.Reset()
			b.WriteString(kept)
			continue
		case '[', ']', ',', ' ', '*', '(', ')':
			b.WriteRune(r)
			seg = b.Len()
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
