package parse

import (
	"sync"
	"unicode"
	"unicode/utf8"
)

// Optional matches r zero or one time. Absence is a success with nil.
func Optional[T any](r Rule[T]) Rule[*T] {
	return func(s *Stream) (*T, error) {
		v, ok, err := TryParse(s, r)
		if err != nil || !ok {
			return nil, err
		}
		return &v, nil
	}
}

// Many matches r zero or more times. An empty result is a success.
//
// Repetition stops at the first match that consumed no input, since
// repeating it could never make progress.
func Many[T any](r Rule[T]) Rule[[]T] {
	return func(s *Stream) ([]T, error) {
		return many(s, r)
	}
}

// Many1 matches r one or more times. An empty result is a mismatch.
func Many1[T any](r Rule[T]) Rule[[]T] {
	return func(s *Stream) ([]T, error) {
		items, err := many(s, r)
		if err != nil {
			return items, err
		}
		if len(items) == 0 {
			return nil, s.Mismatch()
		}
		return items, nil
	}
}

func many[T any](s *Stream, r Rule[T]) ([]T, error) {
	var items []T
	for {
		before := s.Offset()
		v, ok, err := TryParse(s, r)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, v)
		if s.Offset() == before {
			return items, nil
		}
	}
}

// Pair is an item together with the separator that followed it.
type Pair[I, S any] struct {
	Item I
	Sep  S
}

// Punctuated is a list of items, each followed by a separator except
// possibly the last.
type Punctuated[I, S any] struct {
	Pairs    []Pair[I, S]
	Trailing *I // last item when it has no separator after it
}

// Len returns the number of items.
func (p Punctuated[I, S]) Len() int {
	if p.Trailing != nil {
		return len(p.Pairs) + 1
	}
	return len(p.Pairs)
}

// Items returns every item in order.
func (p Punctuated[I, S]) Items() []I {
	items := make([]I, 0, p.Len())
	for _, pair := range p.Pairs {
		items = append(items, pair.Item)
	}
	if p.Trailing != nil {
		items = append(items, *p.Trailing)
	}
	return items
}

// Seps returns every separator in order.
func (p Punctuated[I, S]) Seps() []S {
	seps := make([]S, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		seps = append(seps, pair.Sep)
	}
	return seps
}

// PunctuatedBy matches items separated by sep, with an optional trailing
// separator: "x", "x,", "x,x", "x,x," and so on. A list with no items is a
// mismatch; wrap the rule in Optional to accept an empty list. As with Many,
// an item and separator that together consume nothing end the list.
func PunctuatedBy[I, S any](item Rule[I], sep Rule[S]) Rule[Punctuated[I, S]] {
	return func(s *Stream) (Punctuated[I, S], error) {
		var p Punctuated[I, S]
		for {
			before := s.Offset()
			v, ok, err := TryParse(s, item)
			if err != nil {
				return p, err
			}
			if !ok {
				break
			}
			sv, ok, err := TryParse(s, sep)
			if err != nil {
				return p, err
			}
			if !ok {
				p.Trailing = &v
				break
			}
			p.Pairs = append(p.Pairs, Pair[I, S]{Item: v, Sep: sv})
			if s.Offset() == before {
				break
			}
		}
		if len(p.Pairs) == 0 && p.Trailing == nil {
			return p, s.Mismatch()
		}
		return p, nil
	}
}

// Separated is a non-empty list of items with a separator between each two.
type Separated[I, S any] struct {
	Pairs    []Pair[I, S]
	Trailing I
}

// Len returns the number of items.
func (p Separated[I, S]) Len() int {
	return len(p.Pairs) + 1
}

// Items returns every item in order.
func (p Separated[I, S]) Items() []I {
	items := make([]I, 0, p.Len())
	for _, pair := range p.Pairs {
		items = append(items, pair.Item)
	}
	return append(items, p.Trailing)
}

// Seps returns every separator in order.
func (p Separated[I, S]) Seps() []S {
	seps := make([]S, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		seps = append(seps, pair.Sep)
	}
	return seps
}

// SeparatedBy matches "x", "x,x", "x,x,x" and so on. A separator with no item
// after it is left unconsumed, and a separator and item that together consume
// nothing end the list.
func SeparatedBy[I, S any](item Rule[I], sep Rule[S]) Rule[Separated[I, S]] {
	return func(s *Stream) (Separated[I, S], error) {
		var p Separated[I, S]
		first, err := Parse(s, item)
		if err != nil {
			return p, err
		}
		p.Trailing = first
		for {
			cp := s.Checkpoint()
			sv, ok, err := TryParse(s, sep)
			if err != nil {
				return p, err
			}
			if !ok {
				break
			}
			next, ok, err := TryParse(s, item)
			if err != nil {
				return p, err
			}
			if !ok {
				s.Restore(cp)
				break
			}
			p.Pairs = append(p.Pairs, Pair[I, S]{Item: p.Trailing, Sep: sv})
			p.Trailing = next
			if s.Offset() == cp.offset {
				break
			}
		}
		return p, nil
	}
}

type Tuple2[A, B any] struct {
	First  A
	Second B
}

type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// committed adds the frame naming the sequence a required element failed in.
func committed[T any](s *Stream, cp Checkpoint, err error) error {
	if pe, ok := AsError(err); ok {
		return pe.WithContext(s.SpanSince(cp), "in "+typeName[T]())
	}
	return err
}

// Sequence2 matches a then b. Whether a matches decides whether the sequence
// applies; once it has, a missing b is a hard error.
func Sequence2[A, B any](a Rule[A], b Rule[B]) Rule[Tuple2[A, B]] {
	return func(s *Stream) (t Tuple2[A, B], err error) {
		cp := s.Checkpoint()
		if t.First, err = Parse(s, a); err != nil {
			return t, err
		}
		if t.Second, err = Require(s, b); err != nil {
			return t, committed[Tuple2[A, B]](s, cp, err)
		}
		return t, nil
	}
}

// Sequence3 is Sequence2 for three elements.
func Sequence3[A, B, C any](a Rule[A], b Rule[B], c Rule[C]) Rule[Tuple3[A, B, C]] {
	return func(s *Stream) (t Tuple3[A, B, C], err error) {
		cp := s.Checkpoint()
		if t.First, err = Parse(s, a); err != nil {
			return t, err
		}
		if t.Second, err = Require(s, b); err != nil {
			return t, committed[Tuple3[A, B, C]](s, cp, err)
		}
		if t.Third, err = Require(s, c); err != nil {
			return t, committed[Tuple3[A, B, C]](s, cp, err)
		}
		return t, nil
	}
}

// Sequence4 is Sequence2 for four elements.
func Sequence4[A, B, C, D any](a Rule[A], b Rule[B], c Rule[C], d Rule[D]) Rule[Tuple4[A, B, C, D]] {
	return func(s *Stream) (t Tuple4[A, B, C, D], err error) {
		cp := s.Checkpoint()
		if t.First, err = Parse(s, a); err != nil {
			return t, err
		}
		if t.Second, err = Require(s, b); err != nil {
			return t, committed[Tuple4[A, B, C, D]](s, cp, err)
		}
		if t.Third, err = Require(s, c); err != nil {
			return t, committed[Tuple4[A, B, C, D]](s, cp, err)
		}
		if t.Fourth, err = Require(s, d); err != nil {
			return t, committed[Tuple4[A, B, C, D]](s, cp, err)
		}
		return t, nil
	}
}

// Choice returns the result of the first alternative that applies.
func Choice[T any](alts ...Rule[T]) Rule[T] {
	return func(s *Stream) (T, error) {
		for _, alt := range alts {
			v, ok, err := TryParse(s, alt)
			if err != nil || ok {
				return v, err
			}
		}
		var zero T
		return zero, s.Mismatchf("expected %s", typeName[T]())
	}
}

// Label names what r matches. A mismatch from r reads "expected <what>"
// instead of the message r produced; its span is kept.
func Label[T any](what string, r Rule[T]) Rule[T] {
	return func(s *Stream) (T, error) {
		v, err := Parse(s, r)
		if pe, ok := AsError(err); ok && pe.mismatch {
			c := *pe
			c.message = "expected " + what
			return v, &c
		}
		return v, err
	}
}

// Map converts the result of r.
func Map[A, B any](r Rule[A], f func(A) B) Rule[B] {
	return func(s *Stream) (B, error) {
		v, err := Parse(s, r)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(v), nil
	}
}

// Lazy defers building a rule until it is first run, so that rules can refer
// to each other recursively.
func Lazy[T any](build func() Rule[T]) Rule[T] {
	var (
		once sync.Once
		r    Rule[T]
	)
	return func(s *Stream) (T, error) {
		once.Do(func() { r = build() })
		return r(s)
	}
}

// Spanned is a value together with the source span it was parsed from.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// WithSpan records the span r consumed, leading whitespace excluded.
func WithSpan[T any](r Rule[T]) Rule[Spanned[T]] {
	return func(s *Stream) (Spanned[T], error) {
		s.SkipWhitespace()
		cp := s.Checkpoint()
		v, err := Parse(s, r)
		return Spanned[T]{Value: v, Span: s.SpanSince(cp)}, err
	}
}

// WithWhitespace runs r with whitespace handled according to mode. The
// previous mode is back in effect however r returns.
func WithWhitespace[T any](mode WhitespaceMode, r Rule[T]) Rule[T] {
	return func(s *Stream) (T, error) {
		defer s.WhitespaceScope(mode).Close()
		return Parse(s, r)
	}
}

// OnLine matches r only if no line break precedes it. Whitespace that is
// being preserved is left for r to handle.
func OnLine[T any](r Rule[T]) Rule[T] {
	return func(s *Stream) (T, error) {
		for s.Whitespace() == IgnoreWhitespace && s.offset < len(s.source) {
			c, n := utf8.DecodeRuneInString(s.source[s.offset:])
			if c == '\n' {
				var zero T
				return zero, s.Mismatchf("expected %s on the same line", typeName[T]())
			}
			if !unicode.IsSpace(c) {
				break
			}
			s.offset += n
		}
		return Parse(s, r)
	}
}

// EOF matches the end of input, after skipping whitespace when it is not
// being preserved.
var EOF Rule[Span] = func(s *Stream) (Span, error) {
	if !s.AtEnd() {
		return Span{}, s.Mismatchf("expected end of input")
	}
	return s.SpanSince(s.Checkpoint()), nil
}
