package token

import (
	"strconv"
	"strings"

	"github.com/dhamidi/dparse/parse"
)

// Int is a matched integer literal.
type Int struct {
	Value uint64
	Text  string
	Span  parse.Span
}

// Float is a matched decimal literal.
type Float struct {
	Value float64
	Text  string
	Span  parse.Span
}

// Num is either an Int or a Float.
type Num struct {
	IsFloat bool
	Int     uint64
	Float   float64
	Text    string
	Span    parse.Span
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitOrUnderscore(r rune) bool {
	return isDigit(r) || r == '_'
}

// digits scans a run of digits and underscores starting with a digit.
func digits(s *parse.Stream) bool {
	r, ok := s.PeekChar()
	if !ok || !isDigit(r) {
		return false
	}
	s.TakeWhile(isDigitOrUnderscore)
	return true
}

// Integer matches decimal digits with optional "_" separators, as in 1_000.
var Integer parse.Rule[Int] = func(s *parse.Stream) (Int, error) {
	s.SkipWhitespace()
	defer s.WhitespaceScope(parse.PreserveWhitespace).Close()
	cp := s.Checkpoint()
	if !digits(s) {
		return Int{}, s.Mismatchf("expected integer")
	}
	span := s.SpanSince(cp)
	text := span.Text(s.Source())
	v, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 10, 64)
	if err != nil {
		return Int{}, s.WrapError(err, "invalid integer %s", text)
	}
	return Int{Value: v, Text: text, Span: span}, nil
}

// Decimal matches digits, a dot and more digits. Input without a fractional
// part, such as "12" or "12.", is a mismatch so that Integer can claim it.
var Decimal parse.Rule[Float] = func(s *parse.Stream) (Float, error) {
	s.SkipWhitespace()
	defer s.WhitespaceScope(parse.PreserveWhitespace).Close()
	cp := s.Checkpoint()
	if !digits(s) || !s.TakeStr(".") || !digits(s) {
		return Float{}, s.Mismatchf("expected decimal")
	}
	span := s.SpanSince(cp)
	text := span.Text(s.Source())
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return Float{}, s.WrapError(err, "invalid decimal %s", text)
	}
	return Float{Value: v, Text: text, Span: span}, nil
}

// Number matches a Decimal or, failing that, an Integer.
var Number = parse.Choice(
	parse.Map(Decimal, func(f Float) Num {
		return Num{IsFloat: true, Float: f.Value, Text: f.Text, Span: f.Span}
	}),
	parse.Map(Integer, func(i Int) Num {
		return Num{Int: i.Value, Text: i.Text, Span: i.Span}
	}),
)
