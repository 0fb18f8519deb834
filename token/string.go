package token

import (
	"strconv"

	"github.com/dhamidi/dparse/parse"
)

// Str is a matched double-quoted string literal.
type Str struct {
	Value string // decoded
	Raw   string // as written, quotes included
	Span  parse.Span
}

// String matches a double-quoted literal with Go escape sequences. Once the
// opening quote has matched, a missing closing quote or an invalid escape is
// a hard error.
var String parse.Rule[Str] = func(s *parse.Stream) (Str, error) {
	s.SkipWhitespace()
	defer s.WhitespaceScope(parse.PreserveWhitespace).Close()
	cp := s.Checkpoint()
	if !s.TakeStr(`"`) {
		return Str{}, s.Mismatchf("expected string")
	}
	for {
		r, ok := s.TakeChar()
		if !ok || r == '\n' {
			return Str{}, s.ErrorAt(s.SpanSince(cp), "unterminated string")
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			if _, ok := s.TakeChar(); !ok {
				return Str{}, s.ErrorAt(s.SpanSince(cp), "unterminated string")
			}
		}
	}
	span := s.SpanSince(cp)
	raw := span.Text(s.Source())
	value, err := strconv.Unquote(raw)
	if err != nil {
		return Str{}, s.WrapError(err, "invalid string %s", raw)
	}
	return Str{Value: value, Raw: raw, Span: span}, nil
}
