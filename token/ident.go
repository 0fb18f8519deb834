package token

import (
	"sort"
	"unicode"

	"github.com/dhamidi/dparse/parse"
)

// Ident is a matched identifier.
type Ident struct {
	Name string
	Span parse.Span
}

func (i Ident) String() string {
	return i.Name
}

// Keyword is a matched keyword.
type Keyword struct {
	Word string
	Span parse.Span
}

func (k Keyword) String() string {
	return k.Word
}

// IdentClass defines which character runs form identifiers and which of
// them are reserved.
//
// Identifier and keyword rules from the same class scan the same maximal run
// of identifier characters. The identifier rule rejects reserved words and a
// keyword rule accepts only its exact word, so for any input at most one of
// them applies and the order in which alternatives are tried does not change
// the result.
type IdentClass struct {
	first    func(rune) bool
	rest     func(rune) bool
	reserved map[string]struct{}
}

func NewIdentClass(first, rest func(rune) bool, reserved ...string) *IdentClass {
	c := &IdentClass{first: first, rest: rest, reserved: make(map[string]struct{}, len(reserved))}
	for _, w := range reserved {
		c.reserved[w] = struct{}{}
	}
	return c
}

// WithReserved returns a copy of c with more reserved words.
func (c *IdentClass) WithReserved(words ...string) *IdentClass {
	n := &IdentClass{first: c.first, rest: c.rest, reserved: make(map[string]struct{}, len(c.reserved)+len(words))}
	for w := range c.reserved {
		n.reserved[w] = struct{}{}
	}
	for _, w := range words {
		n.reserved[w] = struct{}{}
	}
	return n
}

func (c *IdentClass) IsReserved(word string) bool {
	_, ok := c.reserved[word]
	return ok
}

// Reserved returns the reserved words in sorted order.
func (c *IdentClass) Reserved() []string {
	words := make([]string, 0, len(c.reserved))
	for w := range c.reserved {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// scan matches the maximal identifier run after leading whitespace.
func (c *IdentClass) scan(s *parse.Stream) (string, parse.Span, bool) {
	s.SkipWhitespace()
	defer s.WhitespaceScope(parse.PreserveWhitespace).Close()
	cp := s.Checkpoint()
	r, ok := s.PeekChar()
	if !ok || !c.first(r) {
		return "", parse.Span{}, false
	}
	s.TakeChar()
	s.TakeWhile(c.rest)
	span := s.SpanSince(cp)
	return span.Text(s.Source()), span, true
}

// Ident returns the rule matching any identifier that is not reserved.
func (c *IdentClass) Ident() parse.Rule[Ident] {
	return func(s *parse.Stream) (Ident, error) {
		name, span, ok := c.scan(s)
		if !ok {
			return Ident{}, s.Mismatchf("expected identifier")
		}
		if c.IsReserved(name) {
			return Ident{}, s.Mismatchf("expected identifier, found keyword %q", name)
		}
		return Ident{Name: name, Span: span}, nil
	}
}

// Where returns the rule matching identifiers accepted by ok.
func (c *IdentClass) Where(ok func(name string) bool) parse.Rule[Ident] {
	ident := c.Ident()
	return func(s *parse.Stream) (Ident, error) {
		id, err := ident(s)
		if err != nil {
			return id, err
		}
		if !ok(id.Name) {
			return Ident{}, s.Mismatchf("unexpected identifier %q", id.Name)
		}
		return id, nil
	}
}

// Keyword returns the rule matching word as a whole identifier run; "if"
// does not match the start of "ifx".
func (c *IdentClass) Keyword(word string) parse.Rule[Keyword] {
	return func(s *parse.Stream) (Keyword, error) {
		name, span, ok := c.scan(s)
		if !ok || name != word {
			return Keyword{}, s.Mismatchf("expected %q", word)
		}
		return Keyword{Word: word, Span: span}, nil
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentRest(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// CIdent is the class of C-style identifiers, with no reserved words.
var CIdent = NewIdentClass(isIdentStart, isIdentRest)
