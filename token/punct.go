package token

import (
	"fmt"
	"sort"

	"github.com/dhamidi/dparse/parse"
)

// Punct is a matched fixed literal.
type Punct struct {
	Text string
	Span parse.Span
}

func (p Punct) String() string {
	return p.Text
}

// Lit returns the rule matching exactly text.
func Lit(text string) parse.Rule[Punct] {
	if text == "" {
		panic("token: empty literal")
	}
	return func(s *parse.Stream) (Punct, error) {
		s.SkipWhitespace()
		cp := s.Checkpoint()
		if !s.TakeStr(text) {
			return Punct{}, s.Mismatchf("expected %q", text)
		}
		return Punct{Text: text, Span: s.SpanSince(cp)}, nil
	}
}

// Table is a registered set of literals.
type Table struct {
	byLength []string // longest first
	rules    map[string]parse.Rule[Punct]
}

func NewTable(literals ...string) *Table {
	t := &Table{rules: make(map[string]parse.Rule[Punct], len(literals))}
	for _, lit := range literals {
		if _, ok := t.rules[lit]; ok {
			continue
		}
		t.rules[lit] = Lit(lit)
		t.byLength = append(t.byLength, lit)
	}
	sort.SliceStable(t.byLength, func(i, j int) bool {
		return len(t.byLength[i]) > len(t.byLength[j])
	})
	return t
}

// Rule returns the matcher for a registered literal. It panics if text was
// never registered.
func (t *Table) Rule(text string) parse.Rule[Punct] {
	r, ok := t.rules[text]
	if !ok {
		panic(fmt.Sprintf("token: literal %q is not registered", text))
	}
	return r
}

// Has reports whether text is registered.
func (t *Table) Has(text string) bool {
	_, ok := t.rules[text]
	return ok
}

// Literals returns the registered literals, longest first.
func (t *Table) Literals() []string {
	return append([]string(nil), t.byLength...)
}

// Longest matches the longest registered literal at the cursor, so that
// "===" is preferred over "==" and "=".
func (t *Table) Longest() parse.Rule[Punct] {
	return func(s *parse.Stream) (Punct, error) {
		s.SkipWhitespace()
		cp := s.Checkpoint()
		for _, lit := range t.byLength {
			if s.TakeStr(lit) {
				return Punct{Text: lit, Span: s.SpanSince(cp)}, nil
			}
		}
		return Punct{}, s.Mismatchf("expected punctuation")
	}
}

// Puncts holds the C-style punctuation set.
var Puncts = NewTable(
	"~", "`", "!", "@", "#", "$", "%", "^", "&", "*", "(", ")", "-", "_", "+",
	"=", "[", "]", "{", "}", "|", "\\", ":", ";", "'", "\"", "<", ",", ">",
	".", "?", "/",
	"~=", "!=", "%=", "^=", "^^", "&=", "&&", "*=", "**", "()", "-=", "--",
	"->", "+=", "++", "==", "=>", "[]", "{}", "|=", "||", "::", ":=", "<<",
	"<=", ">>", ">=", "//", "/=", "??", "?=", "..",
	"===", "<<<", ">>>", "...",
)

var (
	Comma        = Puncts.Rule(",")
	Semicolon    = Puncts.Rule(";")
	Colon        = Puncts.Rule(":")
	Dot          = Puncts.Rule(".")
	Equals       = Puncts.Rule("=")
	OpenParen    = Puncts.Rule("(")
	CloseParen   = Puncts.Rule(")")
	OpenBracket  = Puncts.Rule("[")
	CloseBracket = Puncts.Rule("]")
	OpenBrace    = Puncts.Rule("{")
	CloseBrace   = Puncts.Rule("}")
	Arrow        = Puncts.Rule("->")
	DoubleColon  = Puncts.Rule("::")
)
