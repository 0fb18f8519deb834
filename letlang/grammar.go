package letlang

import (
	"github.com/dhamidi/dparse/parse"
	"github.com/dhamidi/dparse/token"
)

// Keywords are reserved and cannot be used as path segments.
var Keywords = []string{"let", "true", "false"}

var (
	idents  = token.CIdent.WithReserved(Keywords...)
	ident   = idents.Ident()
	kwLet   = idents.Keyword("let")
	kwTrue  = idents.Keyword("true")
	kwFalse = idents.Keyword("false")
)

var path = parse.Map(
	parse.SeparatedBy(ident, token.Dot),
	func(sep parse.Separated[token.Ident, token.Punct]) *Path {
		parts := sep.Items()
		return &Path{Parts: parts, Span: parse.Join(parts[0].Span, parts[len(parts)-1].Span)}
	},
)

var boolean = parse.Choice(
	parse.Map(kwTrue, func(k token.Keyword) *Scalar {
		return &Scalar{Kind: ScalarBool, Bool: true, Span: k.Span}
	}),
	parse.Map(kwFalse, func(k token.Keyword) *Scalar {
		return &Scalar{Kind: ScalarBool, Span: k.Span}
	}),
)

var scalar = parse.Choice(
	parse.Map(token.String, func(s token.Str) *Scalar {
		return &Scalar{Kind: ScalarString, Str: s.Value, Span: s.Span}
	}),
	parse.Map(token.Number, func(n token.Num) *Scalar {
		if n.IsFloat {
			return &Scalar{Kind: ScalarFloat, Float: n.Float, Span: n.Span}
		}
		return &Scalar{Kind: ScalarInt, Int: n.Int, Span: n.Span}
	}),
	boolean,
	parse.Map(path, func(p *Path) *Scalar {
		return &Scalar{Kind: ScalarRef, Ref: p, Span: p.Span}
	}),
)

var list parse.Rule[*List] = func(s *parse.Stream) (*List, error) {
	s.SkipWhitespace()
	cp := s.Checkpoint()
	open, err := parse.Parse(s, token.OpenBracket)
	if err != nil {
		return nil, err
	}
	inList := func(err error) error {
		if pe, ok := parse.AsError(err); ok {
			return pe.WithContext(s.SpanSince(cp), "in list")
		}
		return err
	}
	items, err := parse.Parse(s, parse.Optional(parse.PunctuatedBy(scalar, token.Comma)))
	if err != nil {
		return nil, inList(err)
	}
	closing, err := parse.Expect(s, token.CloseBracket, `"]"`)
	if err != nil {
		return nil, inList(err)
	}
	l := &List{Span: parse.Join(open.Span, closing.Span)}
	if items != nil {
		l.Items = items.Items()
		l.Trailing = items.Trailing == nil
	}
	return l, nil
}

var value = parse.Label("value", parse.Choice(
	parse.Map(list, func(l *List) Value { return l }),
	parse.Map(scalar, func(s *Scalar) Value { return s }),
))

// statement commits once "let" has matched; every later failure is a hard
// error framed with the statement, and with its path once that is known.
var statement parse.Rule[*Statement] = func(s *parse.Stream) (*Statement, error) {
	s.SkipWhitespace()
	cp := s.Checkpoint()
	if _, err := parse.Parse(s, kwLet); err != nil {
		return nil, err
	}

	stmt := &Statement{}
	inStatement := func(err error) error {
		pe, ok := parse.AsError(err)
		switch {
		case !ok:
			return err
		case stmt.Path != nil:
			return pe.WithContextf(s.SpanSince(cp), "in let statement for %s", stmt.Path)
		default:
			return pe.WithContext(s.SpanSince(cp), "in let statement")
		}
	}

	var err error
	if stmt.Path, err = parse.Expect(s, path, "name"); err != nil {
		return nil, inStatement(err)
	}
	if _, err = parse.Expect(s, token.Equals, `"="`); err != nil {
		return nil, inStatement(err)
	}
	if stmt.Value, err = parse.Expect(s, value, "value"); err != nil {
		return nil, inStatement(err)
	}
	if _, err = parse.Expect(s, token.Semicolon, `";"`); err != nil {
		return nil, inStatement(err)
	}
	stmt.Span = s.SpanSince(cp)
	return stmt, nil
}

var program parse.Rule[*Program] = func(s *parse.Stream) (*Program, error) {
	s.SkipWhitespace()
	cp := s.Checkpoint()
	stmts, err := parse.Parse(s, parse.Many(statement))
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts, Span: s.SpanSince(cp)}, nil
}

// Parse parses a whole letlang source. The error, if any, is a *parse.Error.
func Parse(filename, source string, opts ...parse.Option) (*Program, error) {
	opts = append([]parse.Option{parse.WithFile(filename)}, opts...)
	return parse.Run(source, program, opts...)
}
