package token_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dparse/parse"
	"github.com/dhamidi/dparse/token"
)

func TestIdentAndKeywordAreExclusive(t *testing.T) {
	class := token.CIdent.WithReserved("if", "let")
	ident := class.Ident()
	kwIf := class.Keyword("if")

	tests := []struct {
		input   string
		ident   bool
		keyword bool
	}{
		{"if", false, true},
		{"ifx", true, false},
		{"let", false, false},
		{"letter", true, false},
		{"_if", true, false},
		{"x1", true, false},
		{"1x", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parse.Run(tt.input, ident)
			assert.Equal(t, tt.ident, err == nil, "ident: %v", err)
			_, err = parse.Run(tt.input, kwIf)
			assert.Equal(t, tt.keyword, err == nil, "keyword: %v", err)
		})
	}
}

func TestIdentClassReserved(t *testing.T) {
	class := token.CIdent.WithReserved("while", "do")
	assert.Equal(t, []string{"do", "while"}, class.Reserved())
	assert.True(t, class.IsReserved("do"))
	assert.False(t, token.CIdent.IsReserved("do"), "WithReserved must not modify the receiver")
}

func TestIdentWhere(t *testing.T) {
	upper := token.CIdent.Where(func(name string) bool { return name[0] >= 'A' && name[0] <= 'Z' })

	id, err := parse.Run("Foo", upper)
	require.NoError(t, err)
	assert.Equal(t, "Foo", id.Name)

	_, err = parse.Run("foo", upper)
	assert.Error(t, err)
}

func TestIdentIsOneRun(t *testing.T) {
	_, err := parse.Run("a b", token.CIdent.Ident())
	assert.ErrorIs(t, err, parse.ErrUnexpectedInput)

	pair := parse.Sequence2(token.CIdent.Ident(), token.CIdent.Ident())
	v, err := parse.Run(" a \t b ", pair)
	require.NoError(t, err)
	assert.Equal(t, "a", v.First.Name)
	assert.Equal(t, "b", v.Second.Name)
	assert.Equal(t, 5, v.Second.Span.Start.Offset)

	_, err = parse.Run("a b", parse.WithWhitespace(parse.PreserveWhitespace, pair))
	assert.Error(t, err)
}

func TestNumbers(t *testing.T) {
	f, err := parse.Run("12.5", token.Decimal)
	require.NoError(t, err)
	assert.Equal(t, 12.5, f.Value)

	_, err = parse.Run("12", token.Decimal)
	assert.ErrorIs(t, err, parse.ErrUnexpectedInput)

	tests := []struct {
		input string
		want  token.Num
	}{
		{"12", token.Num{Int: 12, Text: "12"}},
		{"1_000", token.Num{Int: 1000, Text: "1_000"}},
		{"0.25", token.Num{IsFloat: true, Float: 0.25, Text: "0.25"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := parse.Run(tt.input, token.Number)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, n, cmp.FilterPath(func(p cmp.Path) bool {
				return p.Last().String() == ".Span"
			}, cmp.Ignore())); diff != "" {
				t.Errorf("Number mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err = parse.Run("12.", token.Number)
	assert.ErrorIs(t, err, parse.ErrUnexpectedInput)
}

func TestIntegerOverflow(t *testing.T) {
	_, err := parse.Run("99999999999999999999", token.Integer)
	require.Error(t, err)
	assert.False(t, parse.IsMismatch(err))
	assert.False(t, errors.Is(err, parse.ErrUnexpectedInput))
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestString(t *testing.T) {
	s, err := parse.Run(` "a\tb\"c" `, token.String)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\"c", s.Value)
	assert.Equal(t, `"a\tb\"c"`, s.Raw)
	assert.Equal(t, 1, s.Span.Start.Offset)

	tests := []string{`"abc`, "\"ab\ncd\"", `"abc\`}
	for _, input := range tests {
		_, err := parse.Run(input, token.String)
		pe, ok := parse.AsError(err)
		require.True(t, ok, "input %q", input)
		assert.False(t, pe.IsMismatch())
		assert.Equal(t, "unterminated string", pe.Message())
	}

	s, err = parse.Run("\"\xff\"", token.String)
	require.NoError(t, err, "an invalid byte inside quotes is one character")
	assert.Equal(t, "\"\xff\"", s.Raw)

	_, err = parse.Run(`"\q"`, token.String)
	require.Error(t, err)
	assert.NotErrorIs(t, err, parse.ErrUnexpectedInput)

	_, err = parse.Run("abc", token.String)
	assert.ErrorIs(t, err, parse.ErrUnexpectedInput)
}

func TestLongest(t *testing.T) {
	longest := token.Puncts.Longest()

	tests := []struct {
		input string
		want  string
	}{
		{"===", "==="},
		{"==", "=="},
		{"=>", "=>"},
		{"=", "="},
		{"...", "..."},
		{"->", "->"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := parse.Run(tt.input, longest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Text)
		})
	}

	s := parse.NewStream("=== x")
	p, err := parse.Parse(s, token.Equals)
	require.NoError(t, err)
	assert.Equal(t, "=", p.Text)
	assert.Equal(t, "== x", s.Rest())
}

func TestTable(t *testing.T) {
	table := token.NewTable("<", "<=", "<", "<<=")
	assert.Equal(t, []string{"<<=", "<=", "<"}, table.Literals())
	assert.True(t, table.Has("<="))
	assert.False(t, table.Has(">"))
	assert.Panics(t, func() { table.Rule(">") })
	assert.Panics(t, func() { token.Lit("") })
}

func TestIdentSequenceErrors(t *testing.T) {
	ident := token.CIdent.Ident()
	rule := parse.Sequence3(ident, token.Comma, ident)

	v, err := parse.Run("foo, bar", rule)
	require.NoError(t, err)
	assert.Equal(t, "foo", v.First.Name)
	assert.Equal(t, ",", v.Second.Text)
	assert.Equal(t, "bar", v.Third.Name)

	_, err = parse.Run("foo,", rule)
	pe, ok := parse.AsError(err)
	require.True(t, ok)
	assert.False(t, pe.IsMismatch())
	assert.Equal(t, 4, pe.Span().Start.Offset)

	frames := pe.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, "expected token.Ident", frames[0].Message)
	assert.Equal(t, "in parse.Tuple3[token.Ident,token.Punct,token.Ident]", frames[1].Message)
	assert.Equal(t, "foo,", frames[1].Span.Text("foo,"))
}

func TestInvalidUTF8Input(t *testing.T) {
	tests := []struct {
		name string
		rule func(string) error
	}{
		{"ident", func(src string) error { _, err := parse.Run(src, token.CIdent.Ident()); return err }},
		{"keyword", func(src string) error { _, err := parse.Run(src, token.CIdent.Keyword("if")); return err }},
		{"integer", func(src string) error { _, err := parse.Run(src, token.Integer); return err }},
		{"number", func(src string) error { _, err := parse.Run(src, token.Number); return err }},
		{"punct", func(src string) error { _, err := parse.Run(src, token.Puncts.Longest()); return err }},
		{"string", func(src string) error { _, err := parse.Run(src, token.String); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, src := range []string{"\xff", "\xffa", "a\xff", "\xff\xfe"} {
				err := tt.rule(src)
				assert.ErrorIs(t, err, parse.ErrUnexpectedInput, "source %q", src)
			}
		})
	}

	v, err := parse.Run("ab\xff", parse.Sequence2(token.CIdent.Ident(), parse.Optional(token.Comma)))
	require.Error(t, err)
	assert.Equal(t, "ab", v.First.Name)
	pe, ok := parse.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Span().Start.Offset)
	assert.Equal(t, 1, pe.Span().Length)
}
