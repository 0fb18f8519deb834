package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	s := NewStream("ab")

	v, err := Parse(s, Optional(lit("b")))
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, s.Offset())

	v, err = Parse(s, Optional(lit("a")))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "a", *v)

	_, err = Parse(s, Optional(broken))
	assert.Error(t, err)
}

func TestMany(t *testing.T) {
	s := NewStream("a a a b")
	items, err := Parse(s, Many(lit("a")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "a"}, items)
	assert.Equal(t, " b", s.Rest())

	items, err = Parse(s, Many(lit("a")))
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = Parse(s, Many1(lit("a")))
	assert.True(t, IsMismatch(err))

	items, err = Parse(s, Many1(lit("b")))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, items)
}

func TestManyStopsWithoutProgress(t *testing.T) {
	empty := Rule[int](func(s *Stream) (int, error) { return 0, nil })
	items, err := Run("", Many(empty))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPunctuated(t *testing.T) {
	list := PunctuatedBy(lit("a"), lit(","))

	tests := []struct {
		source   string
		items    int
		trailing bool // whether the last item had no separator after it
		rest     string
	}{
		{"a", 1, true, ""},
		{"a,", 1, false, ""},
		{"a,a,a", 3, true, ""},
		{"a, a, a,", 3, false, ""},
		{"a a", 1, true, " a"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			s := NewStream(tt.source)
			p, err := Parse(s, list)
			require.NoError(t, err)
			assert.Equal(t, tt.items, p.Len())
			assert.Len(t, p.Items(), tt.items)
			assert.Equal(t, tt.trailing, p.Trailing != nil)
			assert.Equal(t, tt.rest, s.Rest())
		})
	}

	_, err := Parse(NewStream(",a"), list)
	assert.True(t, IsMismatch(err))
}

func TestPunctuatedRoundTrip(t *testing.T) {
	const source = "a,a,a"
	p, err := Run(source, PunctuatedBy(lit("a"), lit(",")))
	require.NoError(t, err)

	var b strings.Builder
	seps := p.Seps()
	for i, item := range p.Items() {
		b.WriteString(item)
		if i < len(seps) {
			b.WriteString(seps[i])
		}
	}
	assert.Equal(t, source, b.String())
}

func TestSeparated(t *testing.T) {
	list := SeparatedBy(lit("a"), lit(","))

	s := NewStream("a,a")
	p, err := Parse(s, list)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{","}, p.Seps())

	s = NewStream("a,a,")
	p, err = Parse(s, list)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, ",", s.Rest(), "dangling separator must stay unconsumed")

	_, err = Run("a,a,", list)
	assert.ErrorIs(t, err, ErrUnexpectedInput)

	_, err = Parse(NewStream(""), list)
	assert.True(t, IsMismatch(err))
}

func TestChoice(t *testing.T) {
	r := Choice(lit("ab"), lit("a"), lit("b"))

	s := NewStream("a b")
	v, err := Parse(s, r)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = Parse(s, r)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = Parse(s, r)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, pe.IsMismatch())
	assert.Equal(t, "expected string", pe.Message())

	_, err = Parse(NewStream("x"), Choice(broken, lit("x")))
	assert.False(t, IsMismatch(err), "hard errors are not alternatives")
}

func TestMap(t *testing.T) {
	r := Map(Many1(lit("a")), func(items []string) int { return len(items) })
	n, err := Run("aaa", r)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWithSpan(t *testing.T) {
	const source = "  ab"
	v, err := Run(source, WithSpan(lit("ab")))
	require.NoError(t, err)

	want := Spanned[string]{Value: "ab", Span: Span{Start: Location{Offset: 2, Line: 1, Column: 3}, Length: 2}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("WithSpan mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ab", v.Span.Text(source))
}

func TestWithWhitespace(t *testing.T) {
	ab := Sequence2(lit("a"), lit("b"))

	_, err := Run("a b", ab)
	require.NoError(t, err)

	_, err = Run("a b", WithWhitespace(PreserveWhitespace, ab))
	require.Error(t, err)

	s := NewStream("ab")
	_, err = Parse(s, WithWhitespace(PreserveWhitespace, broken))
	require.Error(t, err)
	assert.Equal(t, IgnoreWhitespace, s.Whitespace())
}

func TestOnLine(t *testing.T) {
	r := Sequence2(lit("a"), Optional(OnLine(lit("b"))))

	v, err := Run("a  b", r)
	require.NoError(t, err)
	assert.NotNil(t, v.Second)

	s := NewStream("a\n b")
	v, err = Parse(s, r)
	require.NoError(t, err)
	assert.Nil(t, v.Second)
	assert.Equal(t, "\n b", s.Rest())
}

func TestEOF(t *testing.T) {
	_, err := Parse(NewStream("  \n"), EOF)
	require.NoError(t, err)

	_, err = Parse(NewStream(" x"), EOF)
	assert.True(t, IsMismatch(err))
}

func TestWithContextIsNonDestructive(t *testing.T) {
	s := NewStream("x")
	base := s.Errorf("bad")
	outer := base.WithContext(Span{}, "in a").WithContextf(Span{}, "in %s", "b")

	assert.Empty(t, base.Frames())
	require.Len(t, outer.Frames(), 2)
	assert.Equal(t, "in a", outer.Frames()[0].Message)
	assert.Equal(t, "in b", outer.Frames()[1].Message)

	frames := outer.Frames()
	frames[0].Message = "changed"
	assert.Equal(t, "in a", outer.Frames()[0].Message)
}

func TestListsStopWithoutProgress(t *testing.T) {
	item := Optional(lit("a"))
	sep := Optional(lit(","))

	tests := []struct {
		name   string
		source string
		items  int
		rest   string
	}{
		{"nothing matches", "b", 1, "b"},
		{"items then nothing", "a,a b", 3, " b"},
	}
	for _, tt := range tests {
		t.Run("punctuated/"+tt.name, func(t *testing.T) {
			s := NewStream(tt.source)
			p, err := Parse(s, PunctuatedBy(item, sep))
			require.NoError(t, err)
			assert.Equal(t, tt.items, p.Len())
			assert.Equal(t, tt.rest, s.Rest())
		})
	}

	s := NewStream("b")
	p, err := Parse(s, SeparatedBy(item, sep))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "b", s.Rest())
}

func TestLabel(t *testing.T) {
	r := Label("greeting", Choice(lit("hi"), lit("hello")))

	v, err := Run("hello", r)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = Parse(NewStream("  bye"), r)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, pe.IsMismatch())
	assert.Equal(t, "expected greeting", pe.Message())
	assert.Equal(t, 2, pe.Span().Start.Offset)

	_, err = Parse(NewStream("x"), Label("greeting", broken))
	pe, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, "broken input", pe.Message())
}

func TestSequence4(t *testing.T) {
	r := Sequence4(lit("let"), lit("x"), lit("="), lit("1"))

	v, err := Run("let x = 1", r)
	require.NoError(t, err)
	assert.Equal(t, Tuple4[string, string, string, string]{"let", "x", "=", "1"}, v)

	_, err = Run("let x 1", r)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, `expected "="`, pe.Message())
	require.Len(t, pe.Frames(), 2)
	assert.Equal(t, "in parse.Tuple4[string,string,string,string]", pe.Frames()[1].Message)
}
