package letlang

import (
	"strconv"
	"strings"

	"github.com/dhamidi/dparse/parse"
	"github.com/dhamidi/dparse/token"
)

type Program struct {
	Statements []*Statement
	Span       parse.Span
}

// Statement is "let <path> = <value>;".
type Statement struct {
	Path  *Path
	Value Value
	Span  parse.Span
}

// Path is a dotted name such as server.http.port.
type Path struct {
	Parts []token.Ident
	Span  parse.Span
}

func (p *Path) String() string {
	names := make([]string, len(p.Parts))
	for i, part := range p.Parts {
		names[i] = part.Name
	}
	return strings.Join(names, ".")
}

// Value is a *List or a *Scalar.
type Value interface {
	Pos() parse.Span
	String() string
}

type List struct {
	Items []*Scalar
	// Trailing reports whether the last item was followed by a comma.
	Trailing bool
	Span     parse.Span
}

func (l *List) Pos() parse.Span { return l.Span }

func (l *List) String() string {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarBool
	ScalarRef
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	case ScalarRef:
		return "ref"
	default:
		return "unknown"
	}
}

type Scalar struct {
	Kind  ScalarKind
	Str   string
	Int   uint64
	Float float64
	Bool  bool
	Ref   *Path
	Span  parse.Span
}

func (s *Scalar) Pos() parse.Span { return s.Span }

func (s *Scalar) String() string {
	switch s.Kind {
	case ScalarString:
		return strconv.Quote(s.Str)
	case ScalarInt:
		return strconv.FormatUint(s.Int, 10)
	case ScalarFloat:
		return strconv.FormatFloat(s.Float, 'g', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(s.Bool)
	case ScalarRef:
		return s.Ref.String()
	default:
		return "?"
	}
}
