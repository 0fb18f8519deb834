package letlang

import (
	"github.com/dhamidi/dparse/parse"
)

// Node is a generic view of the syntax tree for encoding as JSON or YAML.
type Node struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Span     *Range  `json:"span,omitempty" yaml:"span,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Tree converts p. The source is needed to resolve span ends.
func (p *Program) Tree(source string) *Node {
	t := treeBuilder{s: parse.NewStream(source)}
	n := &Node{Kind: "program", Span: t.span(p.Span)}
	for _, stmt := range p.Statements {
		n.Children = append(n.Children, t.statement(stmt))
	}
	return n
}

type treeBuilder struct {
	s *parse.Stream
}

func (t treeBuilder) span(span parse.Span) *Range {
	end := t.s.Locate(span.End())
	return &Range{
		Start: Position{Line: span.Start.Line, Column: span.Start.Column},
		End:   Position{Line: end.Line, Column: end.Column},
	}
}

func (t treeBuilder) statement(stmt *Statement) *Node {
	return &Node{
		Kind:     "let",
		Span:     t.span(stmt.Span),
		Children: []*Node{t.path(stmt.Path), t.value(stmt.Value)},
	}
}

func (t treeBuilder) path(p *Path) *Node {
	return &Node{Kind: "path", Span: t.span(p.Span), Text: p.String()}
}

func (t treeBuilder) value(v Value) *Node {
	switch v := v.(type) {
	case *List:
		n := &Node{Kind: "list", Span: t.span(v.Span)}
		for _, item := range v.Items {
			n.Children = append(n.Children, t.value(item))
		}
		return n
	case *Scalar:
		if v.Kind == ScalarRef {
			return &Node{Kind: "ref", Span: t.span(v.Span), Children: []*Node{t.path(v.Ref)}}
		}
		return &Node{Kind: v.Kind.String(), Span: t.span(v.Span), Text: v.String()}
	default:
		return &Node{Kind: "unknown"}
	}
}
