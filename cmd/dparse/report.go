package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/dhamidi/dparse/parse"
)

// styles holds the color formatters for diagnostics.
type styles struct {
	location *color.Color
	severity *color.Color
	caret    *color.Color
	context  *color.Color
}

// newStyles creates the formatters for mode "auto", "always" or "never".
// In auto mode the color package decides from the terminal and NO_COLOR.
func newStyles(mode string) (*styles, error) {
	s := &styles{
		location: color.New(color.Bold),
		severity: color.New(color.Bold, color.FgRed),
		caret:    color.New(color.FgGreen),
		context:  color.New(color.FgHiBlue),
	}

	switch mode {
	case "auto":
	case "always":
		for _, c := range s.all() {
			c.EnableColor()
		}
	case "never":
		for _, c := range s.all() {
			c.DisableColor()
		}
	default:
		return nil, fmt.Errorf("unknown color mode: %s (expected auto, always or never)", mode)
	}
	return s, nil
}

func (s *styles) all() []*color.Color {
	return []*color.Color{s.location, s.severity, s.caret, s.context}
}

// printParseError writes err as
//
//	file:line:col: error: message
//	    let x = ;
//	            ^
//	  line:col: frame message
func printParseError(w io.Writer, st *styles, filename, source string, err *parse.Error) {
	span := err.Span()
	st.location.Fprintf(w, "%s:%s:", filename, span.Render(source))
	st.severity.Fprint(w, " error: ")
	fmt.Fprintln(w, err.Message())

	if span.Start.Offset < len(source) {
		s := parse.NewStream(source)
		line := s.LineText(span)
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", " "))
		width := utf8.RuneCountInString(span.Text(source))
		if nl := strings.IndexByte(span.Text(source), '\n'); nl >= 0 {
			width = utf8.RuneCountInString(span.Text(source)[:nl])
		}
		if width < 1 {
			width = 1
		}
		fmt.Fprint(w, "    ", strings.Repeat(" ", span.Start.Column-1))
		st.caret.Fprintln(w, strings.Repeat("^", width))
	}

	for _, f := range err.Frames() {
		st.context.Fprintf(w, "  %s: ", f.Span.Render(source))
		fmt.Fprintln(w, f.Message)
	}
}
