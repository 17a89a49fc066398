package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When the output is not a terminal, markdown is returned untouched.
func NewRenderer(out *os.File) func(string) (string, error) {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RouteMarkdown describes a route as a numbered markdown list.
func RouteMarkdown(origin domain.Navigable, path []domain.Navigable) string {
	var sb strings.Builder
	if len(path) == 0 {
		sb.WriteString(fmt.Sprintf("No hops needed from **%s**.\n", domain.IDOf(origin)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("## Route from %s (%d hops)\n\n", domain.IDOf(origin), len(path)))
	prev := origin
	for i, n := range path {
		label := ""
		for _, t := range prev.Transitions() {
			if domain.Same(t.To, n) {
				label = t.Label
				break
			}
		}
		if label != "" {
			sb.WriteString(fmt.Sprintf("%d. **%s** _(%s)_\n", i+1, n.ID(), label))
		} else {
			sb.WriteString(fmt.Sprintf("%d. **%s**\n", i+1, n.ID()))
		}
		prev = n
	}
	return sb.String()
}

// Print renders markdown to w, falling back to the raw text on render errors.
func Print(w io.Writer, render func(string) (string, error), markdown string) {
	out, err := render(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(w, out)
}
