// Package render turns Markdown into styled terminal output with glamour.
package render

import (
	"github.com/charmbracelet/glamour"

	"github.com/gerunddev/mdtree/internal/inspect"
)

// DefaultWidth is the word wrap used when no terminal width is known
const DefaultWidth = 120

// Markdown renders src for the terminal, wrapped at width. If glamour cannot
// build a renderer or fails to render, src is returned unchanged.
func Markdown(src string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}

	rendered, err := renderer.Render(src)
	if err != nil {
		return src
	}
	return rendered
}

// Document renders a generated document: its title as a heading followed by
// its body
func Document(path string, width int) (string, error) {
	doc, err := inspect.ReadDocument(path)
	if err != nil {
		return "", err
	}
	src := doc.Body
	if doc.Title != "" {
		src = "# " + doc.Title + "\n\n" + src
	}
	return Markdown(src, width), nil
}
