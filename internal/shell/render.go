package shell

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns an agent reply into terminal text.
type Renderer interface {
	Render(text string) (string, error)
}

// PlainRenderer prints replies verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(text string) (string, error) { return text, nil }

// MarkdownRenderer renders replies as styled markdown.
type MarkdownRenderer struct {
	r *glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer wrapping at width columns.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width-10),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{r: r}, nil
}

func (m *MarkdownRenderer) Render(text string) (string, error) {
	out, err := m.r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
