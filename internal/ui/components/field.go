package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edusense/edusense/internal/ui/theme"
)

// Field is a labelled value line.
type Field struct {
	Label string
	Value string
	Style *lipgloss.Style
}

// Fields renders label/value pairs one per line.
func Fields(fields ...Field) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		style := theme.Body
		if f.Style != nil {
			style = *f.Style
		}
		lines[i] = theme.Label.Render(f.Label) + style.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}

// Section renders a heading above body.
func Section(heading, body string) string {
	return theme.Heading.Render(heading) + "\n" + body
}
