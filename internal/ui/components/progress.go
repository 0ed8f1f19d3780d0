package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edusense/edusense/internal/ui/theme"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// ProgressBar displays a horizontal bar for a value out of Max.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Value      float64
	Max        float64
	Width      int
	Format     string
}

// NewProgressBar creates a bar sized width cells, labelled label.
func NewProgressBar(label string, value, max float64, width int) ProgressBar {
	return ProgressBar{
		Label:  label,
		Value:  value,
		Max:    max,
		Width:  width,
		Format: "%.1f",
	}
}

// Filled returns the number of filled cells.
func (p ProgressBar) Filled() int {
	if p.Max <= 0 || p.Width <= 0 {
		return 0
	}
	filled := int(float64(p.Width) * p.Value / p.Max)
	return max(0, min(filled, p.Width))
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		label := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			label = label.Width(p.LabelWidth)
		}
		b.WriteString(label.Render(p.Label))
		b.WriteString("  ")
	}

	filled := p.Filled()
	b.WriteString(theme.BarFilled.Render(strings.Repeat(barFull, filled)))
	b.WriteString(theme.BarEmpty.Render(strings.Repeat(barEmpty, p.Width-filled)))

	if p.Format != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + fmt.Sprintf(p.Format, p.Value)))
	}
	return b.String()
}
