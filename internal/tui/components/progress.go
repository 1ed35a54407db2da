package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxpilot/internal/tui/tuistyles"
)

// ProgressBar shows how far through the interview the taxpayer is.
type ProgressBar struct {
	Current   int
	Total     int
	Width     int
	Label     string
	ShowCount bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current:   current,
		Total:     total,
		Width:     30,
		ShowCount: true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the completion percentage
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsComplete returns true if progress is at 100%
func (p *ProgressBar) IsComplete() bool {
	return p.Current >= p.Total
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(tuistyles.TitleStyle.Render(p.Label))
		content.WriteString("  ")
	}

	filled := int(float64(p.Width) * p.Percentage() / 100)
	empty := p.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	if p.ShowCount {
		content.WriteString(" ")
		content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("step %d of %d", p.Current, p.Total)))
	}

	return content.String()
}
