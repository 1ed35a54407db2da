// Package tuistyles holds the colors and lipgloss styles shared by the
// wizard and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#1565C0")
	ColorAccent    = lipgloss.Color("#F9A825")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#039BE5")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#90A4AE")
	ColorBorder     = lipgloss.Color("#546E7A")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Width(34)

	FocusedLabelStyle = LabelStyle.
				Foreground(ColorAccent).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// MetricTrendStyle colors good news green and bad news red.
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole dollars for compact panels.
func FormatCurrency(d decimal.Decimal) string {
	return money.FormatWhole(d)
}
