package tui

import "github.com/rgehrsitz/taxpilot/internal/tui/tuistyles"

// Re-export styles from tuistyles so components can share them without an
// import cycle.
var (
	AppStyle          = tuistyles.AppStyle
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	StatusKeyStyle    = tuistyles.StatusKeyStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	LabelStyle        = tuistyles.LabelStyle
	FocusedLabelStyle = tuistyles.FocusedLabelStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle

	FormatCurrency = tuistyles.FormatCurrency
)
