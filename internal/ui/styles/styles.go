// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme mirrors config.ThemeConfig to avoid a circular import.
type Theme struct {
	Highlight string
	Subtle    string
	Error     string
	Success   string
}

// Color variables rebuilt by ApplyTheme. Other packages read these instead
// of hard-coding colors.
var (
	HighlightColor lipgloss.TerminalColor = lipgloss.Color("#874BFD")
	SubtleColor    lipgloss.TerminalColor = lipgloss.Color("#6C6C6C")
	ErrorColor     lipgloss.TerminalColor = lipgloss.Color("#FF5F87")
	SuccessColor   lipgloss.TerminalColor = lipgloss.Color("#59F8B5")
	WarnColor      lipgloss.TerminalColor = lipgloss.Color("#F2C14E")
)

// Shared styles.
var (
	TitleStyle       lipgloss.Style
	HeaderStyle      lipgloss.Style
	LabelStyle       lipgloss.Style
	FocusedStyle     lipgloss.Style
	SubtleStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	BannerStyle      lipgloss.Style
	FieldErrorStyle  lipgloss.Style
	StatusBarStyle   lipgloss.Style
	SelectedRowStyle lipgloss.Style
	BoxStyle         lipgloss.Style
)

func init() {
	rebuild()
}

// ApplyTheme overrides the color variables from the user's theme config and
// rebuilds every style. Invalid hex values are rejected.
func ApplyTheme(t Theme) error {
	set := func(target *lipgloss.TerminalColor, hex, name string) error {
		if hex == "" {
			return nil
		}
		if !isValidHexColor(hex) {
			return fmt.Errorf("invalid hex color for theme.%s: %s", name, hex)
		}
		*target = lipgloss.Color(hex)
		return nil
	}

	if err := set(&HighlightColor, t.Highlight, "highlight"); err != nil {
		return err
	}
	if err := set(&SubtleColor, t.Subtle, "subtle"); err != nil {
		return err
	}
	if err := set(&ErrorColor, t.Error, "error"); err != nil {
		return err
	}
	if err := set(&SuccessColor, t.Success, "success"); err != nil {
		return err
	}

	rebuild()
	return nil
}

func rebuild() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	LabelStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	FocusedStyle = lipgloss.NewStyle().Foreground(HighlightColor)
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	BannerStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ErrorColor).
		Padding(0, 1)
	FieldErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(HighlightColor).Bold(true)
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)
}

func isValidHexColor(s string) bool {
	if len(s) != 7 && len(s) != 4 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
