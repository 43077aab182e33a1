// Package theme holds the palette and lipgloss styles used for terminal output.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors kaam renders with.
type Theme struct {
	Name string

	Primary string // lipgloss.Color is a string type
	Success string
	Error   string
	FgMuted string

	styles     *Styles
	stylesOnce sync.Once
}

// S returns the styles for this theme, built on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	return &Styles{
		DoneOrdinal: lipgloss.NewStyle().Bold(true),
		DoneText: lipgloss.NewStyle().
			Strikethrough(true).
			TabWidth(lipgloss.NoTabConversion),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
	}
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the process-wide theme.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}
