package theme

import "charm.land/lipgloss/v2"

// Styles contains the pre-built styles for list output and help text.
// Pending entries are printed without any styling.
type Styles struct {
	DoneOrdinal lipgloss.Style
	DoneText    lipgloss.Style
	Help        lipgloss.Style
	Notice      lipgloss.Style
}
