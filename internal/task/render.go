package task

import (
	"strconv"

	"github.com/mark3labs/kaam/internal/theme"
)

// Renderer produces the numbered, human-facing listing format.
type Renderer struct {
	styles *theme.Styles
}

// NewRenderer returns a renderer using the given styles.
func NewRenderer(styles *theme.Styles) *Renderer {
	return &Renderer{styles: styles}
}

// EncodeDisplay renders "<ordinal>: <text>\n". Done entries get a bold
// ordinal and struck-through text; pending entries are left plain.
func (r *Renderer) EncodeDisplay(e Entry, ordinal int) string {
	num := strconv.Itoa(ordinal)
	if !e.Done {
		return num + ": " + e.Text + "\n"
	}
	return r.styles.DoneOrdinal.Render(num) + ": " + r.styles.DoneText.Render(e.Text) + "\n"
}
