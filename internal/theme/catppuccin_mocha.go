package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name: "catppuccin-mocha",

		Primary: "#cba6f7", // Mauve
		Success: "#a6e3a1", // Green
		Error:   "#f38ba8", // Red
		FgMuted: "#6c7086", // Overlay0
	}
}
