package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Positive lipgloss.Color // histogram area where the push does positive work
	Negative lipgloss.Color
	Cart     lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:     "classic",
		Primary:  lipgloss.Color("#0000ff"),
		Positive: lipgloss.Color("#00ffff"), // cyan
		Negative: lipgloss.Color("#ffff00"), // yellow
		Cart:     lipgloss.Color("#c0c0c0"), // silver
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#808080"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Positive: lipgloss.Color("#88ff88"),
		Negative: lipgloss.Color("#00cc00"),
		Cart:     lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Positive: lipgloss.Color("#feca57"),
		Negative: lipgloss.Color("#ff9ff3"),
		Cart:     lipgloss.Color("#fff5f5"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
