package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette of the histogram views. Primary draws the bars.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeThermal = Theme{
		Name:      "thermal",
		Primary:   lipgloss.Color("#ff8c1a"),
		Secondary: lipgloss.Color("#ffd23f"),
		Accent:    lipgloss.Color("#ff3b3b"),
		Muted:     lipgloss.Color("#6b4a3a"),
	}

	ThemePlasma = Theme{
		Name:      "plasma",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Muted:     lipgloss.Color("#666666"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeArgon = Theme{
		Name:      "argon",
		Primary:   lipgloss.Color("#7fb3ff"),
		Secondary: lipgloss.Color("#c9a7ff"),
		Accent:    lipgloss.Color("#ffd700"),
		Muted:     lipgloss.Color("#4a5a7a"),
	}

	CurrentTheme = ThemeThermal

	Themes = []Theme{
		ThemeThermal,
		ThemePlasma,
		ThemePhosphor,
		ThemeArgon,
	}
)

// GetTheme returns the named theme, or the first one for an unknown name.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
