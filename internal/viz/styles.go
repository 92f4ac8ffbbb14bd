package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view and plots.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetro, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Cloth   lipgloss.Style
	Ring    lipgloss.Style
	Pinned  lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Hint    lipgloss.Style
	Panel   lipgloss.Style
	Graph   lipgloss.Style
	Bad     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Cloth:   lipgloss.NewStyle().Foreground(t.Secondary),
		Ring:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Pinned:  lipgloss.NewStyle().Foreground(t.Accent),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(42),
		Graph: lipgloss.NewStyle().Foreground(t.Success).Padding(1, 0),
		Bad:   lipgloss.NewStyle().Foreground(t.Error),
	}
}
