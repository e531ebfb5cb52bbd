package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// paletteTokens defines the semantic color roles for terminal output.
type paletteTokens struct {
	Text      string
	TextMuted string
	Success   string
	Warning   string
	Error     string
	Info      string
}

var defaultPalette = paletteTokens{
	Text:      "#E6EDF3",
	TextMuted: "#8B9AAE",
	Success:   "#3FB950",
	Warning:   "#D29922",
	Error:     "#F85149",
	Info:      "#58A6FF",
}

type outputStyles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

func buildStyles(tokens paletteTokens) outputStyles {
	return outputStyles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
	}
}

var styles = buildStyles(defaultPalette)

func paint(style lipgloss.Style, text string) string {
	if !colorEnabled() {
		return text
	}
	return style.Render(text)
}

// parseColor accepts hex colors (#rgb, #rrggbb) as used in theme files.
func parseColor(value string) (colorful.Color, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		return colorful.Color{}, false
	}
	if len(value) == 4 {
		value = "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// labelColor picks black or white text for legibility on background c.
func labelColor(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

// swatch renders value on its own color when it is a hex color.
func swatch(value string) string {
	c, ok := parseColor(value)
	if !ok || !colorEnabled() {
		return value
	}
	hex := c.Hex()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(labelColor(c))).
		Render(" " + value + " ")
}
