package render

import (
	"fmt"
	"html/template"
)

// DefaultTheme is used for empty or unknown theme names.
const DefaultTheme = "default"

// Theme is a named colour scheme.
type Theme struct {
	Name       string
	Background template.CSS
	Text       template.CSS
	Link       template.CSS
}

// Themes lists the selectable themes in picker order.
var Themes = []Theme{
	{Name: "default", Background: "#e5e5e5", Text: "#000000", Link: "#000000"},
	{Name: "dark", Background: "#1e1e1e", Text: "#808080", Link: "#808080"},
	{Name: "green", Background: "#e5f5e5", Text: "#003300", Link: "#006600"},
	{Name: "yellow", Background: "#fffde7", Text: "#333333", Link: "#885500"},
	{Name: "green2", Background: "#d4edc9", Text: "#333333", Link: "#006600"},
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// IsTheme reports whether name is a known theme.
func IsTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Style is the page-level stylesheet for the theme.
func (t Theme) Style() template.CSS {
	return template.CSS(fmt.Sprintf(
		"body { background-color: %s; color: %s; font-family: SimHei; } a { color: %s; }",
		t.Background, t.Text, t.Link))
}

// PopupBackground is the translucent background of the theme picker.
func (t Theme) PopupBackground() template.CSS {
	if t.Name == "dark" {
		return "rgba(30, 30, 30, 0.9)"
	}
	return "rgba(255, 255, 255, 0.9)"
}
