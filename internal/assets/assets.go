// Package assets holds the embedded stylesheets shipped with the service.
package assets

import (
	"embed"
	"sort"
	"strings"
)

//go:embed themes/*.css
var themeFS embed.FS

// DefaultTheme is used when no theme is named.
const DefaultTheme = "default"

// ThemeCSS returns the stylesheet for a named theme. The lookup is
// case-insensitive; ok is false for unknown names.
func ThemeCSS(name string) (css string, ok bool) {
	if name == "" {
		name = DefaultTheme
	}
	data, err := themeFS.ReadFile("themes/" + strings.ToLower(name) + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Themes lists the available theme names, sorted.
func Themes() []string {
	entries, err := themeFS.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}
