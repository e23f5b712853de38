package palette

import (
	"maps"
	"slices"
)

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

var themes = map[string]func() Palette{
	DefaultThemeName: Default,
	"solarized":      Solarized,
	"mono":           Empty,
}

// Solarized returns a 256-color table inspired by the Solarized palette.
func Solarized() Palette {
	return New(map[Category]Rule{
		Numeric:   {"33"},
		Integer:   {"33"},
		Float:     {"33"},
		Bignum:    {"61"},
		Rational:  {"61"},
		True:      {"64", "bold"},
		False:     {"160", "bold"},
		Nil:       {"166"},
		Symbol:    {"37", "bold"},
		String:    {"64"},
		Date:      {"245"},
		Time:      {"245", "bold"},
		Class:     {"136", "bold"},
		Module:    {"136"},
		Method:    {"125"},
		Exception: {"160"},
		Field:     {"37"},
	})
}

// Theme returns the named palette.
func Theme(name string) (Palette, bool) {
	fn, ok := themes[name]
	if !ok {
		return Palette{}, false
	}
	return fn(), true
}

// ThemeByName returns the named palette, defaulting to Default.
func ThemeByName(name string) Palette {
	if p, ok := Theme(name); ok {
		return p
	}
	return Default()
}

// ThemeNames lists the built-in themes, sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}
