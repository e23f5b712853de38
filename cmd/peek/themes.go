package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/peek/pkg/palette"
)

// samples pairs each category with a short example of the text it styles.
var samples = []struct {
	category palette.Category
	text     string
}{
	{palette.Integer, "42"},
	{palette.Float, "3.14"},
	{palette.Numeric, "3+2i"},
	{palette.Bignum, "100000000000000000000"},
	{palette.Rational, "3/4 ≈ 0.75"},
	{palette.String, `"text"`},
	{palette.Symbol, ":alpha"},
	{palette.True, "true"},
	{palette.False, "false"},
	{palette.Nil, "nil"},
	{palette.Date, "Mon Oct 24 00:00:00 2011"},
	{palette.Time, "Mon Oct 24 13:05:09 2011"},
	{palette.Class, "Person"},
	{palette.Module, "Reader"},
	{palette.Method, "Repeat"},
	{palette.Args, "(arg1, arg2)"},
	{palette.Exception, "PathError: open peek.yaml"},
	{palette.Field, "first_name"},
}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes with a preview of each category",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.emit(cmd.Context(), "themes", a.themePreview())
		},
	}
}

func (a *app) themePreview() string {
	themes := make(map[string]palette.Palette)
	for _, name := range palette.ThemeNames() {
		themes[name] = palette.ThemeByName(name)
	}
	maps.Copy(themes, a.cfg.Themes)

	styler := palette.NewStyler(a.cfg.Profile)
	title := cases.Title(language.English)

	var b strings.Builder
	for i, name := range slices.Sorted(maps.Keys(themes)) {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := ""
		if name == a.cfg.ThemeName {
			marker = " *"
		}
		fmt.Fprintf(&b, "%s (%s)%s\n", title.String(name), name, marker)
		p := themes[name]
		for _, s := range samples {
			fmt.Fprintf(&b, "  %-10s %s\n", s.category, styler.Apply(p.Resolve(s.category), s.text))
		}
	}
	return b.String()
}
