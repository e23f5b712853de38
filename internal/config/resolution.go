package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"

	"github.com/dkoosis/peek/internal/logging"
	"github.com/dkoosis/peek/pkg/inspect"
	"github.com/dkoosis/peek/pkg/palette"
)

// Config source identifiers.
const (
	sourceCLI     = "cli"
	sourceEnv     = "env"
	sourceFile    = "file"
	sourceDefault = "default"
)

// ResolvedConfig holds the final resolved configuration after applying
// all precedence rules. This is the single source of truth for configuration.
type ResolvedConfig struct {
	Indent    int
	ThemeName string
	Palette   palette.Palette
	NoColor   bool
	Profile   termenv.Profile
	MaxDepth  int
	Debug     bool

	// Themes holds the custom themes defined in the config file.
	Themes map[string]palette.Palette

	// Source tracking for debugging
	IndentSource  string
	ThemeSource   string
	NoColorSource string
	ColorsSource  string
	ProfileSource string
	DebugSource   string
}

// ResolveConfig applies all configuration sources in priority order:
// CLI flags > Environment variables > Config file > Defaults.
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	return resolve(cliFlags, LoadConfig())
}

func resolve(cliFlags CliFlags, fileCfg *AppConfig) (*ResolvedConfig, error) {
	logger := logging.Get("config")
	if fileCfg == nil {
		fileCfg = &AppConfig{}
	}

	resolved := &ResolvedConfig{
		Indent:        inspect.DefaultIndent,
		ThemeName:     palette.DefaultThemeName,
		Profile:       termenv.ANSI,
		IndentSource:  sourceDefault,
		ThemeSource:   sourceDefault,
		NoColorSource: sourceDefault,
		ColorsSource:  sourceDefault,
		ProfileSource: sourceDefault,
		DebugSource:   sourceDefault,
	}

	// Indent
	switch {
	case cliFlags.IndentSet:
		resolved.Indent = cliFlags.Indent
		resolved.IndentSource = sourceCLI
	case os.Getenv("PEEK_INDENT") != "":
		n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PEEK_INDENT")))
		if err != nil {
			return nil, fmt.Errorf("PEEK_INDENT: %w", err)
		}
		resolved.Indent = n
		resolved.IndentSource = sourceEnv
	case fileCfg.Indent != nil:
		resolved.Indent = *fileCfg.Indent
		resolved.IndentSource = sourceFile
	}

	// Max depth has no environment variable.
	switch {
	case cliFlags.MaxDepthSet:
		resolved.MaxDepth = cliFlags.MaxDepth
	case fileCfg.MaxDepth != 0:
		resolved.MaxDepth = fileCfg.MaxDepth
	}

	// Debug
	switch {
	case cliFlags.DebugSet:
		resolved.Debug = cliFlags.Debug
		resolved.DebugSource = sourceCLI
	case os.Getenv("PEEK_DEBUG") != "":
		resolved.Debug = true
		resolved.DebugSource = sourceEnv
	case fileCfg.Debug:
		resolved.Debug = true
		resolved.DebugSource = sourceFile
	}

	// NoColor
	if cliFlags.NoColorSet {
		resolved.NoColor = cliFlags.NoColor
		resolved.NoColorSource = sourceCLI
	} else if v := getEnvBool("PEEK_NO_COLOR"); v != nil {
		resolved.NoColor = *v
		resolved.NoColorSource = sourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		// Any non-empty NO_COLOR disables color (no-color.org).
		resolved.NoColor = true
		resolved.NoColorSource = sourceEnv
	} else if fileCfg.NoColor {
		resolved.NoColor = true
		resolved.NoColorSource = sourceFile
	}

	// Theme
	if len(fileCfg.Themes) > 0 {
		resolved.Themes = make(map[string]palette.Palette, len(fileCfg.Themes))
		for name, table := range fileCfg.Themes {
			resolved.Themes[name] = palette.FromTable(table)
		}
	}
	themeName, themeSource := "", ""
	switch {
	case cliFlags.ThemeName != "":
		themeName, themeSource = cliFlags.ThemeName, sourceCLI
	case os.Getenv("PEEK_THEME") != "":
		themeName, themeSource = os.Getenv("PEEK_THEME"), sourceEnv
	case fileCfg.Theme != "":
		themeName, themeSource = fileCfg.Theme, sourceFile
	}
	if themeName != "" {
		resolved.ThemeName = themeName
		resolved.ThemeSource = themeSource
	}
	p, ok := resolveTheme(resolved.ThemeName, fileCfg)
	if !ok {
		logger.Warn().Str("theme", resolved.ThemeName).Msg("Unknown theme, using default")
		resolved.ThemeName = palette.DefaultThemeName
		resolved.ThemeSource = sourceDefault
	}
	if len(fileCfg.Palette) > 0 {
		p = p.Merge(palette.FromTable(fileCfg.Palette))
	}

	// Color spec overrides are layered on top of the theme.
	spec, specSource := "", ""
	switch {
	case cliFlags.Colors != "":
		spec, specSource = cliFlags.Colors, sourceCLI
	case os.Getenv("PEEK_COLORS") != "":
		spec, specSource = os.Getenv("PEEK_COLORS"), sourceEnv
	case fileCfg.Colors != "":
		spec, specSource = fileCfg.Colors, sourceFile
	}
	if spec != "" {
		overrides, err := palette.ParseSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("%s colors: %w", specSource, err)
		}
		p = p.Merge(overrides)
		resolved.ColorsSource = specSource
	}
	resolved.Palette = p

	// Color profile
	profileName, profileSource := "", ""
	switch {
	case cliFlags.ColorProfile != "":
		profileName, profileSource = cliFlags.ColorProfile, sourceCLI
	case os.Getenv("PEEK_COLOR_PROFILE") != "":
		profileName, profileSource = os.Getenv("PEEK_COLOR_PROFILE"), sourceEnv
	case fileCfg.ColorProfile != "":
		profileName, profileSource = fileCfg.ColorProfile, sourceFile
	}
	if profileName != "" {
		profile, err := ParseProfile(profileName)
		if err != nil {
			return nil, fmt.Errorf("%s color profile: %w", profileSource, err)
		}
		resolved.Profile = profile
		resolved.ProfileSource = profileSource
	}
	if resolved.NoColor {
		resolved.Profile = termenv.Ascii
		resolved.ProfileSource = resolved.NoColorSource
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("indent", resolved.Indent).
		Str("indent_source", resolved.IndentSource).
		Str("theme", resolved.ThemeName).
		Str("theme_source", resolved.ThemeSource).
		Bool("no_color", resolved.NoColor).
		Str("no_color_source", resolved.NoColorSource).
		Str("colors_source", resolved.ColorsSource).
		Str("profile_source", resolved.ProfileSource).
		Msg("Resolved configuration")

	return resolved, nil
}

// resolveTheme looks up name among the custom themes of the config file,
// then the built-in themes. It returns the default palette and false when
// neither has it.
func resolveTheme(name string, fileCfg *AppConfig) (palette.Palette, bool) {
	if table, ok := fileCfg.Themes[name]; ok {
		return palette.FromTable(table), true
	}
	if p, ok := palette.Theme(name); ok {
		return p, true
	}
	return palette.Default(), false
}

// ParseProfile converts a color profile name to a termenv profile.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii", "none", "mono":
		return termenv.Ascii, nil
	case "ansi", "16":
		return termenv.ANSI, nil
	case "ansi256", "256":
		return termenv.ANSI256, nil
	case "truecolor", "true", "24bit":
		return termenv.TrueColor, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color profile %q (want ascii, ansi, ansi256 or truecolor)", name)
}

// getEnvBool checks environment variables for boolean values.
// Returns nil if not set, pointer to bool if set.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		lower := strings.ToLower(val)
		b := lower == "true" || lower == "1" || lower == "yes"
		return &b
	}
	return nil
}

// validateResolvedConfig checks that resolved values are usable.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	var errs []error
	if cfg.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent must not be negative, got %d", cfg.Indent))
	}
	if cfg.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", cfg.MaxDepth))
	}
	return errors.Join(errs...)
}

// ColorExplicit reports whether color output was configured by any source
// other than the defaults.
func (c *ResolvedConfig) ColorExplicit() bool {
	return c.NoColorSource != sourceDefault || c.ProfileSource != sourceDefault
}

// Options converts the resolved configuration to printer options.
func (c *ResolvedConfig) Options() []inspect.Option {
	return []inspect.Option{
		inspect.WithIndent(c.Indent),
		inspect.WithPalette(c.Palette),
		inspect.WithStyler(palette.NewStyler(c.Profile)),
		inspect.WithMaxDepth(c.MaxDepth),
		inspect.WithLogger(log.Logger),
	}
}

// Printer builds a printer from the resolved configuration.
func (c *ResolvedConfig) Printer() *inspect.Printer {
	return inspect.New(c.Options()...)
}
