// Package config handles configuration loading and merging for peek.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--indent, --theme, --no-color, --colors, --max-depth, --color-profile)
//  2. Environment variables (PEEK_INDENT, PEEK_THEME, PEEK_NO_COLOR, NO_COLOR, PEEK_COLORS, PEEK_COLOR_PROFILE)
//  3. Config file (.peek.yaml or .peek.toml in the working directory, then
//     peek/config.yaml or peek/config.toml under the XDG config directories)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Palette Layering
//
// The palette is built in layers: the selected theme (built-in or defined in
// the config file), then the file's palette table, then the color spec from
// --colors, PEEK_COLORS or the file's colors key. Disabling color replaces
// the styler with a plain one but leaves the palette intact.
//
// # Environment Variables
//
//   - PEEK_NO_COLOR: Set to "true", "1" or "yes" to disable colors
//   - NO_COLOR: Any non-empty value disables colors
//   - PEEK_THEME: Name of the theme to use
//   - PEEK_INDENT: Indent width
//   - PEEK_COLORS: Color spec such as "numeric=blue+bold:string=green"
//   - PEEK_COLOR_PROFILE: ascii, ansi, ansi256 or truecolor
//   - PEEK_DEBUG: Set to any non-empty value to enable debug output
package config
