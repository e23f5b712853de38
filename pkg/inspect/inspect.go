// Package inspect renders arbitrary Go values as indented, colorized text
// for debugging output.
//
// A value is classified into one of a closed set of kinds (see Kind), and
// the formatter for that kind emits layout through a doc.Builder. Nested
// values are rendered through the same dispatch, so styling, the generic
// object fallback and cycle detection apply at every depth.
//
//	out, err := inspect.Render(map[string]any{"alpha": "foo", "beta": 2})
//
// Types control their rendering by implementing Inspector (verbatim text),
// Attributer (declared attributes), fmt.Stringer or error.
package inspect

import (
	"io"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/dkoosis/peek/pkg/palette"
)

// DefaultIndent is the indent width used when none is configured.
const DefaultIndent = 2

// Config holds everything a Printer needs. It is copied into the Printer
// and never changed afterwards.
type Config struct {
	// Indent is the number of spaces each nesting level adds.
	Indent int
	// Palette maps categories to style rules.
	Palette palette.Palette
	// Styler applies rules to text. Nil leaves text unstyled.
	Styler *palette.Styler
	// MaxDepth caps container nesting. Zero means unlimited.
	MaxDepth int
	// Logger receives debug events about fallback selection, cycles and
	// depth cut-offs.
	Logger zerolog.Logger
}

// DefaultConfig returns the configuration of the package-level printer:
// indent 2, the default palette, ANSI styling and a no-op logger.
func DefaultConfig() Config {
	return Config{
		Indent:  DefaultIndent,
		Palette: palette.Default(),
		Styler:  palette.NewStyler(termenv.ANSI),
		Logger:  zerolog.Nop(),
	}
}

func (c Config) normalize() Config {
	if c.Indent < 0 {
		c.Indent = 0
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
	return c
}

// Option adjusts a Config.
type Option func(*Config)

// WithIndent sets the indent width. Negative widths are clamped to zero.
func WithIndent(n int) Option {
	return func(c *Config) { c.Indent = n }
}

// WithPalette sets the category table.
func WithPalette(p palette.Palette) Option {
	return func(c *Config) { c.Palette = p }
}

// WithStyler sets the styling primitive.
func WithStyler(s *palette.Styler) Option {
	return func(c *Config) { c.Styler = s }
}

// WithMaxDepth caps container nesting; deeper containers render as
// sentinels.
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Printer renders values with a fixed configuration. It is safe for
// concurrent use.
type Printer struct {
	cfg Config
}

// New returns a printer built from DefaultConfig and opts.
func New(opts ...Option) *Printer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig returns a printer for cfg.
func NewWithConfig(cfg Config) *Printer {
	return &Printer{cfg: cfg.normalize()}
}

// Config returns a copy of the printer's configuration.
func (p *Printer) Config() Config {
	return p.cfg
}

// Render returns the text for v. When a nested value fails, the text is
// still returned with a placeholder at the failing position, together with
// the failures as *PathError values.
func (p *Printer) Render(v any) (string, error) {
	s := newState(&p.cfg)
	s.render(v)
	return s.b.String(), joinErrors(s.errs)
}

// MustRender is like Render but panics on failure.
func (p *Printer) MustRender(v any) string {
	out, err := p.Render(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Fprint writes the text for v to w. Partial text is written even when
// rendering fails.
func (p *Printer) Fprint(w io.Writer, v any) error {
	out, err := p.Render(v)
	if _, werr := io.WriteString(w, out); werr != nil {
		return werr
	}
	return err
}

var std = New()

// Render renders v with the default configuration.
func Render(v any) (string, error) {
	return std.Render(v)
}

// MustRender renders v with the default configuration and panics on
// failure.
func MustRender(v any) string {
	return std.MustRender(v)
}

// Fprint writes v rendered with the default configuration to w.
func Fprint(w io.Writer, v any) error {
	return std.Fprint(w, v)
}
