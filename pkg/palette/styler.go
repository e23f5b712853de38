package palette

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ansiColors maps color names to the 16-color ANSI palette indexes.
var ansiColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
	"gray":    8,
	"grey":    8,
}

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Styler applies rules to text. It owns a lipgloss renderer with a fixed
// color profile, so output never depends on the terminal the process runs in.
// A nil *Styler leaves text unchanged.
type Styler struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile
}

// NewStyler returns a styler that emits escape sequences for profile.
func NewStyler(profile termenv.Profile) *Styler {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Styler{renderer: r, profile: profile}
}

// Plain returns a styler that never emits escape sequences.
func Plain() *Styler {
	return NewStyler(termenv.Ascii)
}

// Profile returns the color profile in use.
func (s *Styler) Profile() termenv.Profile {
	if s == nil {
		return termenv.Ascii
	}
	return s.profile
}

// Style composes rule into a single lipgloss style. Attributes apply in
// order, so a later color replaces an earlier one. Unknown attributes are
// ignored.
func (s *Styler) Style(rule Rule) lipgloss.Style {
	var st lipgloss.Style
	if s == nil {
		st = lipgloss.NewStyle()
	} else {
		st = s.renderer.NewStyle()
	}
	st = st.TabWidth(lipgloss.NoTabConversion)
	for _, attr := range rule {
		st = applyAttribute(st, attr)
	}
	return st
}

// Apply wraps text in the markup for rule. Each line is styled on its own
// so multi-line text is never padded to a common width.
func (s *Styler) Apply(rule Rule, text string) string {
	if s == nil || len(rule) == 0 || text == "" || s.profile == termenv.Ascii {
		return text
	}
	st := s.Style(rule)
	if !strings.Contains(text, "\n") {
		return st.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// ValidAttribute reports whether attr is part of the attribute vocabulary.
func ValidAttribute(attr string) bool {
	a := normalizeAttribute(attr)
	if _, ok := effects[a]; ok {
		return true
	}
	a = strings.TrimPrefix(a, "on_")
	_, ok := colorValue(a)
	return ok
}

var effects = map[string]func(lipgloss.Style) lipgloss.Style{
	"bold":          func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) },
	"faint":         func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) },
	"italic":        func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) },
	"underline":     func(s lipgloss.Style) lipgloss.Style { return s.Underline(true) },
	"blink":         func(s lipgloss.Style) lipgloss.Style { return s.Blink(true) },
	"reverse":       func(s lipgloss.Style) lipgloss.Style { return s.Reverse(true) },
	"strikethrough": func(s lipgloss.Style) lipgloss.Style { return s.Strikethrough(true) },
}

func normalizeAttribute(attr string) string {
	a := strings.ToLower(strings.TrimSpace(attr))
	return strings.ReplaceAll(a, "-", "_")
}

func applyAttribute(st lipgloss.Style, attr string) lipgloss.Style {
	a := normalizeAttribute(attr)
	if fn, ok := effects[a]; ok {
		return fn(st)
	}
	background := false
	if rest, ok := strings.CutPrefix(a, "on_"); ok {
		background = true
		a = rest
	}
	c, ok := colorValue(a)
	if !ok {
		return st
	}
	if background {
		return st.Background(c)
	}
	return st.Foreground(c)
}

// colorValue converts a color attribute to a lipgloss color: a name from
// the ANSI table (optionally "bright_"), an ANSI-256 index, or a hex value.
func colorValue(name string) (lipgloss.Color, bool) {
	if n, ok := ansiColors[name]; ok {
		return lipgloss.Color(strconv.Itoa(n)), true
	}
	if base, ok := strings.CutPrefix(name, "bright_"); ok {
		if n, ok := ansiColors[base]; ok && n < 8 {
			return lipgloss.Color(strconv.Itoa(n + 8)), true
		}
		return "", false
	}
	if hexColor.MatchString(name) {
		return lipgloss.Color(name), true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(name), true
	}
	return "", false
}
