package palette

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryCategory(t *testing.T) {
	p := Default()
	for _, c := range []Category{
		Numeric, Integer, Float, Bignum, Rational, String, Symbol, True, False,
		Nil, Date, Time, Class, Module, Method, Exception, Field,
	} {
		assert.True(t, p.Has(c), "default palette missing %s", c)
		assert.NotEmpty(t, p.Resolve(c), "default rule for %s is empty", c)
	}
}

func TestPalette_ResolveUnknownIsEmpty(t *testing.T) {
	p := Default()
	assert.Empty(t, p.Resolve("no-such-category"))
	assert.Empty(t, Empty().Resolve(String))
	assert.Empty(t, Palette{}.Resolve(String))
}

func TestPalette_ResolveIsIdempotent(t *testing.T) {
	p := Default()
	first := p.Resolve(Symbol)
	second := p.Resolve(Symbol)
	assert.Equal(t, first, second)

	first[0] = "mutated"
	assert.Equal(t, Rule{"cyan", "bold"}, p.Resolve(Symbol), "resolved rules must not alias the table")
}

func TestPalette_CopyOnWrite(t *testing.T) {
	base := Default()
	changed := base.With(String, Rule{"magenta"})
	removed := base.Without(Nil)

	assert.Equal(t, Rule{"green"}, base.Resolve(String))
	assert.Equal(t, Rule{"magenta"}, changed.Resolve(String))
	assert.True(t, base.Has(Nil))
	assert.False(t, removed.Has(Nil))
	assert.Equal(t, base.Len()-1, removed.Len())
}

func TestPalette_MergeOverridesAndClears(t *testing.T) {
	overlay := New(map[Category]Rule{
		String: {"red"},
		Nil:    {},
		"args": {"white"},
	})
	merged := Default().Merge(overlay)

	assert.Equal(t, Rule{"red"}, merged.Resolve(String))
	assert.True(t, merged.Has(Nil))
	assert.Empty(t, merged.Resolve(Nil))
	assert.Equal(t, Rule{"white"}, merged.Resolve("args"))
	assert.Equal(t, Rule{"blue", "bold"}, merged.Resolve(Numeric))
}

func TestPalette_TableRoundTrip(t *testing.T) {
	p := FromTable(map[string][]string{"string": {"green"}, "nil": {"red", "bold"}})
	assert.Equal(t, []Category{Nil, String}, p.Categories())
	assert.Equal(t, map[string][]string{"string": {"green"}, "nil": {"red", "bold"}}, p.Table())
}

func TestStyler_Apply(t *testing.T) {
	s := NewStyler(termenv.ANSI)

	t.Run("empty rule is identity", func(t *testing.T) {
		assert.Equal(t, "plain", s.Apply(nil, "plain"))
	})

	t.Run("styled text carries escapes and strips back", func(t *testing.T) {
		out := s.Apply(Rule{"blue", "bold"}, "42")
		assert.Contains(t, out, "\x1b[")
		assert.Equal(t, "42", ansi.Strip(out))
	})

	t.Run("reapplying wraps again", func(t *testing.T) {
		once := s.Apply(Rule{"red"}, "x")
		twice := s.Apply(Rule{"red"}, once)
		assert.NotEqual(t, once, twice)
		assert.Equal(t, "x", ansi.Strip(twice))
	})

	t.Run("multi-line text is not padded", func(t *testing.T) {
		out := s.Apply(Rule{"green"}, "a\nlonger line")
		assert.Equal(t, "a\nlonger line", ansi.Strip(out))
	})

	t.Run("tabs are preserved", func(t *testing.T) {
		out := s.Apply(Rule{"green"}, "a\tb")
		assert.Equal(t, "a\tb", ansi.Strip(out))
	})

	t.Run("unknown attributes are ignored", func(t *testing.T) {
		out := s.Apply(Rule{"sparkly"}, "x")
		assert.Equal(t, "x", ansi.Strip(out))
	})
}

func TestStyler_AsciiAndNilAreIdentity(t *testing.T) {
	assert.Equal(t, "x", Plain().Apply(Rule{"red", "bold"}, "x"))
	var s *Styler
	assert.Equal(t, "x", s.Apply(Rule{"red"}, "x"))
	assert.Equal(t, termenv.Ascii, s.Profile())
}

func TestValidAttribute(t *testing.T) {
	tests := []struct {
		attr string
		want bool
	}{
		{"bold", true},
		{"BOLD", true},
		{"blue", true},
		{"bright_blue", true},
		{"bright-cyan", true},
		{"on_red", true},
		{"on_bright_white", true},
		{"214", true},
		{"256", false},
		{"#ff8800", true},
		{"#f80", true},
		{"#ff88", false},
		{"bright_gray", false},
		{"sparkly", false},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAttribute(tt.attr))
		})
	}
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"default", "mono", "solarized"}, ThemeNames())

	mono, ok := Theme("mono")
	require.True(t, ok)
	assert.Zero(t, mono.Len())

	_, ok = Theme("nope")
	assert.False(t, ok)
	assert.Equal(t, Default().Table(), ThemeByName("nope").Table())

	sol := ThemeByName("solarized")
	for _, rule := range sol.Table() {
		for _, a := range rule {
			assert.True(t, ValidAttribute(a), "solarized uses invalid attribute %q", a)
		}
	}
}

func TestParseSpec(t *testing.T) {
	t.Run("entries with attributes", func(t *testing.T) {
		p, err := ParseSpec("numeric=blue+bold:string=green:class=#ff8800+underline")
		require.NoError(t, err)
		assert.Equal(t, Rule{"blue", "bold"}, p.Resolve(Numeric))
		assert.Equal(t, Rule{"green"}, p.Resolve(String))
		assert.Equal(t, Rule{"#ff8800", "underline"}, p.Resolve(Class))
		assert.Equal(t, 3, p.Len())
	})

	t.Run("empty entry clears", func(t *testing.T) {
		p, err := ParseSpec("nil=:field=214")
		require.NoError(t, err)
		assert.True(t, p.Has(Nil))
		assert.Empty(t, p.Resolve(Nil))
		assert.Equal(t, Rule{"214"}, p.Resolve(Field))
	})

	t.Run("empty spec", func(t *testing.T) {
		p, err := ParseSpec("")
		require.NoError(t, err)
		assert.Zero(t, p.Len())
	})

	t.Run("stray separators are tolerated", func(t *testing.T) {
		p, err := ParseSpec(":string=green::")
		require.NoError(t, err)
		assert.Equal(t, Rule{"green"}, p.Resolve(String))
	})

	t.Run("unknown attribute reports position", func(t *testing.T) {
		_, err := ParseSpec("string=green:nil=sparkly")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown attribute "sparkly"`)
		assert.Contains(t, err.Error(), "1:14")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := ParseSpec("string green")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "parse color spec:"))
	})
}
