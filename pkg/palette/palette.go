// Package palette maps semantic value categories to style rules.
//
// A Palette is an immutable table from Category to Rule. Rules are ordered
// lists of attribute names ("blue", "bold", "on_red", "214", "#ff8800").
// Categories missing from the table resolve to the empty rule, which leaves
// text unstyled. Styling itself is done by a Styler, which renders rules
// through lipgloss with an explicit color profile.
package palette

import (
	"maps"
	"slices"
)

// Category is a semantic tag for a rendered value.
type Category string

// Categories used by the inspect formatters.
const (
	Numeric   Category = "numeric"
	Integer   Category = "integer"
	Float     Category = "float"
	Bignum    Category = "bignum"
	Rational  Category = "rational"
	String    Category = "string"
	Symbol    Category = "symbol"
	True      Category = "true"
	False     Category = "false"
	Nil       Category = "nil"
	Date      Category = "date"
	Time      Category = "time"
	Class     Category = "class"
	Module    Category = "module"
	Method    Category = "method"
	Exception Category = "exception"
	Field     Category = "field"

	// Args styles method parameter lists. It has no default rule.
	Args Category = "args"
)

// Rule is an ordered sequence of style attributes.
type Rule []string

// Palette is an immutable category to rule table. The zero value is an
// empty palette.
type Palette struct {
	rules map[Category]Rule
}

// New returns a palette holding a copy of rules.
func New(rules map[Category]Rule) Palette {
	p := Palette{rules: make(map[Category]Rule, len(rules))}
	for c, r := range rules {
		p.rules[c] = slices.Clone(r)
	}
	return p
}

// Empty returns a palette with no entries.
func Empty() Palette {
	return Palette{}
}

// Default returns the standard table.
func Default() Palette {
	return New(map[Category]Rule{
		Numeric:   {"blue", "bold"},
		Integer:   {"blue", "bold"},
		Float:     {"blue", "bold"},
		Bignum:    {"blue"},
		Rational:  {"blue"},
		True:      {"green", "bold"},
		False:     {"red", "bold"},
		Nil:       {"red"},
		Symbol:    {"cyan", "bold"},
		String:    {"green"},
		Date:      {"black"},
		Time:      {"black", "bold"},
		Class:     {"yellow", "bold"},
		Module:    {"yellow"},
		Method:    {"magenta"},
		Exception: {"red"},
		Field:     {"cyan"},
	})
}

// Resolve returns the rule for c, or nil when c has no entry.
func (p Palette) Resolve(c Category) Rule {
	return slices.Clone(p.rules[c])
}

// Has reports whether c has an entry.
func (p Palette) Has(c Category) bool {
	_, ok := p.rules[c]
	return ok
}

// Len returns the number of entries.
func (p Palette) Len() int {
	return len(p.rules)
}

// Categories returns the categories present, sorted.
func (p Palette) Categories() []Category {
	return slices.Sorted(maps.Keys(p.rules))
}

// With returns a copy of p where c maps to r.
func (p Palette) With(c Category, r Rule) Palette {
	out := New(p.rules)
	out.rules[c] = slices.Clone(r)
	return out
}

// Without returns a copy of p with c removed.
func (p Palette) Without(c Category) Palette {
	out := New(p.rules)
	delete(out.rules, c)
	return out
}

// Merge returns a copy of p overlaid with every entry of other. An empty
// rule in other still overrides, which is how a category is cleared.
func (p Palette) Merge(other Palette) Palette {
	out := New(p.rules)
	for c, r := range other.rules {
		out.rules[c] = slices.Clone(r)
	}
	return out
}

// Table returns the entries as plain strings, suitable for serialization.
func (p Palette) Table() map[string][]string {
	out := make(map[string][]string, len(p.rules))
	for c, r := range p.rules {
		out[string(c)] = slices.Clone([]string(r))
	}
	return out
}

// FromTable builds a palette from plain strings, the shape config files use.
func FromTable(table map[string][]string) Palette {
	rules := make(map[Category]Rule, len(table))
	for c, r := range table {
		rules[Category(c)] = Rule(r)
	}
	return New(rules)
}
