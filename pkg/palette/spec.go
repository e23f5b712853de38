package palette

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Color specs use the GREP_COLORS style: colon separated entries of
// category=attr+attr. An entry with no attributes clears the category.
//
//	numeric=blue+bold:string=green:nil=
var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Hex", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[=:+]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	})

	specParser = participle.MustBuild[colorSpec](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)
)

type colorSpec struct {
	Entries []*specEntry `parser:"( @@ | ':' )*"`
}

type specEntry struct {
	Pos      lexer.Position
	Category string   `parser:"@Ident '='"`
	Attrs    []string `parser:"( @( Ident | Number | Hex ) ( '+' @( Ident | Number | Hex ) )* )?"`
}

// ParseSpec parses a color spec into a palette holding only the entries it
// names. Merge the result over a base palette to apply it.
func ParseSpec(spec string) (Palette, error) {
	ast, err := specParser.ParseString("", spec)
	if err != nil {
		return Palette{}, fmt.Errorf("parse color spec: %w", err)
	}
	rules := make(map[Category]Rule, len(ast.Entries))
	for _, e := range ast.Entries {
		for _, a := range e.Attrs {
			if !ValidAttribute(a) {
				return Palette{}, fmt.Errorf("parse color spec: %d:%d: unknown attribute %q for %s",
					e.Pos.Line, e.Pos.Column, a, e.Category)
			}
		}
		rules[Category(e.Category)] = Rule(e.Attrs)
	}
	return New(rules), nil
}
