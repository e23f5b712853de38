package main

import (
	"bytes"
	"io"
	"io/fs"
	"math/big"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkoosis/peek/pkg/inspect"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Render a sample value covering every kind of output",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := a.cfg.Printer().Render(demoValue())
			if err != nil {
				a.log.Warn().Err(err).Msg("Demo rendered with errors")
			}
			return a.emit(cmd.Context(), "demo", text+"\n")
		},
	}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Person renders as a record.
type Person struct {
	FirstName string `peek:"first_name"`
	LastName  string `peek:"last_name"`
}

// Cursor renders as a generic object.
type Cursor struct {
	Line   int
	Column int
	Path   []string
}

func demoValue() []any {
	return []any{
		1, 2, true, 3, false, 4, nil,
		big.NewRat(3, 4),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(50), nil),
		complex(3, 2),
		[]any{}, map[string]any{},
		inspect.OrderedMap{
			{Key: inspect.Symbol("alpha"), Value: "foo"},
			{Key: inspect.Symbol("beta"), Value: "bar"},
			{Key: inspect.Symbol("delta"), Value: "baz"},
			{Key: []int{1, 3}, Value: "some\nthing"},
		},
		inspect.NewDate(2011, time.October, 24),
		time.Now(),
		reflect.TypeFor[string](), reflect.TypeFor[[]any](),
		reflect.TypeFor[io.Reader](), reflect.TypeFor[time.Duration](),
		(*bytes.Buffer).WriteString, strings.Repeat, time.Now,
		new(big.Int).Add,
		Person{FirstName: "John", LastName: "Smith"},
		os.Stdout,
		&fs.PathError{Op: "open", Path: "peek.yaml", Err: fs.ErrNotExist},
		&Cursor{Line: 3, Column: 14, Path: []string{"server", "port"}},
	}
}
