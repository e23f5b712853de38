package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/peek/internal/config"
	"github.com/dkoosis/peek/internal/logging"
	"github.com/dkoosis/peek/internal/pager"
	"github.com/dkoosis/peek/internal/version"
	"github.com/dkoosis/peek/pkg/decode"
	"github.com/dkoosis/peek/pkg/inspect"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// maxParallelDecodes bounds how many inputs are read and decoded at once.
const maxParallelDecodes = 4

// app carries the streams and resolved settings shared by all commands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags     config.CliFlags
	verbosity int
	format    string
	usePager  bool

	cfg *config.ResolvedConfig
	log zerolog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "peek [file...]",
		Short: "Pretty-print structured data",
		Long: `peek decodes JSON, YAML, TOML or XML and prints it as an indented,
colorized tree. With no files, or when a file is "-", it reads stdin.`,
		Version:           version.String(),
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFiles(cmd.Context(), args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := root.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	pf.IntVar(&a.flags.Indent, "indent", inspect.DefaultIndent, "Spaces per nesting level")
	pf.StringVar(&a.flags.ThemeName, "theme", "", "Color theme (see 'peek themes')")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&a.flags.Colors, "colors", "", `Color overrides, e.g. "numeric=blue+bold:string=green"`)
	pf.IntVar(&a.flags.MaxDepth, "max-depth", 0, "Maximum nesting depth to render (0 = unlimited)")
	pf.StringVar(&a.flags.ColorProfile, "color-profile", "", "Color profile: ascii, ansi, ansi256, truecolor")
	pf.BoolVar(&a.usePager, "pager", false, "Show output in an interactive pager when stdout is a terminal")
	root.Flags().StringVarP(&a.format, "format", "f", "", "Input format: json, yaml, toml, xml (default: by extension, else sniffed)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newThemesCmd(a))
	return root
}

// setup configures logging and resolves the configuration before any
// command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logging.Setup(a.verbosity, a.stderr)
	a.log = logging.Get("cli")

	flags := cmd.Flags()
	a.flags.IndentSet = flags.Changed("indent")
	a.flags.NoColorSet = flags.Changed("no-color")
	a.flags.MaxDepthSet = flags.Changed("max-depth")

	cfg, err := config.ResolveConfig(a.flags)
	if err != nil {
		return usageError{err}
	}
	if cfg.Debug && a.verbosity < 2 {
		logging.Setup(2, a.stderr)
		a.log = logging.Get("cli")
	}
	if !cfg.ColorExplicit() && !isTTYWriter(a.stdout) {
		cfg.Profile = termenv.Ascii
	}
	a.cfg = cfg

	a.log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}

// source is one decoded input.
type source struct {
	name  string
	value any
	err   error
}

func (a *app) runFiles(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{stdinName}
	}

	var forced decode.Format
	if a.format != "" {
		f, err := decode.ParseFormat(a.format)
		if err != nil {
			return usageError{err}
		}
		forced = f
	}

	stdinCount := 0
	for _, name := range args {
		if name == stdinName {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return usagef("stdin (%q) given %d times", stdinName, stdinCount)
	}

	sources, err := a.decodeAll(ctx, args, forced)
	if err != nil {
		return err
	}

	printer := a.cfg.Printer()
	var out strings.Builder
	failed := false
	for i, src := range sources {
		if len(sources) > 1 {
			if i > 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "==> %s <==\n", displayName(src.name))
		}
		if src.err != nil {
			fmt.Fprintf(a.stderr, "peek: %s: %v\n", displayName(src.name), src.err)
			failed = true
			continue
		}
		text, err := printer.Render(src.value)
		out.WriteString(text)
		out.WriteString("\n")
		if err != nil {
			fmt.Fprintf(a.stderr, "peek: %s: %v\n", displayName(src.name), err)
			failed = true
		}
	}

	title := displayName(args[0])
	if len(args) > 1 {
		title = fmt.Sprintf("%s (+%d more)", title, len(args)-1)
	}
	if err := a.emit(ctx, title, out.String()); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

// decodeAll reads and decodes the inputs concurrently. Results keep the
// argument order. Per-input failures are recorded on the source; only
// cancellation fails the whole call.
func (a *app) decodeAll(ctx context.Context, names []string, forced decode.Format) ([]source, error) {
	done := logging.LogOperationStart(a.log, "decode")
	defer done()

	sources := make([]source, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDecodes)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := a.decodeOne(name, forced)
			sources[i] = source{name: name, value: v, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (a *app) decodeOne(name string, forced decode.Format) (any, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	format := forced
	if format == "" {
		if f, ok := decode.FormatFromPath(name); ok {
			format = f
		} else {
			format = decode.Sniff(data)
		}
	}
	a.log.Debug().Str("input", displayName(name)).Str("format", string(format)).Int("bytes", len(data)).Msg("Decoding input")
	return decode.Bytes(data, format)
}

// emit writes rendered text to stdout, or to the pager when requested and
// stdout is a terminal.
func (a *app) emit(ctx context.Context, title, text string) error {
	if a.usePager {
		if isTTYWriter(a.stdout) {
			return pager.Run(ctx, "peek: "+title, strings.TrimSuffix(text, "\n"), pager.Options{})
		}
		a.log.Debug().Msg("stdout is not a terminal, pager disabled")
	}
	_, err := io.WriteString(a.stdout, text)
	return err
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}
