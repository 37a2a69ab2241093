// Package app implements the webprint command line interface.
package app

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ghettovoice/webprint/internal/log"
)

// Dependencies holds the process environment of a command run.
// Zero fields fall back to the process standard streams.
type Dependencies struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer // diagnostics and logs
}

func (d Dependencies) withDefaults() Dependencies {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Err == nil {
		d.Err = os.Stderr
	}
	return d
}

// CLI defines the command line parsed by Kong.
type CLI struct {
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" default:"console" enum:"console,dev" help:"Log format (${enum})"`

	Generate GenerateCmd `cmd:"" help:"Generate a print URI"`
	Inspect  InspectCmd  `cmd:"" help:"Decode a print URI"`
	Fields   FieldsCmd   `cmd:"" help:"List known print URI parameters"`
}

// env is passed to command handlers.
type env struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

// Run parses args and executes the requested command.
// It returns the process exit code: 0 on success, 1 on a failed command, 2 on a usage error.
func Run(args []string, deps Dependencies) int {
	deps = deps.withDefaults()

	exitCode := -1
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("webprint"),
		kong.Description("Build and inspect Brother Smooth Print URIs."),
		kong.Writers(deps.Out, deps.Err),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		return exitWithError(deps.Err, err)
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// help was requested
		return exitCode
	}
	if err != nil {
		fmt.Fprintln(deps.Err, err)
		return 2
	}

	e := &env{
		in:     deps.In,
		out:    deps.Out,
		logger: log.New(deps.Err, log.Format(cli.LogFormat), parseLevel(cli.LogLevel)),
	}

	var run func(*env) error
	switch ctx.Command() {
	case "generate":
		run = cli.Generate.run
	case "inspect <uri>":
		run = cli.Inspect.run
	case "fields":
		run = cli.Fields.run
	default:
		fmt.Fprintln(deps.Err, "unknown command")
		return 2
	}

	if err := run(e); err != nil {
		e.logger.Debug("command failed", "command", ctx.Command(), "error", err)
		return exitWithError(deps.Err, err)
	}
	return 0
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, "Error:", err)
	return 1
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
