package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/navexpand/cmd/navexpand/commands"
	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitRequest carries the code kong asks for after --help or --version.
type exitRequest int

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var cli commands.CLI
	g := &commands.Global{
		Logger: slog.New(slog.DiscardHandler),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	parser, err := kong.New(&cli,
		kong.Name("navexpand"),
		kong.Description("Expand directory references in a documentation site navigation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitRequest(c)) }),
		kong.Bind(g),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 10
	}

	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = int(req)
		}
	}()

	ctx, err := parser.Parse(args)
	if err != nil {
		if !errors.IsClassified(err) {
			err = errors.WrapError(err, errors.CategoryValidation, "invalid command line").Build()
		}
		return errors.NewCLIErrorAdapter(cli.Verbose, g.Logger).WithOutput(stderr).Report(err)
	}

	if err := ctx.Run(&cli); err != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, g.Logger).WithOutput(stderr).Report(err)
	}
	return 0
}
