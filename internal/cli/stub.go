package cli

import (
	"flag"
	"fmt"
	"io"

	"legalkit/internal/config"
	"legalkit/internal/logging"
	"legalkit/internal/stubserver"
)

// serveStub is a test seam for running the stand-in backend.
var serveStub = stubserver.Serve

// runStub builds the handler for the stub command.
func runStub(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level")
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}
		if err := logging.ValidateLevel(*logLevel); err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		out := logOutput
		if out == nil {
			out = stderr
		}
		opts := stubserver.DefaultOptions()
		opts.Logger = logging.New(*logLevel, logging.FormatConsole, out)

		ctx, stop := signalContext()
		defer stop()
		fmt.Fprintf(stdout, "Stub backend at http://%s/api\n", *addr)
		if err := serveStub(ctx, *addr, stubserver.New(opts)); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
