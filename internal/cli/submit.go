package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// runSubmit builds the handler for the submit command.
func runSubmit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		form := addFormFlags(fs)
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(positional) > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional, " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if !form.set() {
			fmt.Fprintln(stderr, "Missing --form")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		state, err := form.load()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		session, err := e.newSession()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		id, overrides, err := session.Submit(ctx, state)
		if err != nil {
			printNotifications(stderr, session.Snapshot().Notifications)
			return ExitError
		}
		printOverrides(stderr, e.tr, overrides)
		fmt.Fprintln(stdout, e.tr.T("submit_success_prefix")+id)
		return ExitOK
	}
}
