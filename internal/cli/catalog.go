package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"legalkit/internal/dashboard"
)

// runDatasets builds the handler for the datasets command.
func runDatasets(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		datasets, err := e.backend.Datasets(ctx)
		if err != nil {
			return e.failure(stderr, "err_load_datasets", err)
		}
		fmt.Fprintln(stdout, e.render.Heading("datasets_title"))
		fmt.Fprintln(stdout, e.render.Datasets(datasets))
		return ExitOK
	}
}

// runSystem builds the handler for the system command.
func runSystem(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		info, err := e.backend.SystemInfo(ctx)
		if err != nil {
			return e.failure(stderr, "err_load_system", err)
		}
		fmt.Fprintln(stdout, e.render.SystemPanel(info))
		return ExitOK
	}
}

// runDiscover builds the handler for the discover command.
func runDiscover(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(positional) > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", positional[1:])
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		path := ""
		if len(positional) == 1 {
			path = positional[0]
		}
		session, err := e.newSession()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		models, err := session.DiscoverModels(ctx, path)
		if err != nil {
			printNotifications(stderr, session.Snapshot().Notifications)
			if errors.Is(err, dashboard.ErrEmptyModelPath) {
				return ExitUsage
			}
			return ExitError
		}
		fmt.Fprintln(stdout, e.render.DiscoveredModels(models))
		return ExitOK
	}
}

// printNotifications writes queued session messages, one per line.
func printNotifications(w io.Writer, notes []dashboard.Notification) {
	for _, note := range notes {
		fmt.Fprintln(w, note.Message)
	}
}
