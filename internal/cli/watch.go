package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"legalkit/internal/dashboard"
	"legalkit/internal/render"
	"legalkit/internal/ui/live"
)

// runLive is a test seam for the Bubble Tea dashboard.
var runLive = live.Run

// runWatch builds the handler for the watch command.
func runWatch(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain (default from config)")
		verbose := fs.Bool("verbose", false, "Plain output with debug logging")
		once := fs.Bool("once", false, "Print one plain snapshot and exit")
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		globals.debug = *verbose
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		mode := *uiMode
		if mode == "" {
			mode = e.cfg.UI.Mode
		}
		decision, err := resolveUIMode(mode, *verbose || *once, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		session, err := e.newSession()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		ctx, stop := signalContext()
		defer stop()
		if decision.useLive {
			if err := runLive(ctx, session, stdout, live.Options{NoColor: e.cfg.UI.NoColor}); err != nil {
				fmt.Fprintf(stderr, "Live UI error: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		return watchPlain(ctx, session, e.render, *once, stdout)
	}
}

// watchPlain prints the recent view after the initial load and on every
// refresh tick.
func watchPlain(ctx context.Context, session *dashboard.Session, r render.Renderer, once bool, stdout io.Writer) int {
	initErr := session.LoadInitial(ctx)
	printPlainSnapshot(stdout, r, session.Snapshot())
	if once {
		if initErr != nil {
			return ExitError
		}
		return ExitOK
	}
	_ = session.Run(ctx, func(error) {
		printPlainSnapshot(stdout, r.WithTranslator(session.Translator()), session.Snapshot())
	})
	return ExitOK
}

// printPlainSnapshot renders notifications, system counters and recent tasks.
func printPlainSnapshot(w io.Writer, r render.Renderer, snap dashboard.Snapshot) {
	var sections []string
	for _, note := range snap.Notifications {
		sections = append(sections, note.Message)
	}
	if snap.SystemLoaded {
		sections = append(sections, r.Heading("system_title"), r.SystemInfo(snap.System))
	}
	sections = append(sections, r.Heading("recent_title"), r.RecentTasks(snap.Recent))
	fmt.Fprintln(w, strings.Join(sections, "\n"))
	fmt.Fprintln(w)
}
