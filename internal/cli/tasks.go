package cli

import (
	"flag"
	"fmt"
	"io"

	"legalkit/internal/dashboard"
)

// runTasks builds the handler for the tasks command.
func runTasks(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		recent := fs.Bool("recent", false, "Show only the most recent tasks")
		limit := fs.Int("limit", 0, "Number of recent tasks (default from config)")
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		if *limit < 0 {
			fmt.Fprintln(stderr, "--limit must be >= 1")
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		tasks, err := e.backend.ListTasks(ctx)
		if err != nil {
			return e.failure(stderr, "err_load_tasks", err)
		}
		if *recent {
			n := *limit
			if n == 0 {
				n = e.cfg.UI.RecentLimit
			}
			fmt.Fprintln(stdout, e.render.Heading("recent_title"))
			fmt.Fprintln(stdout, e.render.RecentTasks(dashboard.RecentTasks(tasks, n)))
			return ExitOK
		}
		fmt.Fprintln(stdout, e.render.TaskTable(tasks))
		return ExitOK
	}
}

// runTask builds the handler for the task command.
func runTask(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if !expectArgs(cmd, positional, 1, "<task-id>", stderr) {
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		detail, err := dashboard.LoadTaskDetail(ctx, e.backend, positional[0])
		if err != nil {
			return e.failure(stderr, "err_get_task_detail", err)
		}
		fmt.Fprintln(stdout, e.render.TaskDetail(detail.Task, detail.Results, detail.ResultsErr))
		return ExitOK
	}
}
