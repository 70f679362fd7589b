package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  legalkit <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"legalkit <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("datasets", "List supported datasets", []string{
		"legalkit datasets [--base-url <url>] [--lang en|zh]",
	}, runDatasets),
	command("system", "Show GPUs, datasets and accelerators", []string{
		"legalkit system",
	}, runSystem),
	command("tasks", "List evaluation tasks", []string{
		"legalkit tasks [--recent] [--limit <n>]",
	}, runTasks),
	command("task", "Show one task with its results", []string{
		"legalkit task <task-id>",
	}, runTask),
	command("discover", "Discover models under a path", []string{
		"legalkit discover <path>",
	}, runDiscover),
	command("validate", "Validate config or an evaluation form", []string{
		"legalkit validate [--config <path>]",
		"legalkit validate --form <form.yml> [--model <path>]... [--dataset <name>]...",
	}, runValidate),
	command("submit", "Submit an evaluation task", []string{
		"legalkit submit --form <form.yml> [--model <path>]... [--dataset <name>]...",
	}, runSubmit),
	command("watch", "Live dashboard with periodic refresh", []string{
		"legalkit watch [--ui auto|live|plain] [--once]",
	}, runWatch),
	command("report", "Write or serve HTML task reports", []string{
		"legalkit report --out <file.html> <task-id>",
		"legalkit report --serve [--addr <host:port>] [--db <file.duckdb>]",
	}, runReport),
	command("export", "Store tasks and metrics in DuckDB", []string{
		"legalkit export --db <file.duckdb> [task-id]...",
	}, runExport),
	command("scores", "List exported primary scores", []string{
		"legalkit scores --db <file.duckdb> [--model <id>]",
	}, runScores),
	command("lang", "Show or set the UI language", []string{
		"legalkit lang [en|zh]",
	}, runLang),
	command("stub", "Run the stand-in evaluation backend", []string{
		"legalkit stub [--addr <host:port>]",
	}, runStub),
}
