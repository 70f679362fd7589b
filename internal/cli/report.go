package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"legalkit/internal/dashboard"
	"legalkit/internal/report"
	"legalkit/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		outputPath := fs.String("out", "", "Report output path")
		serve := fs.Bool("serve", false, "Serve reports over HTTP instead of writing a file")
		addr := fs.String("addr", "127.0.0.1:8080", "Address to listen on with --serve")
		dbPath := fs.String("db", "", "DuckDB export to offer for download with --serve")
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}

		if *serve {
			if !expectArgs(cmd, positional, 0, "", stderr) {
				return ExitUsage
			}
			if *addr == "" {
				fmt.Fprintln(stderr, "Missing --addr")
				return ExitUsage
			}
			if *dbPath != "" {
				if _, err := os.Stat(*dbPath); err != nil {
					fmt.Fprintf(stderr, "Database not found: %v\n", err)
					return ExitError
				}
			}
		} else {
			if !expectArgs(cmd, positional, 1, "<task-id>", stderr) {
				return ExitUsage
			}
			if *outputPath == "" {
				fmt.Fprintln(stderr, "Missing --out")
				return ExitUsage
			}
		}

		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}

		if *serve {
			ctx, stop := signalContext()
			defer stop()
			cfg := reportserver.Config{
				Addr:   *addr,
				Source: e.backend,
				Lang:   e.lang,
				DBPath: *dbPath,
				Logger: e.logger,
			}
			fmt.Fprintf(stdout, "Serving reports at http://%s\n", cfg.Addr)
			if err := serveReport(ctx, cfg); err != nil {
				fmt.Fprintf(stderr, "Server error: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		ctx, cancel := e.requestContext()
		defer cancel()
		detail, err := dashboard.LoadTaskDetail(ctx, e.backend, positional[0])
		if err != nil {
			return e.failure(stderr, "err_get_task_detail", err)
		}
		data := report.TaskData{Task: detail.Task, Results: detail.Results, ResultsErr: detail.ResultsErr}
		if err := report.WriteTaskReport(ctx, *outputPath, e.tr, data); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, e.tr.T("report_written")+*outputPath)
		return ExitOK
	}
}
