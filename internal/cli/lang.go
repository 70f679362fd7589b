package cli

import (
	"flag"
	"fmt"
	"io"

	"legalkit/internal/i18n"
)

// runLang builds the handler for the lang command.
func runLang(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		if len(positional) == 0 {
			fmt.Fprintln(stdout, string(e.lang))
			return ExitOK
		}
		lang, err := i18n.ParseLang(positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		session, err := e.newSession()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		if err := session.SetLanguage(lang); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, i18n.New(lang).T("lang_saved"))
		return ExitOK
	}
}
