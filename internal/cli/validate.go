package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"legalkit/internal/config"
	"legalkit/internal/i18n"
	"legalkit/internal/request"
)

// formFlags select a form file and append to its model and dataset lists.
type formFlags struct {
	path     string
	models   stringList
	datasets stringList
}

func addFormFlags(fs *flag.FlagSet) *formFlags {
	f := &formFlags{}
	fs.StringVar(&f.path, "form", "", "Path to an evaluation form YAML file")
	fs.Var(&f.models, "model", "Model path to add (repeatable)")
	fs.Var(&f.datasets, "dataset", "Dataset to add (repeatable)")
	return f
}

// load reads the form file, or the default form when none is given, and
// applies the flag additions.
func (f *formFlags) load() (request.FormState, error) {
	form := request.DefaultForm()
	if f.path != "" {
		loaded, err := request.LoadForm(f.path)
		if err != nil {
			return request.FormState{}, err
		}
		form = loaded
	}
	form.ModelPaths = append(form.ModelPaths, f.models...)
	form.Datasets = append(form.Datasets, f.datasets...)
	return form, nil
}

func (f *formFlags) set() bool {
	return f.path != "" || len(f.models) > 0 || len(f.datasets) > 0
}

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := fs.String("config", "", "Path to .legalkit.yml (default: search upward from CWD)")
		langFlag := fs.String("lang", "", "Output language (en|zh)")
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
			resolved, err := resolveConfigPath(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
				return ExitError
			}
			if _, err := config.Load(resolved); err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
				return ExitError
			}
			fmt.Fprintln(stdout, "Config OK")
			return ExitOK
		}

		tr := i18n.New(i18n.DefaultLang)
		if *langFlag != "" {
			lang, err := i18n.ParseLang(*langFlag)
			if err != nil {
				fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
				return ExitUsage
			}
			tr = i18n.New(lang)
		}
		state, err := form.load()
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		req, overrides, err := request.BuildAndValidate(state)
		if err != nil {
			var validationErr *request.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintln(stderr, validationErr.Message(tr))
				return ExitError
			}
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		printOverrides(stderr, tr, overrides)
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "encode request: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(data))
		fmt.Fprintln(stderr, tr.T("request_valid"))
		return ExitOK
	}
}

// printOverrides reports values the builder forced.
func printOverrides(w io.Writer, tr i18n.Translator, overrides request.Overrides) {
	if overrides.TaskForcedEval {
		fmt.Fprintf(w, "task: %s\n", tr.T("override_eval_value"))
	}
}
