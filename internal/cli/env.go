package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"legalkit/internal/api"
	"legalkit/internal/config"
	"legalkit/internal/dashboard"
	"legalkit/internal/i18n"
	"legalkit/internal/logging"
	"legalkit/internal/render"
	"legalkit/internal/spec"
)

// globalFlags are accepted by every backend-facing command.
type globalFlags struct {
	configPath string
	baseURL    string
	lang       string
	noColor    bool
	// debug raises the log level before the backend client is built.
	debug bool
}

func addGlobalFlags(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.configPath, "config", "", "Path to .legalkit.yml (default: search upward from CWD)")
	fs.StringVar(&g.baseURL, "base-url", "", "Backend API base URL")
	fs.StringVar(&g.lang, "lang", "", "Output language (en|zh)")
	fs.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	return g
}

// env is the per-invocation context shared by command handlers.
type env struct {
	cfg     spec.Config
	logger  zerolog.Logger
	backend dashboard.Backend
	store   dashboard.LangStore
	lang    i18n.Lang
	tr      i18n.Translator
	render  render.Renderer
}

// Test seams.
var (
	newBackend = func(cfg spec.Config, logger zerolog.Logger) (dashboard.Backend, error) {
		return api.NewClient(cfg.Backend.BaseURL, &http.Client{Timeout: config.Timeout(cfg)}, logger)
	}
	defaultPrefsStore = i18n.DefaultStore
	logOutput         io.Writer
)

// loadEnv resolves config, logging, language and the backend client.
func loadEnv(g *globalFlags, stderr io.Writer) (*env, error) {
	path, err := resolveConfigPath(g.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if g.baseURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(g.baseURL, "/")
	}
	if g.noColor {
		cfg.UI.NoColor = true
	}
	out := logOutput
	if out == nil {
		out = stderr
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, out)
	if g.debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	store, err := prefsStore(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("language preferences unavailable")
	}
	lang, err := resolveLang(g.lang, cfg, store)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	tr := i18n.New(lang)
	return &env{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		store:   storeOrNil(store),
		lang:    lang,
		tr:      tr,
		render:  render.New(tr, cfg.UI.NoColor),
	}, nil
}

// prefsStore returns the configured preferences file or the user default.
func prefsStore(cfg spec.Config) (*i18n.Store, error) {
	if cfg.PrefsPath != "" {
		return &i18n.Store{Path: cfg.PrefsPath}, nil
	}
	store, err := defaultPrefsStore()
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func storeOrNil(store *i18n.Store) dashboard.LangStore {
	if store == nil {
		return nil
	}
	return *store
}

// resolveLang picks the flag, then config/environment, then the stored
// preference, then the default.
func resolveLang(flagValue string, cfg spec.Config, store *i18n.Store) (i18n.Lang, error) {
	for _, value := range []string{flagValue, cfg.UI.Lang} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		lang, err := i18n.ParseLang(value)
		if err != nil {
			return "", err
		}
		return lang, nil
	}
	if store != nil {
		if lang, err := store.Load(); err == nil {
			return lang, nil
		}
	}
	return i18n.DefaultLang, nil
}

// newSession builds a dashboard session from the environment.
func (e *env) newSession() (*dashboard.Session, error) {
	return dashboard.NewSession(dashboard.Options{
		Backend:         e.backend,
		Lang:            e.lang,
		Prefs:           e.store,
		Logger:          e.logger,
		RecentLimit:     e.cfg.UI.RecentLimit,
		RefreshInterval: config.RefreshInterval(e.cfg),
		NotificationTTL: config.NotificationTTL(e.cfg),
	})
}

// requestContext bounds one-shot commands by the backend timeout.
func (e *env) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*config.Timeout(e.cfg)+time.Second)
}

// failure prints "<localized prefix>: <reason>".
func (e *env) failure(stderr io.Writer, key string, err error) int {
	prefix := strings.TrimRight(e.tr.T(key), " :：")
	fmt.Fprintf(stderr, "%s: %s\n", prefix, dashboard.Reason(err))
	return ExitError
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseArgs parses flags interleaved with positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// parseCommandFlags parses args and maps failures to exit codes. ok is
// false when the caller should return code.
func parseCommandFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (positional []string, code int, ok bool) {
	fs.SetOutput(stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return nil, ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return nil, ExitUsage, false
	}
	return positional, ExitOK, true
}

// expectArgs reports a usage error unless exactly n positional arguments
// were given.
func expectArgs(cmd *Command, positional []string, n int, missing string, stderr io.Writer) bool {
	if len(positional) < n {
		fmt.Fprintf(stderr, "Missing %s\n", missing)
		printCommandUsage(cmd, stderr)
		return false
	}
	if len(positional) > n {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional[n:], " "))
		printCommandUsage(cmd, stderr)
		return false
	}
	return true
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
