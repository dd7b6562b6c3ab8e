package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwlog "github.com/msto63/cmdline/foundation/core/log"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/internal/render"
	"github.com/msto63/cmdline/pkg/core/config"
	"github.com/msto63/cmdline/pkg/core/logging"
)

var (
	cfgFile      string
	verbose      bool
	extended     bool
	discardFirst bool
	outputFormat string
	noHistory    bool
)

// appConfig and appLogger are set up before every command runs
var (
	appConfig *config.Config
	appLogger *logging.Logger
)

// errNotFound ends a command with exit status 1 without an error message
var errNotFound = errors.New("not found")

var rootCmd = &cobra.Command{
	Use:   "cmdline",
	Short: "cmdline - Kommandozeilen zerlegen und untersuchen",
	Long: `cmdline zerlegt Kommandozeilen in Argumente und Flags.

Flags beginnen mit '-' oder '/', Werte mit Leerzeichen werden in
"..." oder '...' eingeschlossen. Mit --extended werden erweiterte
Werte der Form name:wert erkannt.

Befehle:
  parse    - Kommandozeile zerlegen
  query    - Argumente und Flags abfragen
  history  - Verlauf anzeigen und verwalten
  serve    - HTTP/WebSocket-Server starten
  tui      - Interaktiver Inspector
  repl     - Interaktive Eingabeschleife`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and returns the process exit status
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNotFound) {
			printError(err)
		}
		return 1
	}
	return 0
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config-Datei (default: $"+config.EnvConfigPath+" oder ./configs/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Ausführliche Log-Ausgabe")
	flags.BoolVarP(&extended, "extended", "x", false, "Erweiterte Argumente (name:wert) erkennen")
	flags.BoolVar(&discardFirst, "discard-first", false, "Erstes Token (Programmname) verwerfen")
	flags.StringVarP(&outputFormat, "format", "o", "", "Ausgabeformat: "+strings.Join(config.OutputFormats, ", "))
	flags.BoolVar(&noHistory, "no-history", false, "Nichts im Verlauf speichern")
}

// setup loads the configuration, applies flag overrides and creates the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("extended") {
		appConfig.Parser.ExtendedArguments = extended
	}
	if flags.Changed("discard-first") {
		appConfig.Parser.DiscardFirstToken = discardFirst
	}
	if flags.Changed("format") {
		appConfig.Parser.OutputFormat = outputFormat
	}
	if noHistory {
		appConfig.History.Enabled = false
	}

	logCfg := logging.DefaultLoggerConfig(appConfig.General.Name)
	logCfg.Level = appConfig.General.LogLevel
	logCfg.Format = appConfig.General.LogFormat
	logCfg.Output = cmd.ErrOrStderr()

	base := logging.NewLogger(logCfg)
	if verbose {
		base.SetLevel(mdwlog.LevelDebug)
	}
	mdwlog.SetDefault(base)
	appLogger = logging.Wrap(base)

	appLogger.Debug("Configuration loaded",
		"extended", appConfig.Parser.ExtendedArguments,
		"discard_first", appConfig.Parser.DiscardFirstToken,
		"format", appConfig.Parser.OutputFormat,
		"history", appConfig.History.Enabled,
	)
	return nil
}

// parserOptions returns the tokenizer options after flag overrides
func parserOptions() cmdline.Options {
	return cmdline.Options{
		ExtendedArguments: appConfig.Parser.ExtendedArguments,
		DiscardFirstToken: appConfig.Parser.DiscardFirstToken,
	}
}

// joinArgs rebuilds one command line from shell words. The shell has already
// removed quotes, so words containing spaces lose their grouping.
func joinArgs(args []string) string {
	if len(args) > 1 {
		appLogger.Debug("Arguments joined with single spaces; quote the whole line to keep its quoting",
			"args", len(args),
		)
	}
	return strings.Join(args, " ")
}

func newRenderer() (render.Renderer, error) {
	return render.New(appConfig.Parser.OutputFormat)
}

// openHistory opens the history database
func openHistory() (store.HistoryStore, error) {
	history, err := store.NewSQLiteHistoryStore(appConfig.History.Path)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// openRecorder returns a recorder unless history is disabled. A database that
// cannot be opened disables history with a warning.
func openRecorder() (*store.Recorder, func()) {
	if !appConfig.History.Enabled {
		return nil, func() {}
	}

	history, err := openHistory()
	if err != nil {
		appLogger.WarnWithErr("History disabled", err)
		return nil, func() {}
	}

	return store.NewRecorder(history, appConfig.History.MaxEntries), func() {
		if err := history.Close(); err != nil {
			appLogger.WarnWithErr("Failed to close history", err)
		}
	}
}

func printError(err error) {
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Fehler: %v\n", err)
}
