package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/foundation/cmdline"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/internal/render"
	"github.com/msto63/cmdline/pkg/core/logging"
	"github.com/msto63/cmdline/pkg/core/version"
)

const replPrompt = "cmdline> "

// REPL commands start with ':' and are never tokenized
var replCommands = []string{":x", ":f", ":q", ":h"}

const replHelp = `Befehle:
  :x  - Erweiterte Argumente an/aus
  :f  - Erstes Token verwerfen an/aus
  :h  - Diese Hilfe
  :q  - Beenden (auch Ctrl+D)
Jede andere Zeile wird zerlegt und ausgegeben.`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet eine interaktive Eingabeschleife",
	Long: `Liest Kommandozeilen interaktiv und gibt die Argumente aus.

` + replHelp,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// repl holds the state of one interactive session
type repl struct {
	opts     cmdline.Options
	renderer render.Renderer
	recorder *store.Recorder
	logger   *logging.Logger
	out      io.Writer
}

// handle processes one input line and reports whether the session should end
func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	switch strings.TrimSpace(line) {
	case "":
		return false, nil
	case ":q":
		return true, nil
	case ":h":
		fmt.Fprintln(r.out, replHelp)
		return false, nil
	case ":x":
		r.opts.ExtendedArguments = !r.opts.ExtendedArguments
		fmt.Fprintln(r.out, onOff("Erweiterte Argumente", r.opts.ExtendedArguments))
		return false, nil
	case ":f":
		r.opts.DiscardFirstToken = !r.opts.DiscardFirstToken
		fmt.Fprintln(r.out, onOff("Erstes Token verwerfen", r.opts.DiscardFirstToken))
		return false, nil
	}

	result := cmdline.Parse(line, r.opts)
	if _, err := r.recorder.Record(ctx, store.SourceREPL, line, r.opts, result); err != nil {
		r.logger.WarnWithErr("Failed to record history", err)
	}
	return false, r.renderer.Arguments(r.out, result)
}

func onOff(name string, on bool) string {
	if on {
		return name + ": an"
	}
	return name + ": aus"
}

func complete(line string) []string {
	var matches []string
	for _, c := range replCommands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}
	return matches
}

func runREPL(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	recorder, closeHistory := openRecorder()
	defer closeHistory()

	session := &repl{
		opts:     parserOptions(),
		renderer: renderer,
		recorder: recorder,
		logger:   appLogger,
		out:      cmd.OutOrStdout(),
	}

	input := liner.NewLiner()
	defer input.Close()

	input.SetCtrlCAborts(true)
	input.SetTabCompletionStyle(liner.TabPrints)
	input.SetCompleter(complete)

	historyFile := filepath.Join(appConfig.General.DataDir, "repl_history")
	if f, err := os.Open(historyFile); err == nil {
		if _, err := input.ReadHistory(f); err != nil {
			appLogger.Debug("Failed to read REPL history", "file", historyFile, "error", err.Error())
		}
		f.Close()
	}

	fmt.Fprintf(session.out, "cmdline REPL v%s (:h für Hilfe)\n", version.Tokenizer)

	ctx := context.Background()
	for {
		line, err := input.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Fprintln(session.out)
			break
		} else if err != nil {
			return err
		}

		appLogger.Debug("Got line from stdin", "line", line)
		input.AppendHistory(line)

		quit, err := session.handle(ctx, line)
		if err != nil {
			appLogger.ErrorWithErr("Failed to render arguments", err)
			continue
		}
		if quit {
			break
		}
	}

	if err := os.MkdirAll(appConfig.General.DataDir, 0755); err != nil {
		appLogger.Warn("Failed to create data directory", "dir", appConfig.General.DataDir, "error", err.Error())
		return nil
	}
	f, err := os.Create(historyFile)
	if err != nil {
		appLogger.Warn("Failed to write REPL history", "file", historyFile, "error", err.Error())
		return nil
	}
	defer f.Close()
	if _, err := input.WriteHistory(f); err != nil {
		appLogger.Warn("Failed to write REPL history", "file", historyFile, "error", err.Error())
	}
	return nil
}
