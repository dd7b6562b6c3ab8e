package cmd

import (
	"bufio"
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	"github.com/msto63/cmdline/internal/history/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse [zeile...]",
	Short: "Zerlegt eine Kommandozeile in Argumente",
	Long: `Zerlegt eine Kommandozeile in Argumente und Flags.

Mehrere Argumente werden mit Leerzeichen zu einer Zeile verbunden. Die
Shell entfernt dabei Anführungszeichen; um sie zu erhalten, die ganze
Zeile in einfache Anführungszeichen setzen.
Ohne Argumente wird jede Zeile der Standardeingabe einzeln zerlegt.

Beispiele:
  cmdline parse 'copy "C:\Program Files" /y'
  cmdline parse -x -o json -- '-mode:read -mode2:write'
  cat lines.txt | cmdline parse -o plain`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	recorder, closeHistory := openRecorder()
	defer closeHistory()

	opts := parserOptions()
	out := cmd.OutOrStdout()

	tokenize := func(line string) error {
		timer := appLogger.StartTimer("parse").WithField("length", len(line))
		result := cmdline.Parse(line, opts)
		timer.Stop()

		if _, err := recorder.Record(context.Background(), store.SourceCLI, line, opts, result); err != nil {
			appLogger.WarnWithErr("Failed to record history", err)
		}
		return renderer.Arguments(out, result)
	}

	if len(args) > 0 {
		return tokenize(joinArgs(args))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := tokenize(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return mdwerror.Wrap(err, "failed to read standard input").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.parse")
	}
	return nil
}
