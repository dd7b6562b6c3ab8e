package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/internal/tui/inspector"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [zeile...]",
	Short: "Startet den interaktiven Inspector",
	Long: `Startet den Inspector, der die Eingabezeile bei jedem Tastendruck
neu zerlegt und die Argumente live anzeigt. Eine Startzeile wird am
besten als ein Argument in einfachen Anführungszeichen übergeben.

Tasten:
  Ctrl+E    - Erweiterte Argumente an/aus
  Ctrl+F    - Erstes Token verwerfen an/aus
  Enter     - Zeile im Verlauf speichern
  Esc       - Beenden`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	recorder, closeHistory := openRecorder()
	defer closeHistory()

	err := inspector.Run(inspector.Config{
		Options:  parserOptions(),
		Recorder: recorder,
		Initial:  joinArgs(args),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI Fehler: %v\n", err)
		return err
	}

	return nil
}
