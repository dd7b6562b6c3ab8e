package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
)

var (
	queryHas        string
	queryHasFlag    string
	queryGet        string
	queryGetFlag    string
	queryIgnoreCase bool
)

var queryCmd = &cobra.Command{
	Use:   "query [zeile...]",
	Short: "Fragt Argumente und Flags einer Kommandozeile ab",
	Long: `Prüft, ob eine Kommandozeile ein Argument oder Flag enthält,
oder gibt das gefundene Argument aus.

Genau eine der Optionen --has, --has-flag, --get oder --get-flag ist
erforderlich. Ohne Argumente wird die Zeile von der Standardeingabe
gelesen. Die Zeile am besten als ein Argument in einfachen
Anführungszeichen übergeben, sonst gehen Anführungszeichen verloren.
Der Exit-Status ist 1, wenn nichts gefunden wurde.

Beispiele:
  cmdline query --has-flag v -- 'tool /v input.txt'
  cmdline query -x --get-flag mode -o plain -- '-mode:read'`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryHas, "has", "", "Prüft auf ein Argument (kein Flag)")
	queryCmd.Flags().StringVar(&queryHasFlag, "has-flag", "", "Prüft auf ein Flag")
	queryCmd.Flags().StringVar(&queryGet, "get", "", "Gibt das erste passende Argument aus")
	queryCmd.Flags().StringVar(&queryGetFlag, "get-flag", "", "Gibt das erste passende Flag aus")
	queryCmd.Flags().BoolVarP(&queryIgnoreCase, "ignore-case", "i", false, "Groß-/Kleinschreibung ignorieren")
	queryCmd.MarkFlagsMutuallyExclusive("has", "has-flag", "get", "get-flag")
	queryCmd.MarkFlagsOneRequired("has", "has-flag", "get", "get-flag")
}

func runQuery(cmd *cobra.Command, args []string) error {
	line, err := queryLine(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	result := cmdline.Parse(line, parserOptions())
	out := cmd.OutOrStdout()
	flags := cmd.Flags()

	switch {
	case flags.Changed("has"):
		return printFound(out, result.HasArgument(queryHas, queryIgnoreCase))
	case flags.Changed("has-flag"):
		return printFound(out, result.HasFlagArgument(queryHasFlag, queryIgnoreCase))
	}

	var (
		found cmdline.Argument
		ok    bool
	)
	if flags.Changed("get") {
		found, ok = result.FindArgument(queryGet, queryIgnoreCase)
	} else {
		found, ok = result.FindFlagArgument(queryGetFlag, queryIgnoreCase)
	}
	if !ok {
		return errNotFound
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	return renderer.Arguments(out, cmdline.Arguments{found})
}

// queryLine joins args or reads all of stdin
func queryLine(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return joinArgs(args), nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to read standard input").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.query")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func printFound(out io.Writer, found bool) error {
	fmt.Fprintln(out, found)
	if !found {
		return errNotFound
	}
	return nil
}
