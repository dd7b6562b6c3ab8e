package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	mdwlog "github.com/msto63/cmdline/foundation/core/log"
	"github.com/msto63/cmdline/internal/history/store"
)

var (
	historySource   string
	historyContains string
	historyLimit    int
	historyOffset   int
	historyOlder    time.Duration
	historyYes      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt und verwaltet den Verlauf",
	Long: `Zeigt und verwaltet den Verlauf zerlegter Kommandozeilen.

Der Verlauf liegt in einer SQLite-Datenbank (history.path in der
Konfiguration, default: <data_dir>/history.db).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet Verlaufseinträge, neueste zuerst",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Zeigt einen Verlaufseintrag mit seinen Argumenten",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Löscht Einträge, die älter als --older-than sind",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Löscht den gesamten Verlauf",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd, historyClearCmd)

	historyListCmd.Flags().StringVar(&historySource, "source", "", "Nur Einträge dieser Quelle (cli, repl, tui, http, ws, grpc)")
	historyListCmd.Flags().StringVar(&historyContains, "contains", "", "Nur Kommandozeilen, die diesen Text enthalten")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximale Anzahl Einträge (0 = alle)")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Einträge überspringen")

	historyPruneCmd.Flags().DurationVar(&historyOlder, "older-than", 30*24*time.Hour, "Mindestalter der zu löschenden Einträge")

	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "Löschen ohne Rückfrage bestätigen")
}

// withHistory opens the history store for the duration of fn
func withHistory(fn func(ctx context.Context, history store.HistoryStore) error) error {
	history, err := openHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	return fn(context.Background(), history)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	return withHistory(func(ctx context.Context, history store.HistoryStore) error {
		entries, err := history.List(ctx, store.Filter{
			Source:   store.Source(historySource),
			Contains: historyContains,
			Limit:    historyLimit,
			Offset:   historyOffset,
		})
		if err != nil {
			return err
		}
		return renderer.Entries(cmd.OutOrStdout(), entries)
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	return withHistory(func(ctx context.Context, history store.HistoryStore) error {
		entry, err := history.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return renderer.Entry(cmd.OutOrStdout(), entry)
	})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	if historyOlder <= 0 {
		return mdwerror.Newf("--older-than must be positive, got %s", historyOlder).
			WithCode(mdwerror.CodeInvalidArgument).
			WithOperation("cmd.history.prune")
	}

	return withHistory(func(ctx context.Context, history store.HistoryStore) error {
		removed, err := history.Prune(ctx, historyOlder)
		if err != nil {
			return err
		}
		appLogger.Info("History pruned", "removed", removed, "older_than", historyOlder.String())
		fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge gelöscht\n", removed)
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !historyYes {
		return mdwerror.New("clearing the history requires --yes").
			WithCode(mdwerror.CodeInvalidArgument).
			WithOperation("cmd.history.clear")
	}

	return withHistory(func(ctx context.Context, history store.HistoryStore) error {
		removed, err := history.Clear(ctx)
		if err != nil {
			return err
		}
		// Audit records are written at every log level
		appLogger.Audit("History cleared", mdwlog.Field("removed", removed))
		fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge gelöscht\n", removed)
		return nil
	})
}
