// Package review handles listing of pending staged transactions.
package review

import (
	"context"

	"github.com/spf13/cobra"

	"tmerle/ledgerstage/cmd/root"
	"tmerle/ledgerstage/internal/dateutils"
	"tmerle/ledgerstage/internal/export"
)

// Cmd represents the review command.
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "List the user's pending staged transactions",
	Long: `Review lists every imported transaction that has not yet been promoted or
deleted. With --output the pending set is also written to a CSV file.`,
	Run: reviewFunc,
}

func reviewFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.User == "" {
		root.Log.Fatal("Missing required --user flag")
	}

	svc, err := root.NewService()
	if err != nil {
		root.Log.Fatalf("Failed to initialize service: %v", err)
	}
	defer func() {
		_ = svc.Close()
	}()

	pending, err := svc.ListPending(context.Background(), root.SharedFlags.User)
	if err != nil {
		root.Log.Fatalf("Failed to list pending transactions: %v", err)
	}

	root.Log.Infof("%d pending staged transactions", len(pending))
	for _, tx := range pending {
		root.Log.Infof("  %s  %s  %s %s  %q  hint=%q",
			tx.ID, dateutils.ToISODate(tx.Date), tx.Kind, tx.Amount.StringFixed(2),
			tx.Description, tx.CategoryHint)
	}

	if root.SharedFlags.Output != "" {
		delim := rune(root.Cfg.CSV.Delimiter[0])
		if err := export.WriteStagedCSV(pending, root.SharedFlags.Output, delim); err != nil {
			root.Log.Fatalf("Failed to export pending transactions: %v", err)
		}
		root.Log.Infof("Wrote pending transactions to %s", root.SharedFlags.Output)
	}
}
