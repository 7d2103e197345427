// Package prune handles deletion of pending staged transactions.
package prune

import (
	"context"

	"github.com/spf13/cobra"

	"tmerle/ledgerstage/cmd/root"
)

var (
	ids []string
	all bool
)

// Cmd represents the prune command.
var Cmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete pending staged transactions",
	Long: `Prune removes staged transactions that have not been promoted yet.
Committed transactions in the selection are skipped silently, so repeating
a bulk delete is always safe.`,
	Run: pruneFunc,
}

func init() {
	Cmd.Flags().StringSliceVar(&ids, "ids", nil, "Staged transaction ids to delete")
	Cmd.Flags().BoolVar(&all, "all", false, "Delete every pending transaction for the user")
}

func pruneFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.User == "" {
		root.Log.Fatal("Missing required --user flag")
	}
	if len(ids) == 0 && !all {
		root.Log.Fatal("Provide --ids or --all")
	}

	svc, err := root.NewService()
	if err != nil {
		root.Log.Fatalf("Failed to initialize service: %v", err)
	}
	defer func() {
		_ = svc.Close()
	}()

	ctx := context.Background()

	if all {
		pending, err := svc.ListPending(ctx, root.SharedFlags.User)
		if err != nil {
			root.Log.Fatalf("Failed to list pending transactions: %v", err)
		}
		ids = ids[:0]
		for _, tx := range pending {
			ids = append(ids, tx.ID)
		}
	}

	deleted, err := svc.DeletePending(ctx, root.SharedFlags.User, ids)
	if err != nil {
		root.Log.Fatalf("Failed to delete pending transactions: %v", err)
	}

	root.Log.Infof("Deleted %d pending transactions", deleted)
}
