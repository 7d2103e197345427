// Package promote handles promotion of staged transactions into ledger
// entries.
package promote

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tmerle/ledgerstage/cmd/root"
)

var (
	ids       []string
	overrides []string
)

// Cmd represents the promote command.
var Cmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote staged transactions into income or expense ledger entries",
	Long: `Promote converts the selected staged transactions into permanent ledger
entries. Expense categories resolve from an explicit override, the row's
category hint, or the user's first category, in that order. Each id is
promoted at most once; repeating a promotion reports the id as already
committed instead of creating a duplicate entry.`,
	Run: promoteFunc,
}

func init() {
	Cmd.Flags().StringSliceVar(&ids, "ids", nil, "Staged transaction ids to promote")
	Cmd.Flags().StringArrayVar(&overrides, "override", nil, "Category override per id, formatted id=category-id (repeatable)")
}

func promoteFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.User == "" {
		root.Log.Fatal("Missing required --user flag")
	}
	if len(ids) == 0 {
		root.Log.Fatal("Missing required --ids flag")
	}

	overrideMap := make(map[string]string, len(overrides))
	for _, pair := range overrides {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			root.Log.Fatalf("Invalid --override value %q, expected id=category-id", pair)
		}
		overrideMap[parts[0]] = parts[1]
	}

	svc, err := root.NewService()
	if err != nil {
		root.Log.Fatalf("Failed to initialize service: %v", err)
	}
	defer func() {
		_ = svc.Close()
	}()

	result, err := svc.Promote(context.Background(), root.SharedFlags.User, ids, overrideMap)
	if err != nil {
		root.Log.Fatalf("Promotion failed: %v", err)
	}

	root.Log.Infof("Promoted %d income and %d expense transactions", result.IncomeCreated, result.ExpensesCreated)
	for _, pErr := range result.Errors {
		root.Log.Warnf("  %s: %s", pErr.ID, pErr.Reason)
	}
}
