// Package importcmd handles the file import command.
package importcmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tmerle/ledgerstage/cmd/root"
)

var source string

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a bank CSV export into the staging area",
	Long: `Import parses a CSV export with an arbitrary column layout, stages every
valid row as a pending transaction for the user, and reports per-row
failures without aborting the batch.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&source, "source", "s", "", "Provenance label for the imported rows (defaults to the file name)")
}

func importFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.User == "" {
		root.Log.Fatal("Missing required --user flag")
	}
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Missing required --input flag")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Failed to read input file: %v", err)
	}

	svc, err := root.NewService()
	if err != nil {
		root.Log.Fatalf("Failed to initialize service: %v", err)
	}
	defer func() {
		_ = svc.Close()
	}()

	fileName := filepath.Base(root.SharedFlags.Input)
	report, err := svc.Upload(context.Background(), root.SharedFlags.User, fileName, "", data, source)
	if err != nil {
		root.Log.Fatalf("Import rejected: %v", err)
	}

	root.Log.Infof("Imported %d rows (%d failed) from %s", report.SuccessCount, report.FailureCount, report.FileName)
	for _, failure := range report.Failures {
		root.Log.Warnf("  line %d: %s", failure.Line, failure.Reason)
	}
}
