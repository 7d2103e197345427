// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tmerle/ledgerstage/internal/config"
	"tmerle/ledgerstage/internal/export"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/service"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	User   string
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ledgerstage",
		Short: "Import bank CSV exports into a staging area and promote them into ledger entries.",
		Long: `ledgerstage ingests bank/CSV exports of unknown column layouts, stages the
normalized transactions for review, and later promotes them into income or
expense ledger entries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledgerstage!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			adapter := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(adapter)
			export.SetLogger(adapter)
		},
	}

	// SharedFlags holds the common flag values for all commands.
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all shared flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.User, "user", "u", "", "User id that owns the transactions")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// NewService builds the pipeline service from the loaded configuration.
func NewService() (*service.Service, error) {
	return service.New(Cfg, logging.NewLogrusAdapterFromLogger(Log))
}
