// Package cli defines the mizan command tree.
package cli

import (
	"github.com/mizanhq/mizan/internal/config"
	"github.com/mizanhq/mizan/internal/logging"
	"github.com/mizanhq/mizan/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mizan",
	Short:         "Mizan accounting engine",
	Long:          "Mizan persists and reports on the company's business records: clients, projects, invoices, payments and settings.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(reportCmd)
}

// openBackend selects the storage backend once: structured when it opens,
// flat otherwise.
func openBackend(cfg config.Config) (store.Backend, error) {
	return store.Open(store.Config{
		SQLitePath: cfg.SQLitePath,
		DataDir:    cfg.DataDir,
	}, logging.WithComponent("store"))
}
