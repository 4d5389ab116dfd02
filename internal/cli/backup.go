package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mizanhq/mizan/internal/config"
	"github.com/mizanhq/mizan/internal/logging"
	"github.com/mizanhq/mizan/internal/services"
	"github.com/spf13/cobra"
)

var backupOutputPath string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot every collection into a bundle file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		backend, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		service := services.NewBackupService(backend, logging.WithComponent("backup"))
		bundle, err := service.CreateBackup(cmd.Context())
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("encode bundle: %w", err)
		}
		if err := os.WriteFile(backupOutputPath, encoded, 0o644); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "backup %s written to %s\n", bundle.BackupID, backupOutputPath)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutputPath, "output", "o", "mizan-backup.json", "bundle file to write")
}
