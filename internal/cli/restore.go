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

var restoreCmd = &cobra.Command{
	Use:   "restore <bundle-file>",
	Short: "Overwrite all collections from a bundle file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read bundle: %w", err)
		}

		bundle := services.Bundle{}
		if err := json.Unmarshal(content, &bundle); err != nil {
			return fmt.Errorf("parse bundle: %w", err)
		}

		cfg := config.Load()
		backend, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		service := services.NewBackupService(backend, logging.WithComponent("backup"))
		if err := service.RestoreBackup(cmd.Context(), &bundle); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "restored bundle %s (version %s)\n", bundle.BackupID, bundle.Version)
		return nil
	},
}
