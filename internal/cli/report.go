package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mizanhq/mizan/internal/config"
	"github.com/mizanhq/mizan/internal/i18n"
	"github.com/mizanhq/mizan/internal/repo"
	"github.com/mizanhq/mizan/internal/services"
	"github.com/spf13/cobra"
)

var reportPeriod string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial report for the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		backend, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
		if err != nil {
			return err
		}

		repositories := repo.NewRepositories(backend)
		service := services.NewReportService(
			repositories.Invoices,
			repositories.Payments,
			i18nManager,
			cfg.DefaultLanguage,
			cfg.Location(),
		)

		report, err := service.GetFinancialReport(cmd.Context(), services.Period(reportPeriod))
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", "month", "report period: month, quarter or year")
}
