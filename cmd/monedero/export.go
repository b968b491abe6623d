package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/export"
	"github.com/dverduzco/monedero/internal/service"
	"github.com/dverduzco/monedero/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV or Google Sheets",
	}

	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportCSVCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the wallet's transactions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallet, err := resolveWallet(ctx, store)
			if err != nil {
				return err
			}

			transactions, err := store.GetTransactions(ctx, service.TransactionFilter{WalletID: wallet.ID})
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output) // #nosec G304
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			if err := export.WriteCSV(out, transactions); err != nil {
				return err
			}

			if output != "" {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(transactions), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Push a monthly report to Google Sheets",
		Long: `Export one month of the wallet to a Google Sheets spreadsheet: summary,
per-category spend, and every transaction. Run 'monedero auth sheets' once to
set up OAuth2 credentials, or configure a service account or refresh token via
MONEDERO_SHEETS_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now()
			year, month := now.Year(), now.Month()
			if monthFlag != "" {
				parsed, err := time.Parse("2006-01", monthFlag)
				if err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", monthFlag)
				}
				year, month = parsed.Year(), parsed.Month()
			}

			config, err := loadSheetsConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallet, err := resolveWallet(ctx, store)
			if err != nil {
				return err
			}

			start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
			end := start.AddDate(0, 1, 0)
			transactions, err := store.GetTransactions(ctx, service.TransactionFilter{
				WalletID:  wallet.ID,
				StartDate: &start,
				EndDate:   &end,
			})
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			summary, err := store.GetMonthSummary(ctx, wallet.ID, year, month)
			if err != nil {
				return fmt.Errorf("failed to get month summary: %w", err)
			}

			writer, err := sheets.NewWriter(ctx, config, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, wallet, transactions, summary, year, month); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d-%02d report for %s", year, month, wallet.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month to export (YYYY-MM, default current)")

	return cmd
}

// loadSheetsConfig merges sheets credentials from the config file (written by
// 'monedero auth sheets') with MONEDERO_SHEETS_* environment overrides.
func loadSheetsConfig() (sheets.Config, error) {
	config := sheets.DefaultConfig()
	config.ClientID = viper.GetString("sheets.client_id")
	config.ClientSecret = viper.GetString("sheets.client_secret")
	config.RefreshToken = viper.GetString("sheets.refresh_token")
	config.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	config.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
		config.SpreadsheetName = name
	}

	if err := config.LoadFromEnv(); err != nil {
		return sheets.Config{}, err
	}
	return config, nil
}
