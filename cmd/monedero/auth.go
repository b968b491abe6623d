package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with external services like Google Sheets.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command opens your browser to authenticate with Google, saves the token
for reuse, and stores the refresh token in your config file. Run it once to
set up 'monedero export sheets'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			id := viper.GetString("sheets.client_id")
			secret := viper.GetString("sheets.client_secret")
			if clientID != "" {
				id = clientID
			}
			if clientSecret != "" {
				secret = clientSecret
			}
			if id == "" {
				id = os.Getenv("MONEDERO_SHEETS_CLIENT_ID")
			}
			if secret == "" {
				secret = os.Getenv("MONEDERO_SHEETS_CLIENT_SECRET")
			}
			if id == "" || secret == "" {
				return fmt.Errorf("OAuth2 credentials not found: set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret")
			}

			tokenFile, err := sheetsTokenFile()
			if err != nil {
				return err
			}

			slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

			token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
				ClientID:     id,
				ClientSecret: secret,
				TokenFile:    tokenFile,
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			viper.Set("sheets.client_id", id)
			viper.Set("sheets.client_secret", secret)
			viper.Set("sheets.refresh_token", token.RefreshToken)

			if err := saveConfig(); err != nil {
				slog.Warn("Failed to update config file with refresh token", "error", err)
				fmt.Println(cli.FormatWarning("Could not save the refresh token to the config file"))
				fmt.Println(cli.FormatInfo("Add this to your config.yaml manually:"))
				fmt.Printf("sheets:\n  refresh_token: %q\n", token.RefreshToken)
				return nil
			}

			fmt.Println(cli.FormatSuccess("Google Sheets is configured. Run 'monedero export sheets' to push a report."))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID (overrides config)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret (overrides config)")

	return cmd
}

// sheetsTokenFile returns the path where the OAuth token is cached.
func sheetsTokenFile() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "monedero", "sheets-token.json"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "monedero", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
