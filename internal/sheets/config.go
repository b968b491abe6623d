// Package sheets exports wallet reports to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeZone:      "America/Mexico_City",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv overlays the configuration with environment variables. Values
// already present (e.g. from the config file) are kept when the corresponding
// variable is unset.
func (c *Config) LoadFromEnv() error {
	setIfPresent(&c.ClientID, "MONEDERO_SHEETS_CLIENT_ID")
	setIfPresent(&c.ClientSecret, "MONEDERO_SHEETS_CLIENT_SECRET")
	setIfPresent(&c.RefreshToken, "MONEDERO_SHEETS_REFRESH_TOKEN")
	setIfPresent(&c.ServiceAccountPath, "MONEDERO_SHEETS_SERVICE_ACCOUNT_PATH")
	setIfPresent(&c.SpreadsheetID, "MONEDERO_SHEETS_SPREADSHEET_ID")
	setIfPresent(&c.SpreadsheetName, "MONEDERO_SHEETS_SPREADSHEET_NAME")

	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either service account path or OAuth2 credentials, or run 'monedero auth sheets'")
	}

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "Monedero"
	}

	return nil
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}

	return nil
}
