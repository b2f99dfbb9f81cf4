package config

import (
	"errors"
	"os"
)

// Config captures runtime configuration for the ledger service. Loaded
// once at startup and injected; nothing reads the environment after that.
type Config struct {
	HTTPAddress   string
	SpreadsheetID string
	SheetName     string
	Timezone      string

	// Sheets API credentials; see the sheets store package for precedence.
	CredentialsJSON string
	CredentialsFile string
	OAuthClientFile string
	OAuthTokenFile  string
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		SheetName:       getEnv("SHEET_NAME", "Expenses"),
		Timezone:        getEnv("TIMEZONE", "Asia/Taipei"),
		CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		OAuthClientFile: getEnv("GOOGLE_OAUTH_CLIENT_FILE", ""),
		OAuthTokenFile:  getEnv("GOOGLE_OAUTH_TOKEN_FILE", ""),
	}
}

// Validate reports configuration the service cannot run without.
func (c Config) Validate() error {
	if c.SheetName == "" {
		return errors.New("config: sheet name must not be empty")
	}
	if c.Timezone == "" {
		return errors.New("config: timezone must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
