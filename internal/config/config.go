package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Google Sheets mirror modes.
const (
	SyncModeSync   = "sync"   // mirror written on the request path
	SyncModeWorker = "worker" // mirror written by the AMQP worker
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Export
	ExportXLSXPath  string
	ExportSheetName string

	// Presentation
	CurrencySymbol string

	// Logging
	LogLevel string

	// AMQP (empty URL disables events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (empty spreadsheet id disables it)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	GoogleSyncMode           string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		ExportXLSXPath:  getEnv("EXPORT_XLSX_PATH", "./data/daily_expenses.xlsx"),
		ExportSheetName: getEnv("EXPORT_SHEET_NAME", "Expenses"),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleSyncMode:           strings.ToLower(getEnv("GOOGLE_SYNC_MODE", SyncModeSync)),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// GoogleEnabled reports whether the Sheets mirror is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// AMQPEnabled reports whether mutation events are published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	if c.ExportXLSXPath == "" {
		errors = append(errors, "export path cannot be empty")
	} else if !strings.EqualFold(filepath.Ext(c.ExportXLSXPath), ".xlsx") {
		errors = append(errors, fmt.Sprintf("invalid export path '%s': must end in .xlsx", c.ExportXLSXPath))
	}

	// Excel limits sheet names to 31 characters.
	if c.ExportSheetName == "" {
		errors = append(errors, "export sheet name cannot be empty")
	} else if utf8.RuneCountInString(c.ExportSheetName) > 31 {
		errors = append(errors, fmt.Sprintf("invalid export sheet name '%s': at most 31 characters", c.ExportSheetName))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSyncMode != SyncModeSync && c.GoogleSyncMode != SyncModeWorker {
		errors = append(errors, fmt.Sprintf("invalid Google sync mode '%s': must be 'sync' or 'worker'", c.GoogleSyncMode))
	}

	if c.GoogleSpreadsheetID != "" {
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != ""
		if !hasJSON && !hasFile {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided when GOOGLE_SPREADSHEET_ID is set")
		}
		if hasFile && !hasJSON {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
		if c.GoogleSyncMode == SyncModeWorker && c.AMQPURL == "" {
			errors = append(errors, "GOOGLE_SYNC_MODE=worker requires AMQP_URL")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
