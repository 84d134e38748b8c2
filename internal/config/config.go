package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Intel     IntelConfig     `yaml:"intel"`
	Billing   BillingConfig   `yaml:"billing"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SMTPConfig contains email service settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// GatewayConfig contains payment gateway settings
type GatewayConfig struct {
	Type      string `yaml:"type"` // "mock" or "http"
	BaseURL   string `yaml:"base_url"`
	SecretKey string `yaml:"secret_key"`
	Currency  string `yaml:"currency"`
}

// IntelConfig contains web intelligence adapter settings
type IntelConfig struct {
	Enabled        bool   `yaml:"enabled"`
	PlacesBaseURL  string `yaml:"places_base_url"`
	PlacesAPIKey   string `yaml:"places_api_key"`
	SocialBaseURL  string `yaml:"social_base_url"`
	SocialToken    string `yaml:"social_token"`
	TextGenBaseURL string `yaml:"textgen_base_url"`
	TextGenAPIKey  string `yaml:"textgen_api_key"`
	TextGenModel   string `yaml:"textgen_model"`
}

// BillingConfig contains invoicing defaults
type BillingConfig struct {
	DefaultTaxRateBps int `yaml:"default_tax_rate_bps"`
	InvoiceDueDays    int `yaml:"invoice_due_days"`
	ReminderGraceDays int `yaml:"reminder_grace_days"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ActivateDueRentals      string `yaml:"activate_due_rentals"`
	CompleteOverdueRentals  string `yaml:"complete_overdue_rentals"`
	SendInvoiceReminders    string `yaml:"send_invoice_reminders"`
	RefreshReputationScores string `yaml:"refresh_reputation_scores"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Pick up a local .env before reading env overrides; absence is fine
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SMTP
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.SMTP.From = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Payment gateway
	if val := os.Getenv("GATEWAY_TYPE"); val != "" {
		c.Gateway.Type = val
	}
	if val := os.Getenv("GATEWAY_BASE_URL"); val != "" {
		c.Gateway.BaseURL = val
	}
	if val := os.Getenv("GATEWAY_SECRET_KEY"); val != "" {
		c.Gateway.SecretKey = val
	}

	// Intel adapters
	if val := os.Getenv("PLACES_API_KEY"); val != "" {
		c.Intel.PlacesAPIKey = val
	}
	if val := os.Getenv("SOCIAL_TOKEN"); val != "" {
		c.Intel.SocialToken = val
	}
	if val := os.Getenv("TEXTGEN_API_KEY"); val != "" {
		c.Intel.TextGenAPIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Payment gateway defaults
	if c.Gateway.Type == "" {
		c.Gateway.Type = "mock"
	}
	if c.Gateway.Type != "mock" && c.Gateway.Type != "http" {
		return fmt.Errorf("unsupported gateway type: %s", c.Gateway.Type)
	}
	if c.Gateway.Type == "http" && c.Gateway.SecretKey == "" {
		return fmt.Errorf("gateway secret key is required for the http gateway")
	}
	if c.Gateway.Currency == "" {
		c.Gateway.Currency = "usd"
	}

	// Billing defaults
	if c.Billing.DefaultTaxRateBps == 0 {
		c.Billing.DefaultTaxRateBps = 800 // 8%
	}
	if c.Billing.InvoiceDueDays == 0 {
		c.Billing.InvoiceDueDays = 14
	}
	if c.Billing.ReminderGraceDays == 0 {
		c.Billing.ReminderGraceDays = 3
	}

	// Scheduler defaults
	if c.Scheduler.ActivateDueRentals == "" {
		c.Scheduler.ActivateDueRentals = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.CompleteOverdueRentals == "" {
		c.Scheduler.CompleteOverdueRentals = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.RefreshReputationScores == "" {
		c.Scheduler.RefreshReputationScores = "0 0 4 * * *" // 4 AM UTC
	}
	if c.Scheduler.SendInvoiceReminders == "" {
		c.Scheduler.SendInvoiceReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
