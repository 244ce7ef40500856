package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Slack     SlackConfig     `yaml:"slack"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Square    SquareConfig    `yaml:"square"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Dues      DuesConfig      `yaml:"dues"`
	Reminders RemindersConfig `yaml:"reminders"`
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

// SlackConfig contains the incoming-webhook settings for reminder delivery
type SlackConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SendGridConfig contains receipt email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// SquareConfig contains payment provider settings
type SquareConfig struct {
	ApplicationID string `yaml:"application_id"`
	AccessToken   string `yaml:"access_token"`
	LocationID    string `yaml:"location_id"`
	Environment   string `yaml:"environment"` // "sandbox" or "production"
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// DuesConfig contains chapter-wide dues settings
type DuesConfig struct {
	DefaultAmountCents int64  `yaml:"default_amount_cents"`
	PaymentDeadline    string `yaml:"payment_deadline"` // yyyy-mm-dd, optional
}

// RemindersConfig contains default reminder schedule settings
type RemindersConfig struct {
	Hour                int    `yaml:"hour"`
	Minute              int    `yaml:"minute"`
	WeeklySummaryDay    string `yaml:"weekly_summary_day"`    // "mon".."sun"
	BiWeeklyPendingDay  string `yaml:"bi_weekly_pending_day"` // "mon".."sun"
	DeadlineOffsetsDays []int  `yaml:"deadline_offsets_days"` // days before deadline
	SummaryDisplayLimit int    `yaml:"summary_display_limit"` // member lines per bulk message
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
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

	// Slack
	if val := os.Getenv("SLACK_WEBHOOK_URL"); val != "" {
		c.Slack.WebhookURL = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}

	// Square
	if val := os.Getenv("SQUARE_APPLICATION_ID"); val != "" {
		c.Square.ApplicationID = val
	}
	if val := os.Getenv("SQUARE_ACCESS_TOKEN"); val != "" {
		c.Square.AccessToken = val
	}
	if val := os.Getenv("SQUARE_LOCATION_ID"); val != "" {
		c.Square.LocationID = val
	}
	if val := os.Getenv("SQUARE_ENVIRONMENT"); val != "" {
		c.Square.Environment = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Dues
	if val := os.Getenv("PAYMENT_DEADLINE"); val != "" {
		c.Dues.PaymentDeadline = val
	}

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

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Slack defaults
	if c.Slack.TimeoutSeconds <= 0 {
		c.Slack.TimeoutSeconds = 10
	}

	// Square defaults
	if c.Square.Environment == "" {
		c.Square.Environment = "sandbox"
	}

	// Dues validation
	if c.Dues.PaymentDeadline != "" {
		if _, err := time.Parse("2006-01-02", c.Dues.PaymentDeadline); err != nil {
			return fmt.Errorf("invalid payment deadline %q: %w", c.Dues.PaymentDeadline, err)
		}
	}
	if c.Dues.DefaultAmountCents < 0 {
		return fmt.Errorf("default dues amount must not be negative")
	}

	// Reminder defaults
	if c.Reminders.Hour == 0 && c.Reminders.Minute == 0 {
		c.Reminders.Hour = 9
	}
	if c.Reminders.Hour < 0 || c.Reminders.Hour > 23 {
		return fmt.Errorf("invalid reminder hour: %d", c.Reminders.Hour)
	}
	if c.Reminders.Minute < 0 || c.Reminders.Minute > 59 {
		return fmt.Errorf("invalid reminder minute: %d", c.Reminders.Minute)
	}
	if c.Reminders.WeeklySummaryDay == "" {
		c.Reminders.WeeklySummaryDay = "mon"
	}
	if c.Reminders.BiWeeklyPendingDay == "" {
		c.Reminders.BiWeeklyPendingDay = "wed"
	}
	if len(c.Reminders.DeadlineOffsetsDays) == 0 {
		c.Reminders.DeadlineOffsetsDays = []int{7, 3, 1}
	}
	for _, offset := range c.Reminders.DeadlineOffsetsDays {
		if offset < 0 {
			return fmt.Errorf("deadline offset must not be negative: %d", offset)
		}
	}
	if c.Reminders.SummaryDisplayLimit <= 0 {
		c.Reminders.SummaryDisplayLimit = 20
	}

	return nil
}

// PaymentDeadlineTime returns the configured payment deadline, if any
func (c *Config) PaymentDeadlineTime() (time.Time, bool) {
	if c.Dues.PaymentDeadline == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", c.Dues.PaymentDeadline, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
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
