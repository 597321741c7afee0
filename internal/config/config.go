package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Billing   BillingConfig   `yaml:"billing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Asaas     AsaasConfig     `yaml:"asaas"`
	Lalamove  LalamoveConfig  `yaml:"lalamove"`
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

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// StorageConfig contains photo storage settings
type StorageConfig struct {
	UploadDir     string `yaml:"upload_dir"`
	BaseURL       string `yaml:"base_url"`
	MaxFileSizeMB int64  `yaml:"max_file_size_mb"`
	MaxPhotos     int    `yaml:"max_photos_per_item"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains auto-billing policy thresholds
type BillingConfig struct {
	AutoBillMaxTotal       float64 `yaml:"auto_bill_max_total"`
	AutoBillMaxAdjustment  float64 `yaml:"auto_bill_max_adjustment"`
	CustomerNotifyMinTotal float64 `yaml:"customer_notify_min_total"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendInspectionReminders    string `yaml:"send_inspection_reminders"`
	RemindStaleSubmittedReports string `yaml:"remind_stale_submitted_reports"`
	PurgeOldWebhookEvents      string `yaml:"purge_old_webhook_events"`
	StaleSubmittedAfterDays    int    `yaml:"stale_submitted_after_days"`
	WebhookRetentionDays       int    `yaml:"webhook_retention_days"`
}

// AsaasConfig contains payment gateway settings
type AsaasConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIKey       string `yaml:"api_key"`
	WebhookToken string `yaml:"webhook_token"`
}

// LalamoveConfig contains delivery dispatch settings
type LalamoveConfig struct {
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key"`
	APISecret     string `yaml:"api_secret"`
	Market        string `yaml:"market"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// Load reads the YAML configuration file, applies environment overrides and defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		c.Email.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("ASAAS_API_KEY"); v != "" {
		c.Asaas.APIKey = v
	}
	if v := os.Getenv("ASAAS_WEBHOOK_TOKEN"); v != "" {
		c.Asaas.WebhookToken = v
	}
	if v := os.Getenv("LALAMOVE_API_KEY"); v != "" {
		c.Lalamove.APIKey = v
	}
	if v := os.Getenv("LALAMOVE_API_SECRET"); v != "" {
		c.Lalamove.APISecret = v
	}
	if v := os.Getenv("LALAMOVE_WEBHOOK_SECRET"); v != "" {
		c.Lalamove.WebhookSecret = v
	}
}

func (c *Config) applyDefaults() error {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret must be configured")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "./uploads"
	}
	if c.Storage.BaseURL == "" {
		c.Storage.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 5
	}
	if c.Storage.MaxPhotos == 0 {
		c.Storage.MaxPhotos = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Billing.AutoBillMaxTotal == 0 {
		c.Billing.AutoBillMaxTotal = 10000
	}
	if c.Billing.AutoBillMaxAdjustment == 0 {
		c.Billing.AutoBillMaxAdjustment = 500
	}
	if c.Billing.CustomerNotifyMinTotal == 0 {
		c.Billing.CustomerNotifyMinTotal = 100
	}
	if c.Scheduler.SendInspectionReminders == "" {
		c.Scheduler.SendInspectionReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.RemindStaleSubmittedReports == "" {
		c.Scheduler.RemindStaleSubmittedReports = "0 0 9 * * *" // 9 AM UTC
	}
	if c.Scheduler.PurgeOldWebhookEvents == "" {
		c.Scheduler.PurgeOldWebhookEvents = "0 30 3 * * *" // 3:30 AM UTC
	}
	if c.Scheduler.StaleSubmittedAfterDays == 0 {
		c.Scheduler.StaleSubmittedAfterDays = 3
	}
	if c.Scheduler.WebhookRetentionDays == 0 {
		c.Scheduler.WebhookRetentionDays = 90
	}
	if c.Asaas.BaseURL == "" {
		c.Asaas.BaseURL = "https://sandbox.asaas.com/api/v3"
	}
	if c.Lalamove.BaseURL == "" {
		c.Lalamove.BaseURL = "https://rest.sandbox.lalamove.com"
	}
	if c.Lalamove.Market == "" {
		c.Lalamove.Market = "BR_SAO"
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
