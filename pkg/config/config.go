// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration. Source CSV paths
// default to well-known names under ExportDir but can be pointed
// anywhere individually.
type Config struct {
	// Directories
	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	ExportDir string `env:"EXPORT_DIR" envDefault:"exports"`
	BackupDir string `env:"BACKUP_DIR" envDefault:"backups"`

	// Source exports
	IncomeCSV        string `env:"INCOME_CSV"`
	A2PCSV           string `env:"A2P_CSV"`
	TasksCSV         string `env:"TASKS_CSV"`
	SubscriptionsCSV string `env:"SUBSCRIPTIONS_CSV"`
	CCDuesCSV        string `env:"CC_DUES_CSV"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from an optional .env file and the
// environment, then validates it.
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.IncomeCSV == "" {
		c.IncomeCSV = filepath.Join(c.ExportDir, "income.csv")
	}
	if c.A2PCSV == "" {
		c.A2PCSV = filepath.Join(c.ExportDir, "a2p.csv")
	}
	if c.TasksCSV == "" {
		c.TasksCSV = filepath.Join(c.ExportDir, "tasks.csv")
	}
	if c.SubscriptionsCSV == "" {
		c.SubscriptionsCSV = filepath.Join(c.ExportDir, "subscriptions.csv")
	}
	if c.CCDuesCSV == "" {
		c.CCDuesCSV = filepath.Join(c.ExportDir, "cc-dues.csv")
	}
}

// Validate ensures all required configuration is present.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory is required")
	}
	if c.BackupDir == "" {
		return errors.New("backup directory is required")
	}
	return nil
}

// Target store paths. These document shapes are shared with the
// dashboard API layer and must not change independently of it.

func (c *Config) BillingStorePath() string {
	return filepath.Join(c.DataDir, "billing-periods.json")
}

func (c *Config) A2PStorePath() string {
	return filepath.Join(c.DataDir, "a2p-registrations.json")
}

func (c *Config) DropsStorePath() string {
	return filepath.Join(c.DataDir, "drops.json")
}

func (c *Config) ClientsStorePath() string {
	return filepath.Join(c.DataDir, "clients.json")
}

// TargetPaths lists every file the migration may write, in backup
// order.
func (c *Config) TargetPaths() []string {
	return []string{
		c.BillingStorePath(),
		c.A2PStorePath(),
		c.DropsStorePath(),
		c.ClientsStorePath(),
	}
}

// SourceFile pairs a source name with its configured path, in the fixed
// inspection order.
type SourceFile struct {
	Name string
	Path string
}

// SourceFiles lists the five fixed source exports. Subscriptions and
// credit-card dues are presence-checked only, never transformed.
func (c *Config) SourceFiles() []SourceFile {
	return []SourceFile{
		{Name: "income", Path: c.IncomeCSV},
		{Name: "a2p", Path: c.A2PCSV},
		{Name: "tasks", Path: c.TasksCSV},
		{Name: "subscriptions", Path: c.SubscriptionsCSV},
		{Name: "cc-dues", Path: c.CCDuesCSV},
	}
}
