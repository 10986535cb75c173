// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Name     string `yaml:"name,omitempty"`
	SSLMode  string `yaml:"sslmode,omitempty"`
	Password string `yaml:"-"` // Loaded from environment
}

// BookingConfig holds the fallbacks used when the settings table has no value.
type BookingConfig struct {
	DepositPercent   float64 `yaml:"deposit_percent"`
	MinAdvanceHours  float64 `yaml:"min_advance_hours"`
	MaxDurationHours float64 `yaml:"max_duration_hours"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type SchedulerConfig struct {
	StalePendingCron string `yaml:"stale_pending_cron"`
	TierReviewCron   string `yaml:"tier_review_cron"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	// TrustProxy keys clients by X-Forwarded-For/X-Real-IP; enable only behind a proxy that sets them.
	TrustProxy bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		Timezone               string `yaml:"timezone"`
		PhoneRegion            string `yaml:"phone_region"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
		AdminTokenHash         string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Features struct {
		EnableMetrics   bool `yaml:"enable_metrics"`
		EnableScheduler bool `yaml:"enable_scheduler"`
		EnableDebug     bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.AdminTokenHash = os.Getenv("APP_ADMIN_TOKEN_HASH")
	cfg.Database.Password = os.Getenv("DATABASE_PASSWORD")
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults without reading the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used for every field the YAML leaves out.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "courtbook"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.Timezone = "UTC"
	cfg.App.PhoneRegion = "AR"
	cfg.App.ShutdownTimeoutSeconds = 10
	cfg.Database.Driver = DriverSQLite
	cfg.Database.Filename = "data/courtbook.db"
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	cfg.Booking = BookingConfig{
		DepositPercent:   30,
		MinAdvanceHours:  2,
		MaxDurationHours: 3,
	}
	cfg.Scheduler = SchedulerConfig{
		StalePendingCron: "*/15 * * * *",
		TierReviewCron:   "0 3 1 * *",
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             5,
	}
	return &cfg
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid app timezone %q: %w", c.App.Timezone, err)
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	// Validate based on database driver
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for postgres")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database name is required for postgres")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Booking.DepositPercent < 0 || c.Booking.DepositPercent > 100 {
		return fmt.Errorf("booking deposit_percent must be between 0 and 100")
	}
	if c.Booking.MinAdvanceHours < 0 {
		return fmt.Errorf("booking min_advance_hours must not be negative")
	}
	if c.Booking.MaxDurationHours <= 0 {
		return fmt.Errorf("booking max_duration_hours must be positive")
	}

	if c.Features.EnableScheduler {
		for name, spec := range map[string]string{
			"stale_pending_cron": c.Scheduler.StalePendingCron,
			"tier_review_cron":   c.Scheduler.TierReviewCron,
		} {
			if _, err := cron.ParseStandard(spec); err != nil {
				return fmt.Errorf("invalid scheduler %s %q: %w", name, spec, err)
			}
		}
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit requests_per_second and burst must be positive")
	}

	return nil
}

// Location resolves the facility timezone used for reservation dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// EmailEnabled reports whether enough SES settings exist to send mail.
func (c *Config) EmailEnabled() bool {
	return c.Email.Sender != "" && c.Email.Region != ""
}

// PostgresDSN builds a lib/pq connection URL from the database section.
func (d DatabaseConfig) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	query := url.Values{}
	if d.SSLMode != "" {
		query.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = query.Encode()
	return u.String()
}
