package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Generator GeneratorConfig
	Report    ReportConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

// GeneratorConfig controls the synthetic dataset run
type GeneratorConfig struct {
	// Seed makes a run reproducible; the same seed always yields the same dataset
	Seed int64
	// ReferenceDate is the "current date" the generator measures against,
	// in YYYY-MM-DD form. Empty means today.
	ReferenceDate string
	Healthy       int
	MediumRisk    int
	HighRisk      int
	ClosedWon     int
	ClosedLost    int
	// OutputPath is where the opportunity CSV is written
	OutputPath string
	// SnapshotEnabled persists the dataset to the SQL snapshot store as well,
	// for the external scoring model to consume
	SnapshotEnabled bool
}

// ReferenceTime parses the configured reference date, defaulting to today
func (g *GeneratorConfig) ReferenceTime() (time.Time, error) {
	if g.ReferenceDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", g.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid generator reference date %q: %w", g.ReferenceDate, err)
	}
	return t, nil
}

// ReportConfig controls the report run
type ReportConfig struct {
	OpportunitiesPath string
	AlertsPath        string
	OutputPath        string
	TopAlerts         int
	TopReps           int
}

// DatabaseConfig holds the snapshot store connection settings.
// Driver is "sqlite" for local runs or "postgres" when a shared store is used.
type DatabaseConfig struct {
	Driver          string
	Path            string // sqlite file path
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// ConnectionString builds the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configuration errors before any output is produced
func (c *Config) Validate() error {
	for name, count := range map[string]int{
		"generator.healthy":    c.Generator.Healthy,
		"generator.mediumrisk": c.Generator.MediumRisk,
		"generator.highrisk":   c.Generator.HighRisk,
		"generator.closedwon":  c.Generator.ClosedWon,
		"generator.closedlost": c.Generator.ClosedLost,
	} {
		if count < 0 {
			return fmt.Errorf("%s must not be negative (got %d)", name, count)
		}
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres (got %q)", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "pipeline-health")
	v.SetDefault("app.environment", "development")

	// Generator defaults: the standard 50-deal demo mix
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.referencedate", "")
	v.SetDefault("generator.healthy", 30)
	v.SetDefault("generator.mediumrisk", 10)
	v.SetDefault("generator.highrisk", 5)
	v.SetDefault("generator.closedwon", 3)
	v.SetDefault("generator.closedlost", 2)
	v.SetDefault("generator.outputpath", "data/salesforce_opportunities.csv")
	v.SetDefault("generator.snapshotenabled", false)

	// Report defaults
	v.SetDefault("report.opportunitiespath", "data/salesforce_opportunities.csv")
	v.SetDefault("report.alertspath", "data/dashboard_data.json")
	v.SetDefault("report.outputpath", "data/pipeline_report.json")
	v.SetDefault("report.topalerts", 10)
	v.SetDefault("report.topreps", 8)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/pipeline.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pipeline_health")
	v.SetDefault("database.user", "pipeline_user")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 10)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
