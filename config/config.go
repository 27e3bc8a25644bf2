package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Lodestone     LodestoneConfig     `yaml:"lodestone"`
	Competition   CompetitionConfig   `yaml:"competition"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
}

// LodestoneConfig points the scraper at a Free Company.
type LodestoneConfig struct {
	BaseURL           string        `yaml:"base_url"`
	FreeCompanyID     string        `yaml:"free_company_id"`
	WorldName         string        `yaml:"world_name"`
	DataCenter        string        `yaml:"data_center"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	CacheSize         int           `yaml:"cache_size"`
	Timeout           time.Duration `yaml:"timeout"`
}

// CompetitionConfig holds the weekly competition rules.
type CompetitionConfig struct {
	ContractAmounts []int64         `yaml:"contract_amounts"`
	Payouts         map[int64]int64 `yaml:"payouts"`
	ResetSchedule   string          `yaml:"reset_schedule"`
	ResetEnabled    bool            `yaml:"reset_enabled"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	ServiceName    string `yaml:"service_name"`
}

// Defaults for a Siren Free Company on Aether.
const (
	DefaultLodestoneURL   = "https://na.finalfantasyxiv.com/lodestone"
	DefaultWorldName      = "Siren"
	DefaultDataCenter     = "Aether"
	DefaultCacheTTL       = 300 * time.Second
	DefaultResetSchedule  = "next tuesday at 8:00 am"
	DefaultMetricsAddress = ":8080"
	DefaultServiceName    = "ffxivbot"
)

// DefaultPayouts pays each contract amount on completion.
func DefaultPayouts() map[int64]int64 {
	return map[int64]int64{
		300000:  450000,
		420000:  550000,
		500000:  650000,
		800000:  900000,
		1000000: 3200000,
	}
}

// DefaultContractAmounts returns the pledge amounts players may choose.
func DefaultContractAmounts() []int64 {
	return []int64{300000, 420000, 500000, 800000, 1000000}
}

// LoadDotEnv loads .env files into the environment. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file. Environment variables
// override the file. Without a file, DATABASE_URL and NATS_URL are required.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if os.Getenv("DATABASE_URL") == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set")
		}
		if os.Getenv("NATS_URL") == "" {
			return nil, fmt.Errorf("NATS_URL environment variable not set")
		}
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	overrides := map[string]*string{
		"DATABASE_URL":    &cfg.Postgres.DSN,
		"NATS_URL":        &cfg.NATS.URL,
		"NATS_NKEY_SEED":  &cfg.NATS.NKeySeed,
		"LODESTONE_URL":   &cfg.Lodestone.BaseURL,
		"FREE_COMPANY_ID": &cfg.Lodestone.FreeCompanyID,
		"WORLD_NAME":      &cfg.Lodestone.WorldName,
		"DATA_CENTER":     &cfg.Lodestone.DataCenter,
		"RESET_SCHEDULE":  &cfg.Competition.ResetSchedule,
		"METRICS_ADDRESS": &cfg.Observability.MetricsAddress,
		"ENV":             &cfg.Observability.Environment,
		"SERVICE_NAME":    &cfg.Observability.ServiceName,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("RESET_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RESET_ENABLED value: %w", err)
		}
		cfg.Competition.ResetEnabled = b
	}
	if v := os.Getenv("LODESTONE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LODESTONE_CACHE_TTL value: %w", err)
		}
		cfg.Lodestone.CacheTTL = d
	}
	if v := os.Getenv("LODESTONE_REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LODESTONE_REQUESTS_PER_SECOND value: %w", err)
		}
		cfg.Lodestone.RequestsPerSecond = f
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Lodestone.BaseURL == "" {
		c.Lodestone.BaseURL = DefaultLodestoneURL
	}
	if c.Lodestone.WorldName == "" {
		c.Lodestone.WorldName = DefaultWorldName
	}
	if c.Lodestone.DataCenter == "" {
		c.Lodestone.DataCenter = DefaultDataCenter
	}
	if c.Lodestone.CacheTTL == 0 {
		c.Lodestone.CacheTTL = DefaultCacheTTL
	}
	if len(c.Competition.ContractAmounts) == 0 {
		c.Competition.ContractAmounts = DefaultContractAmounts()
	}
	if len(c.Competition.Payouts) == 0 {
		c.Competition.Payouts = DefaultPayouts()
	}
	if c.Competition.ResetSchedule == "" {
		c.Competition.ResetSchedule = DefaultResetSchedule
	}
	if c.Observability.MetricsAddress == "" {
		c.Observability.MetricsAddress = DefaultMetricsAddress
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = DefaultServiceName
	}
}

// Validate reports settings the bot cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is required"))
	}
	if c.NATS.URL == "" {
		errs = append(errs, errors.New("nats.url is required"))
	}
	if c.Lodestone.FreeCompanyID == "" {
		errs = append(errs, errors.New("lodestone.free_company_id is required"))
	}
	for _, amount := range c.Competition.ContractAmounts {
		if amount <= 0 {
			errs = append(errs, fmt.Errorf("competition.contract_amounts: %d is not positive", amount))
		}
	}
	return errors.Join(errs...)
}

// IsProduction reports whether logs should be JSON.
func (c *Config) IsProduction() bool {
	return c.Observability.Environment == "production" || c.Observability.Environment == "prod"
}
