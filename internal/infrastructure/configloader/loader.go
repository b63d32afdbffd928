package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// NeynarConfig holds the configuration for the Neynar API client (profile
// resolution and balance lookup).
type NeynarConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateBurst            int     `yaml:"rateBurst"`
}

// BankrConfig holds the configuration for the Bankr wallet enrichment client.
type BankrConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ProfileServiceConfig holds configuration for the ProfileService.
type ProfileServiceConfig struct {
	CacheTTLMinutes        int `yaml:"cacheTTLMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// PortfolioServiceConfig holds configuration for the PortfolioService.
type PortfolioServiceConfig struct {
	Networks             []string `yaml:"networks"`
	DefaultHoldingsLimit int      `yaml:"defaultHoldingsLimit"`
	MaxConcurrentFetches int      `yaml:"maxConcurrentFetches"`
	CacheTTLSeconds      int      `yaml:"cacheTTLSeconds"`
}

// FiltersConfig points at the holdings filter list data file.
type FiltersConfig struct {
	File string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig           `yaml:"server"`
	Logging      LoggingConfig          `yaml:"logging"`
	Neynar       NeynarConfig           `yaml:"neynar"`
	Bankr        BankrConfig            `yaml:"bankr"`
	ProfileSvc   ProfileServiceConfig   `yaml:"profileService"`
	PortfolioSvc PortfolioServiceConfig `yaml:"portfolioService"`
	Filters      FiltersConfig          `yaml:"filters"`
	Swagger      SwaggerConfig          `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and applies defaults for anything left unset. The NEYNAR_API_KEY environment
// variable overrides the configured API key so the secret can stay out of the
// file.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if key := os.Getenv("NEYNAR_API_KEY"); key != "" {
		cfg.Neynar.APIKey = key
	}
	if cfg.Neynar.APIKey == "" {
		logrus.Warn("Neynar API key is not set; profile and balance lookups will be rejected upstream")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Neynar.BaseURL == "" {
		cfg.Neynar.BaseURL = "https://api.neynar.com"
		logrus.Infof("Neynar.BaseURL not set, defaulting to %s", cfg.Neynar.BaseURL)
	}
	if cfg.Neynar.RequestTimeoutMillis <= 0 {
		cfg.Neynar.RequestTimeoutMillis = 10000
	}
	if cfg.Neynar.RateLimitPerSecond <= 0 {
		cfg.Neynar.RateLimitPerSecond = 5
	}
	if cfg.Neynar.RateBurst <= 0 {
		cfg.Neynar.RateBurst = 10
	}

	if cfg.Bankr.BaseURL == "" {
		cfg.Bankr.BaseURL = "https://api.bankr.bot"
		logrus.Infof("Bankr.BaseURL not set, defaulting to %s", cfg.Bankr.BaseURL)
	}
	if cfg.Bankr.RequestTimeoutMillis <= 0 {
		cfg.Bankr.RequestTimeoutMillis = 5000
	}

	if cfg.ProfileSvc.CacheTTLMinutes <= 0 {
		cfg.ProfileSvc.CacheTTLMinutes = 5
	}
	if cfg.ProfileSvc.CleanupIntervalMinutes <= 0 {
		cfg.ProfileSvc.CleanupIntervalMinutes = 10
	}

	if len(cfg.PortfolioSvc.Networks) == 0 {
		cfg.PortfolioSvc.Networks = []string{"base"}
	}
	if cfg.PortfolioSvc.DefaultHoldingsLimit <= 0 {
		cfg.PortfolioSvc.DefaultHoldingsLimit = 10
	}
	if cfg.PortfolioSvc.MaxConcurrentFetches <= 0 {
		cfg.PortfolioSvc.MaxConcurrentFetches = 4
	}
	if cfg.PortfolioSvc.CacheTTLSeconds <= 0 {
		cfg.PortfolioSvc.CacheTTLSeconds = 30
	}

	if cfg.Filters.File == "" {
		cfg.Filters.File = "data/filters.yml"
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
}
