package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseTLS      bool   `mapstructure:"DB_TLS"`

	// Connection pool and retry configuration
	DatabaseMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DatabaseMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	AcquireTimeout        time.Duration `mapstructure:"DB_ACQUIRE_TIMEOUT"`
	StatementTimeout      time.Duration `mapstructure:"DB_STATEMENT_TIMEOUT"`
	RetryMaxAttempts      int           `mapstructure:"DB_RETRY_MAX_ATTEMPTS"`
	RetryInitialInterval  time.Duration `mapstructure:"DB_RETRY_INITIAL_INTERVAL"`
	RetryMaxInterval      time.Duration `mapstructure:"DB_RETRY_MAX_INTERVAL"`
	TenantListConcurrency int           `mapstructure:"TENANT_LIST_CONCURRENCY"`

	// Per-caller request rate limit; RATE_LIMIT_RPS <= 0 disables it
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// JWT configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Legacy bootstrap super-admin identity, matched by e-mail
	SuperAdminEmail string `mapstructure:"SUPER_ADMIN_EMAIL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set default values
	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = BuildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "7008")
	v.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "repair_admin")
	v.SetDefault("DB_TLS", false)

	// Pool defaults
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "5s")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "10s")
	v.SetDefault("DB_RETRY_MAX_ATTEMPTS", 3)
	v.SetDefault("DB_RETRY_INITIAL_INTERVAL", "100ms")
	v.SetDefault("DB_RETRY_MAX_INTERVAL", "2s")
	v.SetDefault("TENANT_LIST_CONCURRENCY", 8)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	// JWT defaults
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("SUPER_ADMIN_EMAIL", "")

	// CORS defaults
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})
}

// BuildDatabaseURL assembles a postgres URL from the discrete DB_* settings.
func BuildDatabaseURL(config *Config) string {
	sslMode := "disable"
	if config.DatabaseTLS {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.DatabaseUser, config.DatabasePassword),
		Host:     net.JoinHostPort(config.DatabaseHost, config.DatabasePort),
		Path:     "/" + config.DatabaseName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}
	if config.DatabaseMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if config.AcquireTimeout <= 0 {
		return fmt.Errorf("DB_ACQUIRE_TIMEOUT must be positive")
	}
	if config.RetryMaxAttempts < 1 {
		return fmt.Errorf("DB_RETRY_MAX_ATTEMPTS must be at least 1")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
