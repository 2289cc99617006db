package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Environment string
	Port        int
	MetricsPort int
	HealthPort  int

	// Store configuration
	StoreDriver     string // postgres, mysql, sqlite or memory
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SeedTasks       int

	// Observability
	JaegerEndpoint string
	LogLevel       string
	LogFormat      string // json or console

	// Graceful Shutdown
	ShutdownTimeout time.Duration

	// Feature Flags
	EnableMetrics     bool
	EnableTracing     bool
	EnableHealthCheck bool
	EnableReflection  bool

	// Timeouts
	RequestTimeout  time.Duration
	DatabaseTimeout time.Duration
}

func Load() (*Config, error) {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnvAsInt("PORT", 3000),
		MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		HealthPort:  getEnvAsInt("HEALTH_PORT", 9091),

		// Store
		StoreDriver:     getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 1*time.Minute),
		SeedTasks:       getEnvAsInt("SEED_TASKS", 0),

		// Observability
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "localhost:4317"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),

		// Graceful Shutdown
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Feature Flags
		EnableMetrics:     getEnvAsBool("ENABLE_METRICS", true),
		EnableTracing:     getEnvAsBool("ENABLE_TRACING", true),
		EnableHealthCheck: getEnvAsBool("ENABLE_HEALTH_CHECK", true),
		EnableReflection:  getEnvAsBool("ENABLE_REFLECTION", false),

		// Timeouts
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseTimeout: getEnvAsDuration("DATABASE_TIMEOUT", 10*time.Second),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	validDrivers := map[string]bool{
		"postgres": true,
		"mysql":    true,
		"sqlite":   true,
		"memory":   true,
	}
	if !validDrivers[c.StoreDriver] {
		return fmt.Errorf("invalid store driver: %s (valid: postgres, mysql, sqlite, memory)", c.StoreDriver)
	}

	// Database URL is required for every driver except memory
	if c.StoreDriver != "memory" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for store driver %s", c.StoreDriver)
	}

	// Port validation
	for name, port := range map[string]int{"port": c.Port, "metrics port": c.MetricsPort, "health port": c.HealthPort} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: %d", name, port)
		}
	}

	// Connection pool validation
	if c.MaxOpenConns < c.MaxIdleConns {
		return fmt.Errorf("max_open_conns (%d) must be >= max_idle_conns (%d)",
			c.MaxOpenConns, c.MaxIdleConns)
	}

	if c.SeedTasks < 0 {
		return fmt.Errorf("SEED_TASKS must be >= 0, got %d", c.SeedTasks)
	}

	if c.DatabaseTimeout <= 0 {
		return fmt.Errorf("DATABASE_TIMEOUT must be positive")
	}

	// Log level validation
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	// Log format validation
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.LogFormat)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

type StoreConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Timeout         time.Duration
	SeedTasks       int
}

func (c *Config) GetStoreConfig() StoreConfig {
	return StoreConfig{
		Driver:          c.StoreDriver,
		URL:             c.DatabaseURL,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		Timeout:         c.DatabaseTimeout,
		SeedTasks:       c.SeedTasks,
	}
}

type ObservabilityConfig struct {
	EnableMetrics  bool
	EnableTracing  bool
	JaegerEndpoint string
	LogLevel       string
	LogFormat      string
}

func (c *Config) GetObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		EnableMetrics:  c.EnableMetrics,
		EnableTracing:  c.EnableTracing,
		JaegerEndpoint: c.JaegerEndpoint,
		LogLevel:       c.LogLevel,
		LogFormat:      c.LogFormat,
	}
}
