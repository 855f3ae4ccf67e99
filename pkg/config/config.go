package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mkirwin/exchange-arb/pkg/types"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Exchange APIs
	SmarketsBaseURL   string
	MatchbookBaseURL  string
	MatchbookUsername string
	MatchbookPassword string

	// Fetching
	FetchTimeout    time.Duration
	EventLimit      int
	SessionCacheTTL time.Duration

	// Scanning
	ScanInterval time.Duration
	Sports       []types.Sport

	// Arbitrage
	Threshold    float64 // max total implied probability, in [0.95, 0.995]
	MinLiquidity float64 // minimum stake available on each leg
	TotalStake   float64 // notional split across the two legs
	Commission   float64 // flat commission rate applied to each return

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Exchange API defaults
		SmarketsBaseURL:   getEnvOrDefault("SMARKETS_API_URL", "https://api.smarkets.com/v3"),
		MatchbookBaseURL:  getEnvOrDefault("MATCHBOOK_API_URL", "https://www.matchbook.com/bpapi/rest"),
		MatchbookUsername: os.Getenv("MATCHBOOK_USERNAME"),
		MatchbookPassword: os.Getenv("MATCHBOOK_PASSWORD"),

		// Fetching defaults
		FetchTimeout:    getDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		EventLimit:      getIntOrDefault("EVENT_LIMIT", 50),
		SessionCacheTTL: getDurationOrDefault("SESSION_CACHE_TTL", 4*time.Hour),

		// Scanning defaults
		ScanInterval: getDurationOrDefault("SCAN_INTERVAL", 60*time.Second),
		Sports:       getSportsOrDefault("SPORT_FILTERS", []types.Sport{types.SportTennis, types.SportFootball}),

		// Arbitrage defaults
		Threshold:    getFloat64OrDefault("ARB_THRESHOLD", 0.98),
		MinLiquidity: getFloat64OrDefault("ARB_MIN_LIQUIDITY", 100.0),
		TotalStake:   getFloat64OrDefault("ARB_TOTAL_STAKE", 1000.0),
		Commission:   getFloat64OrDefault("ARB_COMMISSION", 0.02),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "exchangearb"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "exchangearb123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "exchange_arb"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.SmarketsBaseURL == "" {
		return fmt.Errorf("SMARKETS_API_URL cannot be empty")
	}

	if c.MatchbookBaseURL == "" {
		return fmt.Errorf("MATCHBOOK_API_URL cannot be empty")
	}

	if c.Threshold < 0.95 || c.Threshold > 0.995 {
		return fmt.Errorf("ARB_THRESHOLD must be between 0.95 and 0.995, got %f", c.Threshold)
	}

	if c.MinLiquidity < 0 {
		return fmt.Errorf("ARB_MIN_LIQUIDITY cannot be negative, got %f", c.MinLiquidity)
	}

	if c.TotalStake <= 0 {
		return fmt.Errorf("ARB_TOTAL_STAKE must be positive, got %f", c.TotalStake)
	}

	if c.Commission < 0 || c.Commission > 0.1 {
		return fmt.Errorf("ARB_COMMISSION must be between 0 and 0.1, got %f", c.Commission)
	}

	if len(c.Sports) == 0 {
		return fmt.Errorf("SPORT_FILTERS must enable at least one sport")
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'console', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getSportsOrDefault(key string, defaultValue []types.Sport) []types.Sport {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var sports []types.Sport
	for _, part := range strings.Split(value, ",") {
		sport, ok := types.ParseSport(strings.TrimSpace(strings.ToLower(part)))
		if !ok {
			continue
		}
		sports = append(sports, sport)
	}

	if len(sports) == 0 {
		return defaultValue
	}

	return sports
}
