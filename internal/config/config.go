package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port        int
	Environment string
	Uptime      UptimeConfig
	Database    DatabaseConfig
	VPNAPIKey   string
}

// UptimeConfig holds settings for the upstream uptime provider
type UptimeConfig struct {
	APIKey      string
	APIURL      string
	MonitorID   string
	ServiceName string
	LogsLimit   int
	// RefreshInterval is the background poll interval in seconds
	RefreshInterval int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type         string // postgres
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Load loads configuration from environment variables.
//
// UPTIMEROBOT_API_KEY is deliberately not validated here: a missing key is
// surfaced as a 500 on each status request rather than preventing startup,
// so the maintenance and VPN-check endpoints keep working without it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "production"),
		Uptime: UptimeConfig{
			APIKey:          os.Getenv("UPTIMEROBOT_API_KEY"),
			APIURL:          getEnv("UPTIMEROBOT_API_URL", "https://api.uptimerobot.com/v2"),
			MonitorID:       getEnv("UPTIMEROBOT_MONITOR_ID", "802022031"),
			ServiceName:     getEnv("SERVICE_NAME", "bloby.eu"),
			LogsLimit:       getEnvInt("UPTIMEROBOT_LOGS_LIMIT", 50),
			RefreshInterval: getEnvInt("REFRESH_INTERVAL", 60),
		},
		Database: DatabaseConfig{
			Type:         getEnv("DATABASE_TYPE", "postgres"),
			DSN:          getEnv("DATABASE_DSN", buildPostgresDSN()),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},
		VPNAPIKey: os.Getenv("VPNAPI_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func buildPostgresDSN() string {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "statuspage")
	password := getEnv("POSTGRES_PASSWORD", "secret")
	dbName := getEnv("POSTGRES_DB", "statuspage")
	sslMode := getEnv("POSTGRES_SSLMODE", "disable")

	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(user, password),
		Host:   fmt.Sprintf("%s:%s", host, port),
		Path:   dbName,
	}

	query := u.Query()
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()

	return u.String()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	if !strings.HasPrefix(c.Uptime.APIURL, "http://") && !strings.HasPrefix(c.Uptime.APIURL, "https://") {
		return fmt.Errorf("UPTIMEROBOT_API_URL must start with http:// or https://")
	}

	if c.Uptime.MonitorID == "" {
		return fmt.Errorf("UPTIMEROBOT_MONITOR_ID must not be empty")
	}

	if c.Uptime.LogsLimit <= 0 {
		return fmt.Errorf("UPTIMEROBOT_LOGS_LIMIT must be positive")
	}

	if c.Uptime.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
