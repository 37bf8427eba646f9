// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Logging    LoggingConfig
	CORS       CORSConfig
	JWT        JWTConfig
	Moderation ModerationConfig
	Search     SearchConfig
	RateLimit  RateLimitConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds the secret used to verify access tokens issued by the identity service
type JWTConfig struct {
	Secret string
}

// ModerationConfig holds moderation privilege and transition settings
type ModerationConfig struct {
	// ModeratorRole is the minimal role claim granting moderation privilege.
	ModeratorRole int
	// AdminEmail and LegacyEmailCheck enable the email based privilege rule.
	AdminEmail       string
	LegacyEmailCheck bool
	// AllowTerminalSwitch permits approved -> rejected and rejected -> approved transitions.
	AllowTerminalSwitch bool
}

// SearchConfig holds pagination bounds for search endpoints
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// RateLimitConfig holds per-IP rate limit settings
type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Moderation configuration
	if cfg.Moderation.ModeratorRole, err = intEnv("MODERATOR_ROLE", 3); err != nil {
		return nil, err
	}
	cfg.Moderation.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.Moderation.LegacyEmailCheck, err = boolEnv("MODERATION_LEGACY_EMAIL_CHECK", false); err != nil {
		return nil, err
	}
	if cfg.Moderation.AllowTerminalSwitch, err = boolEnv("MODERATION_ALLOW_TERMINAL_SWITCH", true); err != nil {
		return nil, err
	}

	// Search configuration
	if cfg.Search.DefaultLimit, err = intEnv("SEARCH_DEFAULT_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.Search.MaxLimit, err = intEnv("SEARCH_MAX_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.Search.DefaultLimit <= 0 || cfg.Search.MaxLimit <= 0 {
		return nil, fmt.Errorf("search limits must be positive")
	}
	if cfg.Search.DefaultLimit > cfg.Search.MaxLimit {
		return nil, fmt.Errorf("SEARCH_DEFAULT_LIMIT must not exceed SEARCH_MAX_LIMIT")
	}

	// Rate limit configuration
	if cfg.RateLimit.RequestsPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the database connection string
//
// Empty string is returned when no database host is configured.
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// parseOrigins parses comma-separated origins, defaulting to allow all
func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			result = append(result, origin)
		}
	}
	// If no valid origins found, default to allow all
	if len(result) == 0 {
		return []string{"*"}
	}
	return result
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
