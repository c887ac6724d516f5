// Package config provides configuration management for the diffscope application
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// Get returns the global configuration instance
// If the configuration has not been initialized, it will return an error
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	Review    ReviewConfig
	Git       GitConfig
	GitHub    GitHubConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Server    ServerConfig
	configDir string // Internal: Directory where config was loaded from
}

// ReviewConfig controls the detection pipeline
type ReviewConfig struct {
	Extensions      []string // File extensions to include (empty means all)
	ExcludePatterns []string // Substrings that exclude a file from review
	ContextLines    int      // Lines of context around a flagged line in snippets
	MaxLineLength   int      // Threshold for the long-line rule
	DefaultTemplate string   // Template used when none is requested
}

// GitConfig controls local repository access
type GitConfig struct {
	DefaultBaseRef string // Ref compared against when only one ref is given
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token             string        // GitHub Personal Access Token
	APIURL            string        // GitHub API base URL
	RequestTimeout    time.Duration // Request timeout for GitHub API
	RequestsPerMinute int           // Rate limit for API requests
	MaxRetries        int           // Retry attempts for transient failures
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Path            string        // Path to the SQLite database file
	JournalMode     string        // Journal mode (WAL recommended)
	SynchronousMode string        // Synchronous mode
	BusyTimeout     int           // Busy timeout in milliseconds
	ForeignKeys     bool          // Whether to enforce foreign key constraints
	ConnMaxLife     time.Duration // Maximum connection lifetime
	QueryTimeout    time.Duration // Query timeout
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// ServerConfig configures the JSON-RPC tool server
type ServerConfig struct {
	Addr         string        // TCP listen address ("" means stdio only)
	ReadTimeout  time.Duration // Per-connection read timeout
	MaxBodyBytes int           // Maximum request line size
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		Review:   ReviewConfig{},
		Git:      GitConfig{},
		GitHub:   GitHubConfig{},
		Database: DatabaseConfig{},
		Logging:  LoggingConfig{},
		Server:   ServerConfig{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateReview(); err != nil {
		return fmt.Errorf("review config: %w", err)
	}

	if err := c.validateDatabase(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateReview() error {
	if c.Review.ContextLines < 0 {
		return fmt.Errorf("context_lines must not be negative")
	}

	if c.Review.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive")
	}

	if c.Review.DefaultTemplate == "" {
		return fmt.Errorf("default template cannot be empty")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must not be negative")
	}

	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	switch level {
	case "debug", "info", "warn", "error", "none":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated list from the environment variable,
// with surrounding whitespace trimmed and empty entries dropped
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
