package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".diffscope")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default database and log paths live in the config directory
	cfg.Database.Path = filepath.Join(configDir, "diffscope.db")
	defaultLogPath := filepath.Join(configDir, "diffscope.log")

	// Use provided config file path or default
	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// DIFFSCOPE_ENV_FILE overrides where the .env file is loaded from
	if envFilePath := getEnvString("DIFFSCOPE_ENV_FILE", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else if err := godotenv.Load(configFilePath); err != nil {
		// Fall back to a .env in the current directory; absence is not an error
		_ = godotenv.Load(".env")
	}

	cfg.Review = ReviewConfig{
		Extensions:      getEnvList("DIFFSCOPE_REVIEW_EXTENSIONS", nil),
		ExcludePatterns: getEnvList("DIFFSCOPE_REVIEW_EXCLUDE", nil),
		ContextLines:    getEnvInt("DIFFSCOPE_REVIEW_CONTEXT_LINES", 3),
		MaxLineLength:   getEnvInt("DIFFSCOPE_REVIEW_MAX_LINE_LENGTH", 120),
		DefaultTemplate: getEnvString("DIFFSCOPE_REVIEW_TEMPLATE", "comprehensive"),
	}

	cfg.Git = GitConfig{
		DefaultBaseRef: getEnvString("DIFFSCOPE_GIT_BASE_REF", "main"),
	}

	cfg.GitHub = GitHubConfig{
		Token:             getEnvString("DIFFSCOPE_GITHUB_TOKEN", ""),
		APIURL:            getEnvString("DIFFSCOPE_GITHUB_API_URL", "https://api.github.com"),
		RequestTimeout:    getEnvDuration("DIFFSCOPE_GITHUB_TIMEOUT", 30*time.Second),
		RequestsPerMinute: getEnvInt("DIFFSCOPE_GITHUB_RPM", 60),
		MaxRetries:        getEnvInt("DIFFSCOPE_GITHUB_MAX_RETRIES", 3),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("DIFFSCOPE_DB_PATH", cfg.Database.Path),
		JournalMode:     getEnvString("DIFFSCOPE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("DIFFSCOPE_DB_SYNC_MODE", "NORMAL"),
		BusyTimeout:     getEnvInt("DIFFSCOPE_DB_BUSY_TIMEOUT", 5000),
		ForeignKeys:     getEnvBool("DIFFSCOPE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("DIFFSCOPE_DB_CONN_MAX_LIFE", time.Hour),
		QueryTimeout:    getEnvDuration("DIFFSCOPE_DB_QUERY_TIMEOUT", 30*time.Second),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("DIFFSCOPE_LOG_LEVEL", "info"),
		Format:     getEnvString("DIFFSCOPE_LOG_FORMAT", "text"),
		Output:     getEnvString("DIFFSCOPE_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("DIFFSCOPE_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("DIFFSCOPE_LOG_TIME_FORMAT", ""),
	}

	cfg.Server = ServerConfig{
		Addr:         getEnvString("DIFFSCOPE_SERVER_ADDR", ""),
		ReadTimeout:  getEnvDuration("DIFFSCOPE_SERVER_READ_TIMEOUT", 2*time.Minute),
		MaxBodyBytes: getEnvInt("DIFFSCOPE_SERVER_MAX_BODY", 4*1024*1024),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
