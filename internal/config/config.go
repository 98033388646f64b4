// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/json2struct/internal/logging"
)

// Rendering defaults
const (
	DefaultTagKey      = "json"
	DefaultIndentWidth = 4
)

// Processing safety cap defaults
const (
	DefaultMaxInputBytes = 8 << 20
	DefaultWorkers       = 4
	DefaultCacheMaxItems = 256
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	TagKey        string // J2S_TAG_KEY, default "json"
	IndentWidth   int    // J2S_INDENT, default 4 (0 = tabs)
	Gofmt         bool   // J2S_GOFMT, default false
	MaxInputBytes int    // J2S_MAX_INPUT_BYTES, default 8 MiB
	Workers       int    // J2S_WORKERS, default 4
	CacheMaxItems int    // J2S_CACHE_MAX_ITEMS, default 256

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		TagKey:        getEnvString("J2S_TAG_KEY", DefaultTagKey),
		IndentWidth:   getEnvInt("J2S_INDENT", DefaultIndentWidth),
		Gofmt:         getEnvBool("J2S_GOFMT", false),
		MaxInputBytes: getEnvInt("J2S_MAX_INPUT_BYTES", DefaultMaxInputBytes),
		Workers:       getEnvInt("J2S_WORKERS", DefaultWorkers),
		CacheMaxItems: getEnvInt("J2S_CACHE_MAX_ITEMS", DefaultCacheMaxItems),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Logging returns the logging section of the configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
