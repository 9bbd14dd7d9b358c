// Package config provides application configuration.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ashureev/learnzverse/internal/transcript"
	"github.com/m-mizutani/goerr/v2"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	DBPath      string
	CachePath   string
	PrefsPath   string
	LogLevel    string
	CORSOrigins []string
	Transcript  TranscriptConfig
}

// TranscriptConfig controls NDJSON transcript logging.
type TranscriptConfig struct {
	Enabled bool
	Dir     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "./data/learnzverse.db"),
		CachePath:   getEnv("CACHE_PATH", "./data/response_cache.json"),
		PrefsPath:   getEnv("PREFS_PATH", "./data/preferences.yaml"),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		Transcript: TranscriptConfig{
			Enabled: getEnvBool("TRANSCRIPT_ENABLED", true),
			Dir:     getEnv("TRANSCRIPT_DIR", "./data/transcripts"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return goerr.New("PORT cannot be empty")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return goerr.New("PORT must be a number between 1 and 65535", goerr.V("port", c.Port))
	}
	if c.DBPath == "" {
		return goerr.New("DB_PATH cannot be empty")
	}
	if c.CachePath == "" {
		return goerr.New("CACHE_PATH cannot be empty")
	}
	if c.PrefsPath == "" {
		return goerr.New("PREFS_PATH cannot be empty")
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		return goerr.New("TRANSCRIPT_DIR cannot be empty when transcripts are enabled")
	}
	return nil
}

// TranscriptOptions converts the transcript section for transcript.New.
func (c *Config) TranscriptOptions() transcript.Config {
	return transcript.Config{
		Enabled: c.Transcript.Enabled,
		Dir:     c.Transcript.Dir,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
