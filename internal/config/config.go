package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// upstream config
	API_BASE_URL     string
	UPSTREAM_TIMEOUT time.Duration
	// service config
	TOP_EARNERS_LIMIT int
	// export config
	EXPORT_TEMPLATE_PATH string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// LoadEnvConfig reads .env files (if any) and populates DefaultEnvConfig.
// A missing .env is fine; the process environment and defaults still apply.
func LoadEnvConfig(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		API_BASE_URL:         strings.TrimRight(getEnvString("API_BASE_URL", "https://dummy.restapiexample.com"), "/"),
		UPSTREAM_TIMEOUT:     getEnvDuration("UPSTREAM_TIMEOUT", 0),
		TOP_EARNERS_LIMIT:    getEnvInt("TOP_EARNERS_LIMIT", 10),
		EXPORT_TEMPLATE_PATH: getEnvString("EXPORT_TEMPLATE_PATH", ""),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
	}
	return DefaultEnvConfig.validate()
}

func (c *envConfig) validate() error {
	u, err := url.Parse(c.API_BASE_URL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.API_BASE_URL)
	}
	if c.UPSTREAM_TIMEOUT < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %v", c.UPSTREAM_TIMEOUT)
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
