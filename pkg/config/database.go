package config

import (
	"fmt"
	"strings"
	"time"
)

type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the database configuration with credentials masked.
func (c *DatabaseConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", MaskURL(c.URL)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !isValidPostgresURL(c.URL) && !isValidSQLiteURL(c.URL) && !isMemoryURL(c.URL) {
		return fmt.Errorf("database URL must start with 'postgres://', 'sqlite://' or 'memory://': %s", MaskURL(c.URL))
	}
	if isValidSQLiteURL(c.URL) && strings.TrimPrefix(c.URL, "sqlite://") == "" {
		return fmt.Errorf("sqlite database URL has no file path")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}

// MaskURL hides the user info part of a connection URL.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if isValidSQLiteURL(url) || isMemoryURL(url) {
		return url
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// isValidPostgresURL checks if the provided URL is a valid PostgreSQL URL
func isValidPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}

func isValidSQLiteURL(url string) bool {
	return strings.HasPrefix(url, "sqlite://")
}

func isMemoryURL(url string) bool {
	return strings.HasPrefix(url, "memory://")
}
