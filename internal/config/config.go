package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/abgdnv/productcrud/pkg/config"
	"github.com/abgdnv/productcrud/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Events     config.EventsConfig     `koanf:"events"`
}

// Defaults returns the settings used when neither config.yaml nor the environment provide a value.
// With no configuration at all the service serves HTTP on :8080 from ./products.db.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":                        8080,
		"server.maxHeaderBytes":              1 << 20,
		"server.timeout.read":                5 * time.Second,
		"server.timeout.write":               10 * time.Second,
		"server.timeout.idle":                120 * time.Second,
		"server.timeout.readHeader":          2 * time.Second,
		"database.url":                       "sqlite://./products.db",
		"database.timeout":                   5 * time.Second,
		"log.level":                          "info",
		"pprof.enabled":                      false,
		"pprof.addr":                         "localhost:6060",
		"grpc.enabled":                       false,
		"grpc.port":                          "50051",
		"grpc.reflection":                    false,
		"shutdown.timeout":                   10 * time.Second,
		"telemetry.enabled":                  false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  5 * time.Second,
		"events.enabled":                     false,
		"events.stream":                      "PRODUCTS",
		"events.nats.url":                    "nats://localhost:4222",
		"events.nats.timeout":                5 * time.Second,
	}
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Events.String())
	b.WriteString(c.Shutdown.String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.Telemetry,
		&c.Events,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}
