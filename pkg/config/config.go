// Package config loads the server's YAML configuration file: read the file,
// yaml.Unmarshal into a typed struct, overlay onto defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	// ListenAddr is the gRPC server's bind address, e.g. ":7443".
	ListenAddr string `yaml:"listenAddr"`
	// MetricsAddr serves /metrics, /health, /ready, /live.
	MetricsAddr string `yaml:"metricsAddr"`

	LogLevel  string `yaml:"logLevel"`
	LogJSON   bool   `yaml:"logJSON"`

	// TokenBusCapacity and MessageBusCapacity bound each subscriber's
	// per-consumer queue on the respective bus (spec default: 16).
	TokenBusCapacity   int `yaml:"tokenBusCapacity"`
	MessageBusCapacity int `yaml:"messageBusCapacity"`

	// AllowSendWithNoSubscribers, when true, makes MessageService.Send
	// succeed even when the message bus has no live subscribers, instead of
	// the default Internal("no subscribers") behavior.
	AllowSendWithNoSubscribers bool `yaml:"allowSendWithNoSubscribers"`

	PushSink PushSinkConfig `yaml:"pushSink"`
}

// PushSinkConfig selects and configures the Push Sink implementation.
type PushSinkConfig struct {
	// Kind is one of "nop", "logging", or "http".
	Kind string `yaml:"kind"`

	// Endpoint and APIKey are used only when Kind is "http".
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		ListenAddr:         ":7443",
		MetricsAddr:        "127.0.0.1:9090",
		LogLevel:           "info",
		TokenBusCapacity:   16,
		MessageBusCapacity: 16,
		PushSink:           PushSinkConfig{Kind: "logging"},
	}
}

// Load reads and parses a YAML config file at path, overlaying it onto
// Default() so a partial file only needs to name the fields it overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
