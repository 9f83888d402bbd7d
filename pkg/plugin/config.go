package plugin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the plugin flags. The zero value has every flag off.
type Config struct {
	// Verbose enables verbose logging.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	// LogSteps enables step-by-step execution logging.
	LogSteps bool `json:"log_steps" yaml:"log_steps" mapstructure:"log_steps"`
	// TraceCalls enables call tracing.
	TraceCalls bool `json:"trace_calls" yaml:"trace_calls" mapstructure:"trace_calls"`
}

// NewConfig returns a config with the given verbosity and step/call tracing on.
func NewConfig(verbose bool) Config {
	return Config{
		Verbose:    verbose,
		LogSteps:   true,
		TraceCalls: true,
	}
}

// NewDetailedConfig returns a config with every flag set explicitly.
func NewDetailedConfig(verbose, logSteps, traceCalls bool) Config {
	return Config{
		Verbose:    verbose,
		LogSteps:   logSteps,
		TraceCalls: traceCalls,
	}
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("verbose", c.Verbose),
		slog.Bool("log_steps", c.LogSteps),
		slog.Bool("trace_calls", c.TraceCalls),
	)
}

// LoadConfig reads a configuration file (YAML or JSON, picked by extension).
// A missing file yields the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read plugin config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return cfg, nil
	}

	// Default to YAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// DecodeConfig converts a loosely typed map handed over by a host (e.g. a parsed
// node config section) into a Config. String booleans such as "true" are accepted.
func DecodeConfig(raw map[string]any) (Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid plugin config: %w", err)
	}
	return cfg, nil
}

// ParseConfig decodes a JSON config blob, as handed to live tracers by a geth node.
// An empty blob yields the zero Config.
func ParseConfig(raw json.RawMessage) (Config, error) {
	var cfg Config
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid plugin config: %w", err)
	}
	return cfg, nil
}
