package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/tracehook/pkg/plugin"
	"gopkg.in/yaml.v3"
)

// ConfigOverrides holds the flags the user set explicitly. Nil means "keep the file value".
type ConfigOverrides struct {
	Verbose    *bool
	LogSteps   *bool
	TraceCalls *bool
}

// ResolveConfig loads the config file (if any) and applies the overrides on top.
func ResolveConfig(path string, overrides ConfigOverrides) (plugin.Config, error) {
	cfg := plugin.Config{}
	if path != "" {
		loaded, err := plugin.LoadConfig(path)
		if err != nil {
			return plugin.Config{}, fmt.Errorf("error loading config %s: %w", path, err)
		}
		cfg = loaded
	}

	if overrides.Verbose != nil {
		cfg.Verbose = *overrides.Verbose
	}
	if overrides.LogSteps != nil {
		cfg.LogSteps = *overrides.LogSteps
	}
	if overrides.TraceCalls != nil {
		cfg.TraceCalls = *overrides.TraceCalls
	}
	return cfg, nil
}

// PrintConfig writes the effective config as YAML.
func PrintConfig(w io.Writer, path string, overrides ConfigOverrides) error {
	cfg, err := ResolveConfig(path, overrides)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return enc.Close()
}
