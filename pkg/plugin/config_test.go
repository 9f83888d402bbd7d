package plugin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tracehook/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    plugin.Config
	}{
		{
			name:    "yaml",
			file:    "plugin.yaml",
			content: "verbose: true\nlog_steps: false\ntrace_calls: true\n",
			want:    plugin.Config{Verbose: true, TraceCalls: true},
		},
		{
			name:    "json",
			file:    "plugin.json",
			content: `{"verbose": false, "log_steps": true, "trace_calls": true}`,
			want:    plugin.Config{LogSteps: true, TraceCalls: true},
		},
		{
			name:    "partial yaml keeps defaults",
			file:    "plugin.yml",
			content: "log_steps: true\n",
			want:    plugin.Config{LogSteps: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := plugin.LoadConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := plugin.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, plugin.Config{}, cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := plugin.LoadConfig(writeFile(t, "plugin.json", `{"verbose": "maybe"`))
	assert.Error(t, err)

	_, err = plugin.LoadConfig(writeFile(t, "plugin.yaml", "verbose: [1, 2"))
	assert.Error(t, err)
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := plugin.DecodeConfig(map[string]any{
		"verbose":     "true",
		"trace_calls": true,
	})
	require.NoError(t, err)
	assert.Equal(t, plugin.Config{Verbose: true, TraceCalls: true}, cfg)

	_, err = plugin.DecodeConfig(map[string]any{"log_every": 10})
	assert.Error(t, err, "unknown keys are rejected")
}

func TestParseConfig(t *testing.T) {
	cfg, err := plugin.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, plugin.Config{}, cfg)

	cfg, err = plugin.ParseConfig([]byte(`{"log_steps":true}`))
	require.NoError(t, err)
	assert.Equal(t, plugin.Config{LogSteps: true}, cfg)

	_, err = plugin.ParseConfig([]byte(`[]`))
	assert.Error(t, err)
}
