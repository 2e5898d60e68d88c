package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, []string{"./..."}, cfg.Scanning.Packages)
	assert.Equal(t, "Enumeration", cfg.Annotation.ClassSuffix)
	assert.Equal(t, "_enumeration_gen.go", cfg.Output.FileSuffix)
	assert.True(t, cfg.Output.Definitions)
	assert.Equal(t, ".enumgen", cfg.Output.DefinitionsDir)
	assert.Equal(t, 500, cfg.Watcher.DebounceMs)
	assert.Equal(t, logger.LogLevelInfo, cfg.Level())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromYAMLKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfigFromYAML([]byte(`
scanning:
  packages: [./cards/..., ./models]
output:
  clean: true
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"./cards/...", "./models"}, cfg.Scanning.Packages)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, "_enumeration_gen.go", cfg.Output.FileSuffix)
	assert.Equal(t, logger.LogLevelDebug, cfg.Level())
}

func TestLoadConfigFromYAMLEmpty(t *testing.T) {
	cfg, err := LoadConfigFromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadConfigFromJSON(t *testing.T) {
	cfg, err := LoadConfigFromJSON([]byte(`{"annotation": {"class_suffix": "Kind", "aliases": ["smartEnum"]}}`))
	require.NoError(t, err)
	assert.Equal(t, "Kind", cfg.Annotation.ClassSuffix)
	assert.Equal(t, []string{"smartEnum"}, cfg.Annotation.Aliases)

	_, err = LoadConfigFromJSON([]byte(`{"unknown": 1}`))
	assert.Error(t, err)
}

func TestLoadConfigFromTOML(t *testing.T) {
	cfg, err := LoadConfigFromTOML([]byte(`
log_level = "warn"

[output]
file_suffix = "_enum.go"
concurrency = 2

[watcher]
ignore_patterns = ["vendor", "testdata"]
`))
	require.NoError(t, err)
	assert.Equal(t, "_enum.go", cfg.Output.FileSuffix)
	assert.Equal(t, 2, cfg.Output.Concurrency)
	assert.True(t, cfg.Output.Definitions)
	assert.Equal(t, []string{"vendor", "testdata"}, cfg.Watcher.IgnorePatterns)
	assert.Equal(t, logger.LogLevelWarn, cfg.Level())

	_, err = LoadConfigFromTOML([]byte("[output]\nsuffix = \"x\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no packages", func(c *Config) { c.Scanning.Packages = nil }},
		{"empty package pattern", func(c *Config) { c.Scanning.Packages = []string{""} }},
		{"bad suffix", func(c *Config) { c.Output.FileSuffix = "_gen.txt" }},
		{"suffix with directory", func(c *Config) { c.Output.FileSuffix = "gen/x.go" }},
		{"missing definitions dir", func(c *Config) { c.Output.DefinitionsDir = "" }},
		{"bad class suffix", func(c *Config) { c.Annotation.ClassSuffix = "Enum-Class" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative debounce", func(c *Config) { c.Watcher.DebounceMs = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}

	cfg := NewDefaultConfig()
	cfg.Output.Definitions = false
	cfg.Output.DefinitionsDir = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enumgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanning:\n  dir: src\noutput:\n  root: out\n"), 0o644))

	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Scanning.Dir)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Output.Root)

	tomlPath := filepath.Join(dir, "enumgen.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[scanning]\ndir = \"/abs/src\"\n"), 0o644))
	cfg, err = LoadConfigFromFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "/abs/src", cfg.Scanning.Dir)

	bad := filepath.Join(dir, "enumgen.ini")
	require.NoError(t, os.WriteFile(bad, []byte(""), 0o644))
	_, err = LoadConfigFromFile(bad)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = LoadConfigFromFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
