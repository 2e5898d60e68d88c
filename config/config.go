// Package config holds the generator configuration and its loaders.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
)

//go:embed config.yml
var defaultConfigFile embed.FS

type Config struct {
	Scanning   ScanningConfig   `json:"scanning" yaml:"scanning" toml:"scanning"`
	Annotation AnnotationConfig `json:"annotation" yaml:"annotation" toml:"annotation"`
	Output     OutputConfig     `json:"output" yaml:"output" toml:"output"`
	Watcher    WatcherConfig    `json:"watcher" yaml:"watcher" toml:"watcher"`
	LogLevel   logger.LogLevel  `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error none"`
}

// ScanningConfig selects the packages to scan.
type ScanningConfig struct {
	Packages  []string `json:"packages" yaml:"packages" toml:"packages" validate:"required,min=1,dive,required"`
	Dir       string   `json:"dir" yaml:"dir" toml:"dir"` // working directory for package patterns
	Tests     bool     `json:"tests" yaml:"tests" toml:"tests"`
	BuildTags []string `json:"build_tags" yaml:"build_tags" toml:"build_tags" validate:"dive,required"`
}

type AnnotationConfig struct {
	// ClassSuffix is appended to the enum name when no class name is given.
	ClassSuffix string `json:"class_suffix" yaml:"class_suffix" toml:"class_suffix" validate:"required,alphanum"`
	// Aliases are extra names accepted for the EnumerationClass annotation.
	Aliases []string `json:"aliases" yaml:"aliases" toml:"aliases" validate:"dive,required"`
}

type OutputConfig struct {
	// Root is the directory all output paths are relative to. Empty means the main module directory.
	Root           string `json:"root" yaml:"root" toml:"root"`
	FileSuffix     string `json:"file_suffix" yaml:"file_suffix" toml:"file_suffix" validate:"required,endswith=.go,excludes=/"`
	Definitions    bool   `json:"definitions" yaml:"definitions" toml:"definitions"`
	DefinitionsDir string `json:"definitions_dir" yaml:"definitions_dir" toml:"definitions_dir" validate:"required_if=Definitions true"`
	// Clean removes generated files that the current run did not produce.
	Clean       bool `json:"clean" yaml:"clean" toml:"clean"`
	Concurrency int  `json:"concurrency" yaml:"concurrency" toml:"concurrency" validate:"gte=0,lte=64"`
}

type WatcherConfig struct {
	Enabled         bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	DebounceMs      int      `json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms" validate:"gte=0"`
	AdditionalPaths []string `json:"additional_paths" yaml:"additional_paths" toml:"additional_paths"`
	IgnorePatterns  []string `json:"ignore_patterns" yaml:"ignore_patterns" toml:"ignore_patterns"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func NewDefaultConfig() *Config {
	// parse default config from embedded file
	data, err := defaultConfigFile.ReadFile("config.yml")
	if err != nil {
		panic("failed to load default config: " + err.Error())
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic("failed to load default config: " + err.Error())
	}
	return &cfg
}

// LoadConfigFromYAML decodes data over the default configuration.
func LoadConfigFromYAML(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse yaml config")
	}
	return cfg, cfg.Validate()
}

// LoadConfigFromJSON decodes data over the default configuration.
func LoadConfigFromJSON(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse json config")
	}
	return cfg, cfg.Validate()
}

// LoadConfigFromTOML decodes data over the default configuration.
func LoadConfigFromTOML(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse toml config")
	}
	return cfg, cfg.Validate()
}

// LoadConfigFromFile loads a .json, .toml, .yml or .yaml file. Relative scanning and output
// directories are resolved against the file's directory.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = LoadConfigFromJSON(data)
	case ".yml", ".yaml":
		cfg, err = LoadConfigFromYAML(data)
	case ".toml":
		cfg, err = LoadConfigFromTOML(data)
	default:
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "unsupported config format %q", filepath.Ext(path)),
			"use a .yml, .yaml, .toml or .json file")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	base := filepath.Dir(path)
	cfg.Scanning.Dir = resolveDir(base, cfg.Scanning.Dir)
	if cfg.Output.Root != "" {
		cfg.Output.Root = resolveDir(base, cfg.Output.Root)
	}
	return cfg, nil
}

func resolveDir(base, dir string) string {
	if dir == "" {
		return base
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Namespace()+" failed on "+fe.Tag())
			}
			return errors.Wrap(errors.ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return errors.Wrap(err, "failed to validate config")
	}
	return nil
}

// Level returns the log level, defaulting to info.
func (c *Config) Level() logger.LogLevel {
	if c.LogLevel == "" {
		return logger.LogLevelInfo
	}
	return c.LogLevel
}
