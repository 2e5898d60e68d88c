// Command enumgen generates enumeration classes for annotated Go enums.
//
//	//go:generate go run github.com/pablor21/enumclass/cmd/enumgen gen .
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/pablor21/enumclass"
	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/parser"
	"github.com/pablor21/enumclass/sink"
	"github.com/pablor21/enumclass/types"
)

// Project configuration files looked up in the working directory when --config is not set.
var defaultConfigFiles = []string{"enumgen.yml", "enumgen.yaml", "enumgen.toml", "enumgen.json"}

type Globals struct {
	Config   string `help:"Project configuration file (.yml, .yaml, .toml or .json)." short:"c" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error, none)."`
	JSONLog  bool   `help:"Log as JSON." name:"json-log"`
}

type CLI struct {
	Globals

	Gen         GenCmd         `cmd:"" default:"withargs" help:"Generate enumeration classes."`
	Definitions DefinitionsCmd `cmd:"" help:"Print the annotation definitions."`
	Version     VersionCmd     `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintln(out, parser.GetVersion())
	return err
}

type DefinitionsCmd struct {
	Format string `help:"Output format." enum:"yaml,json" default:"yaml" short:"f"`
}

func (c *DefinitionsCmd) Run(g *Globals, out io.Writer) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return err
	}
	specs := parser.NewResolver(cfg, nil).Specs()

	var data []byte
	if c.Format == "json" {
		data, err = specs.JSON()
	} else {
		data, err = specs.YAML()
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

type GenCmd struct {
	Packages []string `arg:"" optional:"" help:"Package patterns or file globs to scan (default from configuration)."`
	Dir      string   `help:"Working directory for package patterns." type:"path"`
	Root     string   `help:"Output root directory (default: the module directory)." type:"path"`
	Tags     []string `help:"Build tags." sep:","`
	Clean    bool     `help:"Remove stale generated files."`
	Watch    bool     `help:"Watch for changes and regenerate." short:"w"`
	DryRun   bool     `help:"Render without writing and list the units." name:"dry-run"`
	Check    bool     `help:"Fail when generated files are missing or out of date."`
}

// Apply overrides cfg with the flags that were set.
func (c *GenCmd) Apply(cfg *config.Config) {
	if len(c.Packages) > 0 {
		cfg.Scanning.Packages = c.Packages
	}
	if c.Dir != "" {
		cfg.Scanning.Dir = c.Dir
	}
	if c.Root != "" {
		cfg.Output.Root = c.Root
	}
	if len(c.Tags) > 0 {
		cfg.Scanning.BuildTags = c.Tags
	}
	if c.Clean {
		cfg.Output.Clean = true
	}
	if c.Watch {
		cfg.Watcher.Enabled = true
	}
}

func (c *GenCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return err
	}
	c.Apply(cfg)
	if g.LogLevel != "" {
		level, ok := logger.ParseLogLevel(g.LogLevel)
		if !ok {
			return errors.Newf("unknown log level %q", g.LogLevel)
		}
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewLogger(logger.Options{Level: cfg.Level(), JSON: g.JSONLog})
	defer func() { _ = log.Sync() }()

	if !cfg.Watcher.Enabled || c.DryRun || c.Check {
		return c.generate(ctx, cfg, log, out)
	}

	if err := c.generate(ctx, cfg, log, out); err != nil {
		log.Error("generation failed", "error", err)
	}
	w, err := newWatcher(cfg, log)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, func(ctx context.Context) {
		if err := c.generate(ctx, cfg, log, out); err != nil {
			log.Error("generation failed", "error", err)
		}
	})
}

func (c *GenCmd) generate(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) error {
	pctx := &types.ProcessContext{Config: cfg, Logger: log}
	var mem *sink.MemorySink
	if c.DryRun || c.Check {
		mem = sink.NewMemorySink()
		pctx.Sink = mem
	}

	res, err := enumclass.ProcessWithContext(ctx, pctx)
	if err != nil {
		return err
	}

	switch {
	case c.Check:
		if stale := enumclass.OutOfDate(res.Root, res.Units); len(stale) > 0 {
			return errors.WithHint(
				errors.Newf("%d generated files are out of date: %s", len(stale), strings.Join(stale, ", ")),
				"run enumgen gen")
		}
	case c.DryRun:
		for _, p := range mem.Paths() {
			fmt.Fprintln(out, filepath.Join(res.Root, filepath.FromSlash(p)))
		}
	}
	return res.Err()
}

// loadConfig reads path, or the first default project file found, or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFromFile(path)
	}
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return config.LoadConfigFromFile(name)
		}
	}
	return config.NewDefaultConfig(), nil
}

// flagConfigPaths lists the files providing flag defaults, lowest priority first per format.
func flagConfigPaths() (jsonPaths, yamlPaths, tomlPaths []string) {
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append([]string{filepath.Join(d, "enumgen")}, dirs...)
	}
	for _, d := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(d, ".enumgen.flags.json"))
		yamlPaths = append(yamlPaths, filepath.Join(d, ".enumgen.flags.yaml"), filepath.Join(d, ".enumgen.flags.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(d, ".enumgen.flags.toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}

func newParser(cli *CLI, out io.Writer, options ...kong.Option) (*kong.Kong, error) {
	jsonPaths, yamlPaths, tomlPaths := flagConfigPaths()
	options = append([]kong.Option{
		kong.Name("enumgen"),
		kong.Description("Generate enumeration classes for annotated Go enums."),
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	p, err := newParser(&cli, os.Stdout, kong.BindTo(ctx, (*context.Context)(nil)))
	if err != nil {
		panic(err)
	}
	kctx, err := p.Parse(os.Args[1:])
	p.FatalIfErrorf(err)

	err = kctx.Run(&cli.Globals)
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintln(os.Stderr, "hint:", hints)
	}
	kctx.FatalIfErrorf(err)
}
