package enumclass

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/generator"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/parser"
	"github.com/pablor21/enumclass/sink"
	"github.com/pablor21/enumclass/types"
	"github.com/pablor21/enumclass/utils"
)

// Process generates with the default configuration from the working directory.
func Process(ctx context.Context) (*types.ProcessResult, error) {
	return ProcessWithConfig(ctx, config.NewDefaultConfig())
}

// ProcessWithConfig generates with the provided configuration, writing to the filesystem.
func ProcessWithConfig(ctx context.Context, cfg *config.Config) (*types.ProcessResult, error) {
	return ProcessWithContext(ctx, &types.ProcessContext{
		Config: cfg,
		Logger: logger.NewLogger(logger.Options{Level: cfg.Level()}),
	})
}

// ProcessWithContext runs one generation pass: load, scan, resolve, plan, emit and write.
// Declaration-level failures are reported as diagnostics in the result; the returned error
// is reserved for failures that stop the pass.
func ProcessWithContext(ctx context.Context, pctx *types.ProcessContext) (*types.ProcessResult, error) {
	cfg := pctx.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := pctx.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	dir := cfg.Scanning.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	modulePath, moduleDir := pctx.ModulePath, pctx.ModuleDir
	if modulePath == "" {
		var err error
		modulePath, moduleDir, err = utils.FindModule(dir)
		if err != nil {
			log.Debug("no enclosing module", "dir", dir, "error", err)
		}
	}

	res := types.NewProcessResult()
	pkgs, err := loadPackages(ctx, cfg, dir, res)
	if err != nil {
		return nil, err
	}
	if moduleDir == "" {
		for _, p := range pkgs {
			if p.ModuleDir != "" {
				modulePath, moduleDir = p.ModulePath, p.ModuleDir
				break
			}
		}
	}
	log.Debug("loaded packages", "count", len(pkgs), "module", modulePath)

	root := outputRoot(cfg, moduleDir, dir)
	res.Root = root

	resolver := parser.NewResolver(cfg, log)
	res.Declarations = parser.NewScanner(log).ScanPackages(pkgs)
	resolved, diags := resolver.ResolveAll(pkgs, res.Declarations)
	res.Resolved = resolved
	res.AddDiagnostics(diags...)

	gen := generator.New(cfg.Output, root,
		generator.NewLocator(modulePath, moduleDir, pkgs),
		&generator.Synthesizer{Version: parser.GetVersion()},
		log)
	gts, diags := gen.Plan(resolved)
	res.Types = gts
	res.AddDiagnostics(diags...)

	units, diags := gen.Emit(gts, resolver.Specs())
	res.Units = units
	res.AddDiagnostics(diags...)

	out := pctx.Sink
	if out == nil {
		out = sink.NewFilesystemSink(root)
	}

	files := make([]sink.File, len(units))
	for i, u := range units {
		files[i] = sink.File{Path: u.Path, Content: u.Content}
	}
	if err := sink.WriteAll(ctx, out, files, cfg.Output.Concurrency); err != nil {
		return res, err
	}

	if cfg.Output.Clean {
		if err := clean(ctx, out, root, pkgs, cfg.Output.FileSuffix, units, log); err != nil {
			return res, err
		}
	}

	logDiagnostics(log, res.Diagnostics)
	log.Info("generation finished", "types", len(gts), "units", len(units), "errors", len(res.Errors()))
	return res, nil
}

func loadPackages(ctx context.Context, cfg *config.Config, dir string, res *types.ProcessResult) ([]*parser.Package, error) {
	loaded, err := utils.LoadPackages(ctx, utils.LoadOptions{
		Dir:       dir,
		Tests:     cfg.Scanning.Tests,
		BuildTags: cfg.Scanning.BuildTags,
	}, cfg.Scanning.Packages...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}
	pkgs, diags := parser.FromPackages(loaded)
	res.AddDiagnostics(diags...)
	if len(pkgs) == 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrNoPackages, "patterns %v", cfg.Scanning.Packages),
			"check scanning.packages and scanning.dir")
	}
	return pkgs, nil
}

func outputRoot(cfg *config.Config, moduleDir, dir string) string {
	switch {
	case cfg.Output.Root != "":
		return cfg.Output.Root
	case moduleDir != "":
		return moduleDir
	default:
		return dir
	}
}

// clean removes generated files in the scanned package directories that this pass did
// not produce. Sinks that cannot remove files are left alone.
func clean(ctx context.Context, out sink.OutputSink, root string, pkgs []*parser.Package, suffix string, units []*types.Unit, log logger.Logger) error {
	remover, ok := out.(sink.Remover)
	if !ok {
		log.Debug("sink cannot remove files, skipping cleanup")
		return nil
	}

	produced := map[string]bool{}
	for _, u := range units {
		produced[u.Path] = true
	}

	stale, err := StaleFiles(root, pkgs, suffix, produced)
	if err != nil {
		return err
	}
	for _, path := range stale {
		if err := remover.RemoveFile(ctx, path); err != nil {
			return errors.Wrapf(err, "remove stale %s", path)
		}
		log.Info("removed stale file", "path", path)
	}
	return nil
}

// StaleFiles lists, relative to root, the generated files in the package directories
// whose path is not in produced.
func StaleFiles(root string, pkgs []*parser.Package, suffix string, produced map[string]bool) ([]string, error) {
	var stale []string
	for _, p := range pkgs {
		matches, err := filepath.Glob(filepath.Join(p.Dir, "*"+suffix))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			rel, err := filepath.Rel(root, m)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if strings.HasPrefix(rel, "../") || produced[rel] {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil || !generator.IsGenerated(data) {
				continue
			}
			stale = append(stale, rel)
		}
	}
	slices.Sort(stale)
	return slices.Compact(stale), nil
}

// OutOfDate lists the units whose content differs from the file at root, including
// missing files. The generated header is ignored, so files written by another
// version of the generator are current when the rest matches.
func OutOfDate(root string, units []*types.Unit) []string {
	var out []string
	for _, u := range units {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(u.Path)))
		if err != nil || !bytes.Equal(generator.StripHeader(data), generator.StripHeader(u.Content)) {
			out = append(out, u.Path)
		}
	}
	return out
}

func logDiagnostics(log logger.Logger, diags []types.Diagnostic) {
	for _, d := range diags {
		kv := []any{"position", d.Position.String()}
		if d.Declaration != "" {
			kv = append(kv, "declaration", d.Declaration)
		}
		switch d.Severity {
		case types.SeverityError:
			log.Error(d.Message, kv...)
		case types.SeverityWarning:
			log.Warn(d.Message, kv...)
		default:
			log.Info(d.Message, kv...)
		}
	}
}
