package utils

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/pablor21/enumclass/errors"
)

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// DerefPtr returns the value pointed to by ptr, or defaultValue if ptr is nil
func DerefPtr[T any](ptr *T, defaultValue T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExpandGlobs expands patterns including negations, relative to dir.
// Example:
//
//	"./models/*.go", "!./models/legacy.go"
func ExpandGlobs(dir string, patterns ...string) ([]string, error) {
	include := []string{}
	exclude := []string{}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if after, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, after)
		} else {
			include = append(include, p)
		}
	}

	results := map[string]struct{}{}
	glob := func(pattern string) ([]string, error) {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		return filepath.Glob(pattern)
	}

	for _, pattern := range include {
		matches, err := glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			results[m] = struct{}{}
		}
	}

	for _, pattern := range exclude {
		matches, err := glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			delete(results, m)
		}
	}

	out := make([]string, 0, len(results))
	for k := range results {
		out = append(out, k)
	}
	slices.Sort(out)
	return out, nil
}

// UniqueDirs converts file paths to sorted unique directories
func UniqueDirs(files []string) []string {
	dirs := map[string]struct{}{}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		dir := f
		if !info.IsDir() {
			dir = filepath.Dir(f)
		}
		dirs[dir] = struct{}{}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// LoadOptions configure LoadPackages.
type LoadOptions struct {
	Dir       string
	Tests     bool
	BuildTags []string
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// LoadPackages loads Go packages from package patterns (./..., import paths) or from
// file glob patterns with exclusions.
func LoadPackages(ctx context.Context, opts LoadOptions, patterns ...string) ([]*packages.Package, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	if !allPatternsArePackagePatterns(patterns) {
		files, err := ExpandGlobs(dir, patterns...)
		if err != nil {
			return nil, err
		}
		patterns = UniqueDirs(files)
		if len(patterns) == 0 {
			return nil, errors.Wrap(errors.ErrNoPackages, "no directories found from patterns")
		}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Tests:   opts.Tests,
	}
	if len(opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, errors.Wrapf(errors.ErrNoPackages, "patterns %v", patterns)
	}
	return pkgs, nil
}

// allPatternsArePackagePatterns reports whether patterns are go list patterns
// rather than file globs.
func allPatternsArePackagePatterns(patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if strings.HasPrefix(pattern, "!") ||
			strings.HasSuffix(pattern, ".go") ||
			strings.ContainsAny(pattern, "*?[") {
			return false
		}
	}
	return true
}

// GetPackageFullPath attempts to get the full import path for a package
// If pkg.PkgPath is empty or just the package name, it tries to construct it
func GetPackageFullPath(pkg *packages.Package) string {
	if pkg.PkgPath != "" && pkg.PkgPath != pkg.Name {
		return pkg.PkgPath
	}

	if pkg.Module != nil {
		for _, file := range pkg.GoFiles {
			relPath, err := filepath.Rel(pkg.Module.Dir, filepath.Dir(file))
			if err == nil && relPath != "." {
				return pkg.Module.Path + "/" + filepath.ToSlash(relPath)
			}
		}
		return pkg.Module.Path
	}

	return pkg.Name
}

// FindModule walks up from dir to the nearest go.mod and returns the module path and directory.
func FindModule(dir string) (modulePath, moduleDir string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if data, readErr := os.ReadFile(goModPath); readErr == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return "", "", errors.Newf("%s has no module directive", goModPath)
			}
			return path, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", errors.WithHint(errors.New("go.mod not found"), "run enumgen inside a Go module")
		}
		dir = parent
	}
}
