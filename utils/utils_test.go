package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPtr(t *testing.T) {
	p := Ptr("CardKind")
	assert.Equal(t, "CardKind", *p)
	assert.Equal(t, "CardKind", DerefPtr(p, "x"))
	assert.Equal(t, "x", DerefPtr[string](nil, "x"))
}

func TestExpandGlobsAndUniqueDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cards", "cards.go"), "package cards")
	writeFile(t, filepath.Join(dir, "cards", "legacy.go"), "package cards")
	writeFile(t, filepath.Join(dir, "models", "models.go"), "package models")

	files, err := ExpandGlobs(dir, "cards/*.go", "models/*.go", "!cards/legacy.go")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "cards", "cards.go"),
		filepath.Join(dir, "models", "models.go"),
	}, files)

	assert.Equal(t, []string{
		filepath.Join(dir, "cards"),
		filepath.Join(dir, "models"),
	}, UniqueDirs(append(files, filepath.Join(dir, "missing.go"))))

	assert.True(t, FileExists(files[0]))
	assert.False(t, FileExists(filepath.Join(dir, "cards")))
}

func TestAllPatternsArePackagePatterns(t *testing.T) {
	assert.True(t, allPatternsArePackagePatterns([]string{"./...", "example.com/m/cards", "."}))
	assert.False(t, allPatternsArePackagePatterns([]string{"./cards/*.go"}))
	assert.False(t, allPatternsArePackagePatterns([]string{"./...", "!./vendor"}))
	assert.False(t, allPatternsArePackagePatterns([]string{"cards/cards.go"}))
}

func TestFindModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/shop\n\ngo 1.25\n")
	sub := filepath.Join(dir, "internal", "cards")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	path, modDir, err := FindModule(sub)
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop", path)
	assert.Equal(t, dir, modDir)

	bad := t.TempDir()
	writeFile(t, filepath.Join(bad, "go.mod"), "go 1.25\n")
	_, _, err = FindModule(bad)
	assert.Error(t, err)
}
