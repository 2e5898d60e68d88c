package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "generated source", path: "cards/cards_enumeration_gen.go"},
		{name: "definition unit", path: ".enumgen/enumeration.annotations.yaml"},
		{name: "single file", path: "models_enumeration_gen.go"},
		{name: "dotted name", path: "a/..b/c.go"},
		{name: "empty path", path: "", wantErr: true, errMsg: "empty"},
		{name: "absolute path", path: "/abs/x.go", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "windows drive", path: "C:/x.go", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "traversal", path: "cards/../x.go", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../x.go", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "current dir prefix", path: "./x.go", wantErr: true, errMsg: "not clean"},
		{name: "double slash", path: "a//x.go", wantErr: true, errMsg: "not clean"},
		{name: "trailing slash", path: "a/", wantErr: true, errMsg: "not clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath(%q) error = %q, want it to contain %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewFilesystemSink(root)

	if err := s.WriteFile(ctx, "cards/cards_enumeration_gen.go", []byte("package cards\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := s.WriteFile(ctx, "cards/cards_enumeration_gen.go", []byte("package cards // v2\n")); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "cards", "cards_enumeration_gen.go"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "package cards // v2\n" {
		t.Errorf("content = %q", got)
	}

	info, err := os.Stat(filepath.Join(root, "cards", "cards_enumeration_gen.go"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Join(root, "cards"))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".enumgen-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	if err := s.RemoveFile(ctx, "cards/cards_enumeration_gen.go"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "cards", "cards_enumeration_gen.go")); !os.IsNotExist(err) {
		t.Errorf("file still exists after RemoveFile: %v", err)
	}
	if err := s.RemoveFile(ctx, "cards/missing.go"); err != nil {
		t.Errorf("RemoveFile on missing file: %v", err)
	}
}

func TestFilesystemSinkRejectsInvalidPaths(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	if err := s.WriteFile(context.Background(), "../escape.go", []byte("x")); err == nil {
		t.Fatal("expected error for path traversal")
	}
	if err := s.WriteFile(context.Background(), ".", []byte("x")); err == nil {
		t.Fatal("expected error for root path")
	}
}

func TestFilesystemSinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	if err := NewFilesystemSink(root).WriteFile(ctx, "x.go", []byte("x")); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := os.Stat(filepath.Join(root, "x.go")); !os.IsNotExist(err) {
		t.Errorf("file written despite cancellation")
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink()

	content := []byte("package models\n")
	if err := s.WriteFile(ctx, "models/models_enumeration_gen.go", content); err != nil {
		t.Fatal(err)
	}
	content[0] = 'X'

	if got := string(s.Get("models/models_enumeration_gen.go")); got != "package models\n" {
		t.Errorf("Get = %q, sink must copy content", got)
	}
	if s.Get("missing.go") != nil {
		t.Errorf("Get(missing) should be nil")
	}

	_ = s.WriteFile(ctx, "a.go", []byte("a"))
	if paths := s.Paths(); len(paths) != 2 || paths[0] != "a.go" {
		t.Errorf("Paths = %v", paths)
	}

	_ = s.RemoveFile(ctx, "a.go")
	if len(s.Files()) != 1 {
		t.Errorf("Files after remove = %v", s.Files())
	}

	s.Reset()
	if len(s.Files()) != 0 {
		t.Errorf("Files after Reset = %v", s.Files())
	}
}

func TestWriteAll(t *testing.T) {
	s := NewMemorySink()
	var files []File
	for i := range 20 {
		files = append(files, File{Path: fmt.Sprintf("pkg%d/x_enumeration_gen.go", i), Content: []byte{byte(i)}})
	}

	if err := WriteAll(context.Background(), s, files, 3); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(s.Files()) != 20 {
		t.Errorf("wrote %d files, want 20", len(s.Files()))
	}

	files = append(files, File{Path: "../bad.go"})
	err := WriteAll(context.Background(), s, files, 0)
	if err == nil || !strings.Contains(err.Error(), "../bad.go") {
		t.Errorf("WriteAll error = %v, want one naming ../bad.go", err)
	}
}

func TestMemorySinkConcurrent(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WriteFile(context.Background(), fmt.Sprintf("f%d.go", i), []byte("x"))
			_ = s.Files()
		}()
	}
	wg.Wait()
	if len(s.Files()) != 50 {
		t.Errorf("len = %d, want 50", len(s.Files()))
	}
}
