package resources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMoveEntryRenames(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.ipynb")
	target := filepath.Join(dir, "b.ipynb")
	if err := os.WriteFile(source, []byte("cells"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := moveEntry(source, target); err != nil {
		t.Fatalf("moveEntry: %v", err)
	}

	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading target: %v", err)
	}
	if string(content) != "cells" {
		t.Errorf("target content = %q", content)
	}
}

// copyTree is the cross-filesystem fallback of moveEntry; exercised directly
// since a rename inside one temp directory never hits EXDEV.
func TestCopyTreeNestedDirectory(t *testing.T) {
	sourceRoot := t.TempDir()
	targetRoot := t.TempDir()

	if err := os.MkdirAll(filepath.Join(sourceRoot, "sub", "deep"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	files := map[string]string{
		"top.ipynb":                          "top",
		filepath.Join("sub", "mid.ipynb"):    "mid",
		filepath.Join("sub", "deep", "d.py"): "deep",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(sourceRoot, name), []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}

	target := filepath.Join(targetRoot, "copied")
	if err := copyTree(sourceRoot, target); err != nil {
		t.Fatalf("copyTree: %v", err)
	}

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(target, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(got) != content {
			t.Errorf("%s content = %q, want %q", name, got, content)
		}
	}

	info, err := os.Stat(filepath.Join(target, "top.ipynb"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopyTreeSymlink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "link")
	if err := os.Symlink("target-elsewhere", source); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	target := filepath.Join(dir, "copied-link")
	if err := copyTree(source, target); err != nil {
		t.Fatalf("copyTree: %v", err)
	}

	dest, err := os.Readlink(target)
	if err != nil {
		t.Fatalf("Readlink: %v", err)
	}
	if dest != "target-elsewhere" {
		t.Errorf("link destination = %q", dest)
	}
}
