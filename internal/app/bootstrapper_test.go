package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"pyironenv/internal/logger"
	"pyironenv/internal/manifest"
	"pyironenv/internal/system"
)

func testBootstrapper(t *testing.T, home string) *Bootstrapper {
	t.Helper()

	cfg := &system.Config{
		HomeDir:      home,
		WorkDir:      home,
		SettingsPath: filepath.Join(home, ".pyiron"),
	}
	m := &manifest.Manifest{
		Scaffolding: []string{".ci_support", ".travis.yml", "LICENSE", "setup.py"},
	}
	log := logger.NewColoredLogger(logger.WithOutput(io.Discard))

	return NewBootstrapper(cfg, m, log, nil)
}

func TestCleanOnFreshHomeIsNoOp(t *testing.T) {
	home := t.TempDir()
	b := testBootstrapper(t, home)

	if err := b.Clean(); err != nil {
		t.Fatalf("Clean on fresh home failed: %v", err)
	}

	entries, err := os.ReadDir(home)
	if err != nil {
		t.Fatalf("reading home: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clean created entries in a fresh home: %v", entries)
	}
}

func TestCleanRemovesStaleArtefacts(t *testing.T) {
	home := t.TempDir()
	b := testBootstrapper(t, home)

	if err := os.Mkdir(filepath.Join(home, "pyiron"), 0o755); err != nil {
		t.Fatalf("creating marker: %v", err)
	}
	for _, name := range []string{".travis.yml", "LICENSE", "setup.py", "README.md"} {
		if err := os.WriteFile(filepath.Join(home, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(home, "conda-bld", "noarch"), 0o755); err != nil {
		t.Fatalf("creating conda-bld: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "notebook.ipynb"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("creating survivor: %v", err)
	}

	if err := b.Clean(); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	for _, name := range []string{".travis.yml", "LICENSE", "setup.py", "README.md", "conda-bld"} {
		if _, err := os.Stat(filepath.Join(home, name)); !os.IsNotExist(err) {
			t.Errorf("stale artefact %s still present", name)
		}
	}
	for _, name := range []string{"pyiron", "notebook.ipynb"} {
		if _, err := os.Stat(filepath.Join(home, name)); err != nil {
			t.Errorf("survivor %s was removed: %v", name, err)
		}
	}
}

func TestCleanTwiceSameTerminalState(t *testing.T) {
	home := t.TempDir()
	b := testBootstrapper(t, home)

	if err := os.Mkdir(filepath.Join(home, "pyiron"), 0o755); err != nil {
		t.Fatalf("creating marker: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "setup.py"), []byte("x"), 0o644); err != nil {
		t.Fatalf("creating scaffolding: %v", err)
	}

	if err := b.Clean(); err != nil {
		t.Fatalf("first Clean failed: %v", err)
	}
	firstState := dirNames(t, home)

	if err := b.Clean(); err != nil {
		t.Fatalf("second Clean failed: %v", err)
	}
	secondState := dirNames(t, home)

	if len(firstState) != len(secondState) {
		t.Errorf("terminal state diverged between runs: %v vs %v", firstState, secondState)
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
