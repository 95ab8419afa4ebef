package ci

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "pyironenv/internal/errors"
	"pyironenv/internal/logger"
	"pyironenv/internal/manifest"
)

type fakeExecutor struct {
	commands []string
	failOn   string
	failErr  error
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, cmd)
	if f.failOn != "" && strings.Contains(cmd, f.failOn) {
		return f.failErr
	}
	return nil
}

func (f *fakeExecutor) Output(name string, args ...string) ([]byte, error) {
	f.commands = append(f.commands, strings.Join(append([]string{name}, args...), " "))
	return nil, nil
}

func ciManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Conda: manifest.CondaSection{
			Environment: "base",
			Packages:    []string{"numpy", "coverage"},
		},
		CI: manifest.CISection{
			RuntimeVersions: []string{"2.7", "3.6"},
			Env:             map[string]string{"MINICONDA_VARIANT": "latest"},
			PrintEnv:        []string{"MINICONDA_VARIANT"},
			TestsDir:        "tests",
		},
	}
}

func TestBuildMatrix(t *testing.T) {
	entries := BuildMatrix(ciManifest().CI)

	if len(entries) != 2 {
		t.Fatalf("expected 2 matrix entries, got %d", len(entries))
	}
	if entries[0].RuntimeVersion != "2.7" || entries[1].RuntimeVersion != "3.6" {
		t.Errorf("runtime versions out of order: %+v", entries)
	}
	for _, entry := range entries {
		if entry.Env["MINICONDA_VARIANT"] != "latest" {
			t.Errorf("entry %s is missing the shared env var", entry.Label())
		}
	}
}

func TestEntryLabel(t *testing.T) {
	entry := Entry{RuntimeVersion: "3.6", Env: map[string]string{"MINICONDA_VARIANT": "latest"}}
	want := "python=3.6 MINICONDA_VARIANT=latest"
	if got := entry.Label(); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestRunEntryPhaseOrder(t *testing.T) {
	buildDir := t.TempDir()
	settingsPath := filepath.Join(t.TempDir(), ".pyiron")
	fake := &fakeExecutor{}

	harness := NewHarness(buildDir, settingsPath, ciManifest(), fake, logger.NewMockLogger())
	entry := Entry{RuntimeVersion: "3.6", Env: map[string]string{"MINICONDA_VARIANT": "latest"}}

	if err := harness.RunEntry(entry); err != nil {
		t.Fatalf("RunEntry failed: %v", err)
	}

	want := []string{
		"conda update -y -n base --all",
		"conda list -n base",
		"conda install -y -n base python=3.6 numpy coverage",
		"conda run -n base python -m unittest discover " + filepath.Join(buildDir, "tests"),
	}
	if len(fake.commands) != len(want) {
		t.Fatalf("commands = %v, want %v", fake.commands, want)
	}
	for i := range want {
		if fake.commands[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, fake.commands[i], want[i])
		}
	}
}

func TestTestPhaseWritesBuildDirSettings(t *testing.T) {
	buildDir := t.TempDir()
	settingsPath := filepath.Join(t.TempDir(), ".pyiron")
	fake := &fakeExecutor{}

	harness := NewHarness(buildDir, settingsPath, ciManifest(), fake, logger.NewMockLogger())
	if err := harness.testPhase(); err != nil {
		t.Fatalf("testPhase failed: %v", err)
	}

	content, err := os.ReadFile(settingsPath)
	if err != nil {
		t.Fatalf("reading settings: %v", err)
	}

	want := "[DEFAULT]\n" +
		"TOP_LEVEL_DIRS = " + buildDir + "\n" +
		"RESOURCE_PATHS = " + filepath.Join(buildDir, "tests", "static") + "\n"
	if string(content) != want {
		t.Errorf("settings content = %q, want %q", content, want)
	}
}

func TestRunCoversWholeMatrix(t *testing.T) {
	buildDir := t.TempDir()
	settingsPath := filepath.Join(t.TempDir(), ".pyiron")
	fake := &fakeExecutor{}

	harness := NewHarness(buildDir, settingsPath, ciManifest(), fake, logger.NewMockLogger())
	if err := harness.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var installs []string
	for _, cmd := range fake.commands {
		if strings.HasPrefix(cmd, "conda install") {
			installs = append(installs, cmd)
		}
	}
	if len(installs) != 2 {
		t.Fatalf("expected one install per matrix entry, got %v", installs)
	}
	if !strings.Contains(installs[0], "python=2.7") || !strings.Contains(installs[1], "python=3.6") {
		t.Errorf("matrix runtime pins missing: %v", installs)
	}
}

func TestTestPhaseFailureCarriesTestCategory(t *testing.T) {
	discoverErr := errors.New("exit status 1")
	fake := &fakeExecutor{failOn: "unittest discover", failErr: discoverErr}

	harness := NewHarness(t.TempDir(), filepath.Join(t.TempDir(), ".pyiron"), ciManifest(), fake, logger.NewMockLogger())
	err := harness.testPhase()
	if err == nil {
		t.Fatal("expected testPhase to fail")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not an AppError", err)
	}
	if appErr.Category != apperrors.ErrCategoryTest {
		t.Errorf("Category = %q, want %q", appErr.Category, apperrors.ErrCategoryTest)
	}
	if !errors.Is(err, discoverErr) {
		t.Error("underlying discovery error lost in wrapping")
	}
}

func TestRunEmptyMatrixFails(t *testing.T) {
	m := ciManifest()
	m.CI.RuntimeVersions = nil

	harness := NewHarness(t.TempDir(), filepath.Join(t.TempDir(), ".pyiron"), m, &fakeExecutor{}, logger.NewMockLogger())
	if err := harness.Run(); err == nil {
		t.Error("expected error for empty matrix")
	}
}
