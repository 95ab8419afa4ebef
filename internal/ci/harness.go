package ci

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	apperrors "pyironenv/internal/errors"
	"pyironenv/internal/manifest"
	"pyironenv/internal/pkgmgr"
	"pyironenv/internal/settings"
)

// Logger abstracts the logging methods used by the harness.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Harness drives the continuous-integration pipeline: for every matrix entry
// it runs the init, install and test phases in order. There is no build
// phase; nothing in this project compiles.
//
// Matrix entries run strictly sequentially. The first failing phase aborts
// the run and its error carries the underlying tool's exit status.
type Harness struct {
	buildDir     string
	settingsPath string
	manifest     *manifest.Manifest
	exec         pkgmgr.Executor
	logger       Logger
}

// NewHarness constructs a Harness for the given build directory
// (executor defaults to SystemExecutor).
func NewHarness(buildDir, settingsPath string, m *manifest.Manifest, exec pkgmgr.Executor, log Logger) *Harness {
	if exec == nil {
		exec = pkgmgr.SystemExecutor{}
	}
	return &Harness{
		buildDir:     buildDir,
		settingsPath: settingsPath,
		manifest:     m,
		exec:         exec,
		logger:       log,
	}
}

// Run executes every matrix entry in order.
func (h *Harness) Run() error {
	entries := BuildMatrix(h.manifest.CI)
	if len(entries) == 0 {
		return errors.New("CI matrix is empty")
	}

	for _, entry := range entries {
		h.logger.Info("=== matrix entry: %s ===", entry.Label())
		if err := h.RunEntry(entry); err != nil {
			return errors.Wrapf(err, "matrix entry %s failed", entry.Label())
		}
	}

	return nil
}

// RunEntry executes the phases of a single matrix cell.
func (h *Harness) RunEntry(entry Entry) error {
	h.initPhase(entry)

	if err := h.installPhase(entry); err != nil {
		return err
	}

	return h.testPhase()
}

// initPhase prints the diagnostic environment variables.
func (h *Harness) initPhase(entry Entry) {
	h.logger.Info("python version: %s", entry.RuntimeVersion)
	for _, name := range h.manifest.CI.PrintEnv {
		value, ok := entry.Env[name]
		if !ok {
			value = os.Getenv(name)
		}
		h.logger.Info("%s=%s", name, value)
	}
}

// installPhase updates the conda environment and installs the pinned runtime
// plus the fixed package list.
func (h *Harness) installPhase(entry Entry) error {
	conda := pkgmgr.NewCondaManager(h.manifest.Conda.Environment, h.exec)

	if err := conda.UpdateEnvironment(); err != nil {
		return err
	}

	packages := append([]string{fmt.Sprintf("python=%s", entry.RuntimeVersion)},
		h.manifest.Conda.Packages...)
	return conda.InstallPackages(packages)
}

// testPhase writes the settings file pointing at the build directory and
// invokes unit-test discovery. The discovery command's exit status is what
// the whole harness reports.
func (h *Harness) testPhase() error {
	cfg := settings.ForBuildDir(h.buildDir)
	if err := cfg.Write(h.settingsPath); err != nil {
		return err
	}
	h.logger.Debug("Wrote CI settings to %s", h.settingsPath)

	testsDir := h.manifest.CI.TestsDir
	if testsDir == "" {
		testsDir = "tests"
	}

	conda := pkgmgr.NewCondaManager(h.manifest.Conda.Environment, h.exec)
	target := filepath.Join(h.buildDir, testsDir)
	if err := conda.RunIn("python", "-m", "unittest", "discover", target); err != nil {
		return apperrors.New(apperrors.ErrCategoryTest, apperrors.CodeTestGeneric, "unit test discovery failed", err).
			WithModule("ci").
			WithOperation("ci.testPhase").
			WithField("tests_dir", target)
	}
	return nil
}
