package system

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	apperrors "pyironenv/internal/errors"
)

// ciMarkerVariables are the environment variables that identify a hosted CI
// or package build environment. Interactive prompts are suppressed when any
// of them is set.
var ciMarkerVariables = []string{
	"TRAVIS",
	"APPVEYOR",
	"CIRCLECI",
	"CONDA_BUILD",
	"GITLAB_CI",
}

// Config captures the directories and runtime characteristics the
// provisioner operates on.
type Config struct {
	HomeDir      string `json:"home_dir"`
	WorkDir      string `json:"work_dir"`
	SettingsPath string `json:"settings_path"`
	CI           bool   `json:"ci"`
}

// LoadConfig builds a Config populated with detected environment attributes.
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "home directory detection failed")
	}

	work, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "working directory detection failed")
	}

	cfg := &Config{
		HomeDir:      home,
		WorkDir:      work,
		SettingsPath: settingsPath(home),
		CI:           detectCI(),
	}

	return cfg, nil
}

// settingsPath honours the PYIRONCONFIG override before falling back to the
// conventional dotfile under the home directory.
func settingsPath(home string) string {
	if override := os.Getenv("PYIRONCONFIG"); override != "" {
		return override
	}
	return filepath.Join(home, ".pyiron")
}

func detectCI() bool {
	for _, name := range ciMarkerVariables {
		if _, ok := os.LookupEnv(name); ok {
			return true
		}
	}
	return false
}

// Validate ensures the external tools the bootstrap shells out to are present.
func (c *Config) Validate() error {
	requiredCommands := []string{"git", "jupyter"}
	for _, cmd := range requiredCommands {
		if _, err := exec.LookPath(cmd); err != nil {
			return validationError("missing required system command", err, apperrors.Metadata{
				"command": cmd,
			})
		}
	}

	if err := checkDiskSpace(c.HomeDir); err != nil {
		return validationError("disk space validation failed", err, apperrors.Metadata{
			"path": c.HomeDir,
		})
	}

	return nil
}

func validationError(message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryValidation, apperrors.CodeValidationGeneric, message, err).
		WithModule("system").
		WithOperation("system.validate").
		WithFields(metadata)
}

// ResourcesDir returns the destination for the cloned resource bundle.
func (c *Config) ResourcesDir() string {
	return filepath.Join(c.HomeDir, "resources")
}
