package pkgmgr

import (
	"strings"

	apperrors "pyironenv/internal/errors"
)

// CondaManager orchestrates package installation inside a conda environment.
type CondaManager struct {
	exec Executor
	env  string
}

// NewCondaManager constructs a CondaManager bound to the named environment
// (defaults to SystemExecutor).
func NewCondaManager(env string, exec Executor) *CondaManager {
	if exec == nil {
		exec = SystemExecutor{}
	}
	if env == "" {
		env = "base"
	}
	return &CondaManager{exec: exec, env: env}
}

// Environment returns the environment name the manager operates on.
func (m *CondaManager) Environment() string {
	return m.env
}

// UpdateEnvironment brings every package in the environment up to date.
func (m *CondaManager) UpdateEnvironment() error {
	if err := m.exec.Run("conda", "update", "-y", "-n", m.env, "--all"); err != nil {
		return condaError("conda.updateEnvironment", "conda update failed", err, apperrors.Metadata{
			"environment": m.env,
		})
	}
	return nil
}

// InstallPackages installs the requested packages, skipping those already
// present in the environment.
func (m *CondaManager) InstallPackages(packages []string) error {
	missing, err := m.missingPackages(packages)
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		return nil
	}

	args := append([]string{"install", "-y", "-n", m.env}, missing...)
	if err := m.exec.Run("conda", args...); err != nil {
		return condaError("conda.installPackages", "failed to install packages via conda", err, apperrors.Metadata{
			"environment": m.env,
			"packages":    strings.Join(missing, ","),
		})
	}
	return nil
}

// RunIn executes a command inside the environment. This is the non-shell
// equivalent of activating the environment first.
func (m *CondaManager) RunIn(name string, args ...string) error {
	runArgs := append([]string{"run", "-n", m.env, name}, args...)
	return m.exec.Run("conda", runArgs...)
}

func (m *CondaManager) missingPackages(packages []string) ([]string, error) {
	installed, err := m.installedPackageSet()
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, pkg := range packages {
		// Version pins like "coverage=4.x" still key on the bare name.
		name := pkg
		if idx := strings.IndexAny(pkg, "=<>"); idx > 0 {
			name = pkg[:idx]
		}
		if _, exists := installed[name]; !exists {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}

func (m *CondaManager) installedPackageSet() (map[string]struct{}, error) {
	output, err := m.exec.Output("conda", "list", "-n", m.env)
	if err != nil {
		return nil, condaError("conda.installedPackageSet", "conda list failed", err, apperrors.Metadata{
			"environment": m.env,
		})
	}

	result := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			result[fields[0]] = struct{}{}
		}
	}
	return result, nil
}

func condaError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryDependency, apperrors.CodeDependencyGeneric, message, err).
		WithModule("pkgmgr.conda").
		WithOperation(operation).
		WithFields(metadata)
}
