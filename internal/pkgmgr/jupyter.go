package pkgmgr

import (
	"fmt"

	apperrors "pyironenv/internal/errors"
)

// LabExtension identifies a JupyterLab extension at a pinned version.
type LabExtension struct {
	Name    string
	Version string
}

// Spec renders the name@version form the labextension installer expects.
func (e LabExtension) Spec() string {
	if e.Version == "" {
		return e.Name
	}
	return fmt.Sprintf("%s@%s", e.Name, e.Version)
}

// JupyterManager installs JupyterLab extensions and triggers the lab build.
type JupyterManager struct {
	exec Executor
}

// NewJupyterManager constructs a JupyterManager with the provided executor
// (defaults to SystemExecutor).
func NewJupyterManager(exec Executor) *JupyterManager {
	if exec == nil {
		exec = SystemExecutor{}
	}
	return &JupyterManager{exec: exec}
}

// InstallExtension installs a single extension without rebuilding the lab
// bundle. Rebuilds are deferred to Build so several extensions can share one
// webpack pass.
func (m *JupyterManager) InstallExtension(ext LabExtension) error {
	if err := m.exec.Run("jupyter", "labextension", "install", ext.Spec(), "--no-build"); err != nil {
		return jupyterError("jupyter.installExtension", "labextension install failed", err, apperrors.Metadata{
			"extension": ext.Spec(),
		})
	}
	return nil
}

// Build runs the explicit JupyterLab asset build.
func (m *JupyterManager) Build() error {
	if err := m.exec.Run("jupyter", "lab", "build"); err != nil {
		return jupyterError("jupyter.build", "jupyter lab build failed", err, nil)
	}
	return nil
}

// InstallExtensions installs every extension then performs one build.
func (m *JupyterManager) InstallExtensions(exts []LabExtension) error {
	for _, ext := range exts {
		if err := m.InstallExtension(ext); err != nil {
			return err
		}
	}
	if len(exts) == 0 {
		return nil
	}
	return m.Build()
}

func jupyterError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryDependency, apperrors.CodeDependencyGeneric, message, err).
		WithModule("pkgmgr.jupyter").
		WithOperation(operation).
		WithFields(metadata)
}
