package cleanup

import (
	"os"
	"path/filepath"

	apperrors "pyironenv/internal/errors"
)

// Logger abstracts the logging methods used by the cleanup package.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
}

// Cleaner removes stale bootstrap artefacts from the home directory. Every
// step is guarded on path existence: absent paths are skipped without error,
// which keeps the whole recipe idempotent.
type Cleaner struct {
	homeDir string
	deleter Deleter
	guard   *Guard
	logger  Logger
}

// NewCleaner constructs a Cleaner rooted at the home directory
// (deleter defaults to OSDeleter).
func NewCleaner(homeDir string, deleter Deleter, log Logger) *Cleaner {
	if deleter == nil {
		deleter = OSDeleter{}
	}
	return &Cleaner{
		homeDir: homeDir,
		deleter: deleter,
		guard:   NewGuard(homeDir),
		logger:  log,
	}
}

// RemoveScaffolding deletes the enumerated project-scaffolding entries under
// the home directory. The whole step is gated on the presence of the pyiron
// project directory; without it there is nothing to strip and the step is a
// no-op.
func (c *Cleaner) RemoveScaffolding(entries []string) error {
	marker := filepath.Join(c.homeDir, "pyiron")
	if _, err := os.Stat(marker); os.IsNotExist(err) {
		c.logger.Debug("No pyiron directory under %s, skipping scaffolding cleanup", c.homeDir)
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(c.homeDir, entry)
		if err := c.removeAllIfPresent(path); err != nil {
			return err
		}
	}

	return nil
}

// RemoveCondaBuild deletes the conda build artefact directory if present.
func (c *Cleaner) RemoveCondaBuild() error {
	return c.removeAllIfPresent(filepath.Join(c.homeDir, "conda-bld"))
}

// RemoveReadme deletes the stale top-level README if present.
func (c *Cleaner) RemoveReadme() error {
	path := filepath.Join(c.homeDir, "README.md")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := c.guard.ValidateTarget(path); err != nil {
		return cleanupError("cleanup.removeReadme", "delete target rejected", err, apperrors.Metadata{
			"path": path,
		})
	}

	if err := c.deleter.Remove(path); err != nil {
		return cleanupError("cleanup.removeReadme", "failed to remove file", err, apperrors.Metadata{
			"path": path,
		})
	}

	c.logger.Info("Removed %s", path)
	return nil
}

func (c *Cleaner) removeAllIfPresent(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.logger.Debug("Path %s absent, nothing to remove", path)
		return nil
	}

	if err := c.guard.ValidateTarget(path); err != nil {
		return cleanupError("cleanup.removeAll", "delete target rejected", err, apperrors.Metadata{
			"path": path,
		})
	}

	if err := c.deleter.RemoveAll(path); err != nil {
		return cleanupError("cleanup.removeAll", "failed to remove path", err, apperrors.Metadata{
			"path": path,
		})
	}

	c.logger.Info("Removed %s", path)
	return nil
}

func cleanupError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryCleanup, apperrors.CodeCleanupGeneric, message, err).
		WithModule("cleanup").
		WithOperation(operation).
		WithFields(metadata)
}
