package resources

import (
	"os"
	"path/filepath"

	apperrors "pyironenv/internal/errors"
	"pyironenv/internal/manifest"
	"pyironenv/internal/pkgmgr"
)

// Logger abstracts the logging methods used by the resources package.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Fetcher materialises the resource repositories listed in the manifest by
// shallow-cloning them into home-relative destinations.
type Fetcher struct {
	homeDir string
	workDir string
	exec    pkgmgr.Executor
	logger  Logger
}

// NewFetcher creates a Fetcher rooted at the given home and working
// directories (executor defaults to SystemExecutor).
func NewFetcher(homeDir, workDir string, exec pkgmgr.Executor, log Logger) *Fetcher {
	if exec == nil {
		exec = pkgmgr.SystemExecutor{}
	}
	return &Fetcher{
		homeDir: homeDir,
		workDir: workDir,
		exec:    exec,
		logger:  log,
	}
}

// FetchAll clones every manifest resource in order. Destinations that already
// exist are left untouched so a re-run converges instead of failing on a
// non-empty clone target.
func (f *Fetcher) FetchAll(entries []manifest.ResourceEntry) error {
	for _, entry := range entries {
		if err := f.Fetch(entry); err != nil {
			return err
		}
	}
	return nil
}

// Fetch clones a single resource, harvests its payload directory when one is
// configured, and removes transient clones after use.
func (f *Fetcher) Fetch(entry manifest.ResourceEntry) error {
	dest := filepath.Join(f.homeDir, entry.Dest)

	if _, err := os.Stat(dest); err == nil {
		f.logger.Debug("Resource %s already present at %s, skipping clone", entry.Name, dest)
	} else {
		if err := f.clone(entry, dest); err != nil {
			return err
		}
	}

	if entry.Harvest != "" {
		if err := f.harvest(entry, dest); err != nil {
			return err
		}
	}

	if entry.Transient {
		if err := os.RemoveAll(dest); err != nil {
			return resourceError("resources.fetch", "failed to remove transient clone", err, apperrors.Metadata{
				"resource": entry.Name,
				"path":     dest,
			})
		}
		f.logger.Debug("Removed transient clone %s", dest)
	}

	return nil
}

func (f *Fetcher) clone(entry manifest.ResourceEntry, dest string) error {
	args := []string{"clone", "--depth", "1"}
	if entry.Branch != "" {
		args = append(args, "--branch", entry.Branch)
	}
	args = append(args, entry.URL, dest)

	if err := f.exec.Run("git", args...); err != nil {
		return resourceError("resources.clone", "git clone failed", err, apperrors.Metadata{
			"resource": entry.Name,
			"url":      entry.URL,
			"branch":   entry.Branch,
		})
	}

	f.logger.Info("Cloned %s into %s", entry.Name, dest)
	return nil
}

// harvest moves every entry of the clone's payload directory into the
// working directory.
func (f *Fetcher) harvest(entry manifest.ResourceEntry, dest string) error {
	payload := filepath.Join(dest, entry.Harvest)

	items, err := os.ReadDir(payload)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Warn("Resource %s has no %s directory to harvest", entry.Name, entry.Harvest)
			return nil
		}
		return resourceError("resources.harvest", "failed to read payload directory", err, apperrors.Metadata{
			"resource": entry.Name,
			"path":     payload,
		})
	}

	for _, item := range items {
		source := filepath.Join(payload, item.Name())
		target := filepath.Join(f.workDir, item.Name())
		if err := moveEntry(source, target); err != nil {
			return resourceError("resources.harvest", "failed to relocate payload entry", err, apperrors.Metadata{
				"resource": entry.Name,
				"source":   source,
				"target":   target,
			})
		}
	}

	f.logger.Debug("Harvested %d entries from %s", len(items), payload)
	return nil
}

func resourceError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryResource, apperrors.CodeResourceGeneric, message, err).
		WithModule("resources").
		WithOperation(operation).
		WithFields(metadata)
}
