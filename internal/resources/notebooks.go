package resources

import (
	"os"
	"path/filepath"

	apperrors "pyironenv/internal/errors"
)

// RelocateNotebooks moves every entry of the notebooks staging directory into
// the working directory and removes the emptied staging directory. A missing
// staging directory is a no-op.
func RelocateNotebooks(workDir string, log Logger) error {
	staging := filepath.Join(workDir, "notebooks")

	items, err := os.ReadDir(staging)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No notebooks directory under %s, nothing to relocate", workDir)
			return nil
		}
		return resourceError("resources.relocateNotebooks", "failed to read notebooks directory", err, apperrors.Metadata{
			"path": staging,
		})
	}

	for _, item := range items {
		source := filepath.Join(staging, item.Name())
		target := filepath.Join(workDir, item.Name())
		if err := moveEntry(source, target); err != nil {
			return resourceError("resources.relocateNotebooks", "failed to move notebook entry", err, apperrors.Metadata{
				"source": source,
				"target": target,
			})
		}
	}

	if err := os.Remove(staging); err != nil && !os.IsNotExist(err) {
		return resourceError("resources.relocateNotebooks", "failed to remove emptied notebooks directory", err, apperrors.Metadata{
			"path": staging,
		})
	}

	log.Info("Relocated %d notebook entries into %s", len(items), workDir)
	return nil
}
