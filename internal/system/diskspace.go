package system

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// minSpaceMB is the minimum free space required before a bootstrap is
// attempted; the lab build and resource clone together need well under this.
const minSpaceMB = 1024

func checkDiskSpace(path string) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return errors.Wrapf(err, "failed to stat filesystem at %s", path)
	}

	availableMB := stat.Bavail * uint64(stat.Bsize) / (1024 * 1024)
	if availableMB < minSpaceMB {
		return errors.Errorf("insufficient disk space: %dMB required, %dMB available",
			minSpaceMB, availableMB)
	}

	return nil
}
