package copier

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// hasEnoughFreeSpace checks if the destination filesystem can house fileSize
// additional bytes without falling below the configured free space floor.
func (c *Handler) hasEnoughFreeSpace(destPath string, fileSize uint64) (bool, error) {
	var stat unix.Statfs_t

	if err := c.UnixOps.Statfs(filepath.Dir(destPath), &stat); err != nil {
		return false, fmt.Errorf("failed to statfs: %w", err)
	}

	freeSpace := stat.Bavail * handleSize(stat.Bsize)

	requiredFree := c.settings.MinFree
	if fileSize > requiredFree {
		requiredFree = fileSize
	}

	return freeSpace > requiredFree, nil
}

// handleSize guards against negative block sizes on platforms reporting them
// as signed integers.
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
