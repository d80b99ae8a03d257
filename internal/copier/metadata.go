package copier

import (
	"fmt"
	"log/slog"

	"github.com/marchfeld/safecp/internal/schema"
	"golang.org/x/sys/unix"
)

const permBits = 0o777

// sourceMetadata collects the source file attributes, both for gating the
// transfer (regular file, size) and for later preservation.
func (c *Handler) sourceMetadata(path string) (*schema.Metadata, error) {
	var stat unix.Stat_t

	if err := c.UnixOps.Lstat(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to lstat: %w", err)
	}

	metadata := &schema.Metadata{
		Perms:      uint32(stat.Mode) & permBits,
		UID:        stat.Uid,
		GID:        stat.Gid,
		AccessedAt: stat.Atim,
		ModifiedAt: stat.Mtim,
		Size:       stat.Size,
		IsRegular:  (stat.Mode & unix.S_IFMT) == unix.S_IFREG,
	}

	return metadata, nil
}

// preserveMetadata applies source ownership, permissions and timestamps to
// the finished destination file. Failures here do not fail the copy, the
// transferred bytes are already complete and durable.
func (c *Handler) preserveMetadata(path string, metadata *schema.Metadata) {
	if err := c.UnixOps.Chown(path, int(metadata.UID), int(metadata.GID)); err != nil {
		slog.Warn("Warning (finalize): failure setting ownership", "path", path, "err", err)
	}

	if err := c.UnixOps.Chmod(path, metadata.Perms); err != nil {
		slog.Warn("Warning (finalize): failure setting permissions", "path", path, "err", err)
	}

	ts := []unix.Timespec{metadata.AccessedAt, metadata.ModifiedAt}
	if err := c.UnixOps.UtimesNano(path, ts); err != nil {
		slog.Warn("Warning (finalize): failure setting timestamp", "path", path, "err", err)
	}
}
