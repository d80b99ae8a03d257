// Package copier implements the exclusive file copier: a single-invocation,
// race-free file copy with an unambiguous error classification. The
// destination is created with an atomic exclusive create (never
// check-then-create) unless overwriting was requested, transferred bytes are
// checksum verified and partial destination files are not left behind
// unsignaled.
package copier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/marchfeld/safecp/internal/configuration"
	"github.com/marchfeld/safecp/internal/schema"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
}

type unixProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
	Lstat(path string, stat *unix.Stat_t) error
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	UtimesNano(path string, times []unix.Timespec) error
}

// Handler is the principal implementation of the exclusive file copier.
type Handler struct {
	OSOps    osProvider
	UnixOps  unixProvider
	settings configuration.Settings
}

// NewHandler returns a pointer to a new copier [Handler] operating with the
// given [configuration.Settings]. A missing chunk size falls back to the
// default.
func NewHandler(osOps osProvider, unixOps unixProvider, settings configuration.Settings) *Handler {
	if settings.ChunkSize <= 0 {
		settings.ChunkSize = configuration.DefaultSettings().ChunkSize
	}

	return &Handler{
		OSOps:    osOps,
		UnixOps:  unixOps,
		settings: settings,
	}
}

// Copy carries out a single [schema.Request] and returns its immutable
// [schema.Outcome]. It blocks the calling goroutine for the full duration of
// the transfer; a canceled ctx aborts the transfer mid-copy. Copy never
// retries and never recovers internally, every failure surfaces verbatim in
// the returned outcome.
//
// Concurrent Copy calls against the same destination path are the caller's
// race to avoid; the exclusive create guarantees at most one of them creates
// the destination.
func (c *Handler) Copy(ctx context.Context, req schema.Request) schema.Outcome {
	start := time.Now()

	outcome := c.process(ctx, req)
	outcome.Elapsed = time.Since(start)

	if outcome.Kind == schema.Success {
		slog.Info("Copied:",
			"path", req.DestPath,
			"source", req.SourcePath,
			"size", humanize.Bytes(outcome.BytesCopied),
			"speed", transferSpeed(outcome.BytesCopied, outcome.Elapsed),
		)
	}

	return outcome
}

func (c *Handler) process(ctx context.Context, req schema.Request) schema.Outcome {
	if req.SourcePath == "" {
		return failure(schema.Unknown, fmt.Errorf("(copier) %w", ErrEmptySourcePath), unix.EINVAL)
	}

	if req.DestPath == "" {
		return failure(schema.Unknown, fmt.Errorf("(copier) %w", ErrEmptyDestPath), unix.EINVAL)
	}

	srcFile, err := c.OSOps.Open(req.SourcePath)
	if err != nil {
		return failure(schema.SourceUnavailable, fmt.Errorf("(copier) failed to open source file: %w", err), 0)
	}
	defer srcFile.Close()

	metadata, err := c.sourceMetadata(req.SourcePath)
	if err != nil {
		return failure(schema.SourceUnavailable, fmt.Errorf("(copier) failed to stat source file: %w", err), 0)
	}

	if !metadata.IsRegular {
		return failure(schema.SourceUnavailable, fmt.Errorf("(copier) %w: %s", ErrNotRegularFile, req.SourcePath), unix.EINVAL)
	}

	return c.transfer(ctx, req, metadata, srcFile)
}

// transfer opens the destination and streams the source into it. The
// destination handle is released on every exit path; a destination file
// created during a failed attempt is removed again, with
// [schema.Outcome.Partial] flagging the corrupt leftover should removal fail.
func (c *Handler) transfer(ctx context.Context, req schema.Request, metadata *schema.Metadata, srcFile *os.File) (outcome schema.Outcome) {
	var transferComplete bool

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if req.AllowOverwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	dstFile, err := c.OSOps.OpenFile(req.DestPath, flags, os.FileMode(metadata.Perms))
	if err != nil {
		if !req.AllowOverwrite && isExist(err) {
			return failure(schema.DestinationExists, fmt.Errorf("(copier) destination already exists: %w", err), 0)
		}

		return failure(schema.IOFailure, fmt.Errorf("(copier) failed to open destination file: %w", err), 0)
	}

	defer func() {
		if !transferComplete {
			if err := c.OSOps.Remove(req.DestPath); err != nil {
				slog.Warn("Failed to remove partial destination file",
					"path", req.DestPath,
					"err", err,
				)
				outcome.Partial = true
			}
		}
	}()
	defer dstFile.Close()

	if ok, err := c.hasEnoughFreeSpace(req.DestPath, uint64(metadata.Size)); err != nil {
		return failure(schema.IOFailure, fmt.Errorf("(copier) failed to check free space: %w", err), 0)
	} else if !ok {
		return failure(schema.IOFailure, fmt.Errorf("(copier) %w", ErrNotEnoughSpace), unix.ENOSPC)
	}

	written, err := c.streamFile(ctx, srcFile, dstFile)
	if err != nil {
		fallback := syscall.Errno(unix.EIO)
		if errors.Is(err, context.Canceled) {
			fallback = unix.EINTR
		}

		outcome = failure(schema.IOFailure, err, fallback)
		outcome.BytesCopied = written

		return outcome
	}

	if err := dstFile.Sync(); err != nil {
		outcome = failure(schema.IOFailure, fmt.Errorf("(copier) failed to sync destination file: %w", err), 0)
		outcome.BytesCopied = written

		return outcome
	}

	if err := dstFile.Close(); err != nil {
		outcome = failure(schema.IOFailure, fmt.Errorf("(copier) failed to close destination file: %w", err), 0)
		outcome.BytesCopied = written

		return outcome
	}

	transferComplete = true

	if c.settings.Preserve {
		c.preserveMetadata(req.DestPath, metadata)
	}

	return schema.Outcome{
		Kind:        schema.Success,
		BytesCopied: written,
	}
}

// transferSpeed renders a human-readable transfer rate for logging.
func transferSpeed(bytes uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "0 B/s"
	}

	perSecond := float64(bytes) / elapsed.Seconds()

	return humanize.Bytes(uint64(perSecond)) + "/s"
}
