package copier

import "errors"

var (
	// ErrEmptySourcePath is an error that occurs when a [schema.Request] is
	// missing its source path.
	ErrEmptySourcePath = errors.New("source path is empty")

	// ErrEmptyDestPath is an error that occurs when a [schema.Request] is
	// missing its destination path.
	ErrEmptyDestPath = errors.New("destination path is empty")

	// ErrNotRegularFile is an error that occurs when the source path exists,
	// but does not point to a regular file.
	ErrNotRegularFile = errors.New("source is not a regular file")

	// ErrNotEnoughSpace is an error that occurs when there is not enough free
	// space to take the to be copied file on the destination filesystem.
	ErrNotEnoughSpace = errors.New("not enough free space on destination")

	// ErrChecksumMismatch is an error that occurs when there is a
	// source/destination checksum mismatch, this usually means that there are
	// underlying transfer/hardware issues.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTransferCanceled is an error that occurs when the transfer context
	// was canceled mid-copy.
	ErrTransferCanceled = errors.New("transfer canceled")
)
