package schema

import (
	"syscall"
	"time"
)

// Kind is the fixed classification of a copy attempt. It is the only error
// taxonomy callers are expected to act on; raw platform codes travel alongside
// it in [Outcome], but are never the primary signal.
type Kind int

const (
	// Success means all bytes were copied and the destination closed cleanly.
	Success Kind = iota

	// SourceUnavailable means the source path is missing or unreadable.
	SourceUnavailable

	// DestinationExists means an exclusive create was requested and the
	// destination path was already present.
	DestinationExists

	// IOFailure means a read or write error occurred mid-copy (disk full,
	// permission revoked, device error, verification mismatch).
	IOFailure

	// Unknown means an error occurred whose code could not be classified.
	Unknown
)

// String returns the human-readable name of a [Kind].
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case SourceUnavailable:
		return "source-unavailable"
	case DestinationExists:
		return "destination-exists"
	case IOFailure:
		return "io-failure"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Outcome is the immutable result of a single copy invocation.
//
// Errno and Message are captured from the failing operation's returned error
// value at the moment of classification; they are never read back from any
// process-global error state, so later syscalls (logging included) cannot
// corrupt them.
type Outcome struct {
	// Kind is the classification of the attempt.
	Kind Kind

	// Errno is the raw platform error code underlying the failure, or 0 when
	// none could be extracted (and on success).
	Errno syscall.Errno

	// Message is a human-readable description of the failure, empty on
	// success.
	Message string

	// Err is the full wrapped error chain of the failure, nil on success.
	Err error

	// BytesCopied is the number of bytes written to the destination.
	BytesCopied uint64

	// Partial reports that an incomplete destination file was created during
	// a failed attempt and could not be removed again. Callers must treat
	// the destination as corrupt in that case.
	Partial bool

	// Elapsed is the wall-clock duration of the attempt.
	Elapsed time.Duration
}

// Failed reports whether the outcome describes anything but a clean copy.
func (o Outcome) Failed() bool {
	return o.Kind != Success
}
