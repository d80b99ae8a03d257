package copier

import (
	"errors"
	"syscall"

	"github.com/marchfeld/safecp/internal/schema"
)

// extractErrno pulls the raw platform error code out of an error chain
// ([*fs.PathError] and [*os.SyscallError] both unwrap to a [syscall.Errno]).
// It reads only the error value itself, never any process-global error state,
// so the result cannot be disturbed by syscalls made between the failing
// operation and classification.
func extractErrno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}

	return 0, false
}

// failure builds a failed [schema.Outcome] of the given kind. The raw code is
// taken from the error chain where present, with fallback as the code for
// failures that never touched a syscall (validation, verification). The
// message is the platform's description of the raw code, or the full error
// text when no code exists.
func failure(kind schema.Kind, err error, fallback syscall.Errno) schema.Outcome {
	errno, ok := extractErrno(err)
	if !ok {
		errno = fallback
	}

	message := err.Error()
	if errno != 0 {
		message = errno.Error()
	}

	return schema.Outcome{
		Kind:    kind,
		Errno:   errno,
		Message: message,
		Err:     err,
	}
}
