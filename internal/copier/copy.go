package copier

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// onlyWriter hides the ReadFrom fast path of [*os.File], so that
// [io.CopyBuffer] keeps transfers on the fixed-size chunk buffer.
type onlyWriter struct {
	io.Writer
}

// streamFile streams the opened source into the opened destination in
// fixed-size chunks, optionally tee-hashing both sides for verification.
func (c *Handler) streamFile(ctx context.Context, src io.Reader, dst io.Writer) (uint64, error) {
	srcHasher := blake3.New()
	dstHasher := blake3.New()

	reader := src
	writer := io.Writer(onlyWriter{dst})

	if c.settings.Verify {
		reader = io.TeeReader(reader, srcHasher)
		writer = io.MultiWriter(writer, dstHasher)
	}

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: reader,
	}

	buf := make([]byte, c.settings.ChunkSize)

	written, err := io.CopyBuffer(writer, ctxReader, buf)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return uint64(written), fmt.Errorf("(copier) %w: %w", ErrTransferCanceled, err)
		}

		return uint64(written), fmt.Errorf("(copier) failed to copy file: %w", err)
	}

	if c.settings.Verify {
		srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
		dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

		if srcChecksum != dstChecksum {
			return uint64(written), fmt.Errorf("(copier) %w: %s (src) != %s (dst)", ErrChecksumMismatch, srcChecksum, dstChecksum)
		}
	}

	return uint64(written), nil
}

// isExist reports whether an error chain signals an already existing path.
func isExist(err error) bool {
	return errors.Is(err, fs.ErrExist)
}
