package copier

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/marchfeld/safecp/internal/configuration"
	"github.com/marchfeld/safecp/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errWriteRefused = errors.New("write refused")
	errReadRefused  = errors.New("read refused")
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteRefused
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errReadRefused
}

func newStreamHandler(settings configuration.Settings) *Handler {
	return NewHandler(&schema.OS{}, &schema.Unix{}, settings)
}

func TestStreamFile_Success(t *testing.T) {
	t.Parallel()

	handler := newStreamHandler(configuration.DefaultSettings())

	src := strings.NewReader("some stream content")
	dst := &bytes.Buffer{}

	written, err := handler.streamFile(context.Background(), src, dst)

	require.NoError(t, err)
	assert.Equal(t, uint64(19), written)
	assert.Equal(t, "some stream content", dst.String())
}

func TestStreamFile_SmallChunks(t *testing.T) {
	t.Parallel()

	settings := configuration.DefaultSettings()
	settings.ChunkSize = 3

	handler := newStreamHandler(settings)

	payload := strings.Repeat("x", 1000)
	dst := &bytes.Buffer{}

	written, err := handler.streamFile(context.Background(), strings.NewReader(payload), dst)

	require.NoError(t, err)
	assert.Equal(t, uint64(1000), written)
	assert.Equal(t, payload, dst.String())
}

func TestStreamFile_WriteError(t *testing.T) {
	t.Parallel()

	handler := newStreamHandler(configuration.DefaultSettings())

	_, err := handler.streamFile(context.Background(), strings.NewReader("content"), failingWriter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errWriteRefused)
}

func TestStreamFile_ReadError(t *testing.T) {
	t.Parallel()

	handler := newStreamHandler(configuration.DefaultSettings())

	_, err := handler.streamFile(context.Background(), failingReader{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errReadRefused)
}

func TestStreamFile_Canceled(t *testing.T) {
	t.Parallel()

	handler := newStreamHandler(configuration.DefaultSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := handler.streamFile(ctx, strings.NewReader("content"), &bytes.Buffer{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransferCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), written)
}

func TestStreamFile_VerifyDisabled(t *testing.T) {
	t.Parallel()

	settings := configuration.DefaultSettings()
	settings.Verify = false

	handler := newStreamHandler(settings)

	dst := &bytes.Buffer{}

	written, err := handler.streamFile(context.Background(), strings.NewReader("content"), dst)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), written)
	assert.Equal(t, "content", dst.String())
}

func TestContextReader_PassesThrough(t *testing.T) {
	t.Parallel()

	cr := &contextReader{
		ctx:    context.Background(),
		reader: strings.NewReader("abc"),
	}

	buf := make([]byte, 8)
	n, err := cr.Read(buf)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestContextReader_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cr := &contextReader{
		ctx:    ctx,
		reader: strings.NewReader("abc"),
	}

	buf := make([]byte, 8)
	n, err := cr.Read(buf)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}
