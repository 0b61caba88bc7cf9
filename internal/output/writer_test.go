package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterWritesExactReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	var status bytes.Buffer

	require.NoError(t, NewFileWriter(path, &status).Emit("# Arch\n\nbody"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Arch\n\nbody", string(data))
	assert.Equal(t, "Report saved to "+path+"\n", status.String())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestFileWriterOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("an older and much longer report"), 0o644))

	require.NoError(t, NewFileWriter(path, nil).Emit("new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileWriterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.md")
	var status bytes.Buffer

	err := NewFileWriter(path, &status).Emit("x")

	var oe *OutputError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, path, oe.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, status.String())
}

func TestConsoleWriter(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewConsoleWriter(&out, nil).Emit("# Report"))
	assert.Equal(t, "\n# Report\n", out.String())
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(md string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<" + md + ">", nil
}

func TestConsoleWriterRenders(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewConsoleWriter(&out, stubRenderer{}).Emit("x"))
	assert.Equal(t, "\n<x>\n", out.String())
}

func TestConsoleWriterRenderFallback(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewConsoleWriter(&out, stubRenderer{err: errors.New("bad")}).Emit("x"))
	assert.Equal(t, "\nx\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestConsoleWriterFailure(t *testing.T) {
	err := NewConsoleWriter(failingWriter{}, nil).Emit("x")
	var oe *OutputError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "stdout", oe.Path)
}
