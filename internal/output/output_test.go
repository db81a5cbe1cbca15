package output

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/yamlify/internal/errors"
	"github.com/mcncl/yamlify/internal/logging"
)

func TestSink_WriteStdout(t *testing.T) {
	var stdout bytes.Buffer
	sink := NewSink(afero.NewMemMapFs(), &stdout, nil)

	require.NoError(t, sink.Write("", "a: 1\n"))
	assert.Equal(t, "a: 1\n", stdout.String())
}

func TestSink_WriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	var stdout, logs bytes.Buffer
	sink := NewSink(fs, &stdout, logging.New(&logs, false))

	content := "- a\n- ''\n"
	require.NoError(t, sink.Write("/out/doc.yaml", content))

	data, err := afero.ReadFile(fs, "/out/doc.yaml")
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Empty(t, stdout.String())
	assert.Contains(t, logs.String(), "path=/out/doc.yaml")
	assert.Contains(t, logs.String(), `size="9 B"`)
}

func TestSink_WriteFileError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	sink := NewSink(fs, &bytes.Buffer{}, nil)

	err := sink.Write("/out.yaml", "a: 1\n")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorTypeOutput, appErr.Type)
	assert.Contains(t, err.Error(), "failed to write to file '/out.yaml'")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("closed")
}

func TestSink_WriteStdoutError(t *testing.T) {
	err := NewSink(nil, failingWriter{}, nil).Write("", "a: 1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write to stdout")
}
