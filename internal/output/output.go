// Package output writes rendered documents to a file or to stdout.
package output

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/mcncl/yamlify/internal/errors"
)

const fileMode = 0o644

// Sink is the destination for rendered YAML
type Sink struct {
	fs     afero.Fs
	stdout io.Writer
	logger log.Logger
}

// NewSink creates a Sink. A nil fs means the OS filesystem and a nil logger
// discards diagnostics.
func NewSink(fs afero.Fs, stdout io.Writer, logger log.Logger) *Sink {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Sink{fs: fs, stdout: stdout, logger: logger}
}

// Write writes content byte for byte to path, or to stdout when path is empty
func (s *Sink) Write(path, content string) error {
	if path == "" {
		if _, err := io.WriteString(s.stdout, content); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if err := afero.WriteFile(s.fs, path, []byte(content), fileMode); err != nil {
		return errors.NewOutputError("failed to write to file '"+path+"'", err)
	}

	level.Info(s.logger).Log("msg", "wrote YAML", "path", path, "size", humanize.Bytes(uint64(len(content))))
	return nil
}
