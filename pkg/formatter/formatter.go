// Package formatter runs an external code formatter over files the tool
// rewrites, so that an edited pnpm-workspace.yaml matches the repository's
// prettier style instead of the YAML encoder's.
package formatter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// Formatter invokes a formatting command on files. The command's argv is
// fixed at construction; the file path is appended per call.
type Formatter struct {
	command []string
	dir     string
}

// New creates a Formatter running command with dir as the working
// directory. An empty command is invalid.
func New(command []string, dir string) (*Formatter, error) {
	if len(command) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "formatter command is empty")
	}
	return &Formatter{command: command, dir: dir}, nil
}

// Format runs the formatter on path. Failures are reported with the
// FORMATTER_UNAVAILABLE code so callers can degrade to a warning; the file
// content written before formatting is already valid.
func (f *Formatter) Format(ctx context.Context, path string) error {
	args := append(append([]string{}, f.command[1:]...), path)
	cmd := exec.CommandContext(ctx, f.command[0], args...)
	cmd.Dir = f.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return errors.Wrap(errors.ErrCodeFormatterUnavailable, err, "running %s: %s", f.command[0], msg)
		}
		return errors.Wrap(errors.ErrCodeFormatterUnavailable, err, "running %s", f.command[0])
	}
	return nil
}

// String returns the formatter's command line for log output.
func (f *Formatter) String() string {
	return strings.Join(f.command, " ")
}
