package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultEditorTemplate is used when neither a configured template nor
// $EDITOR is available.
const DefaultEditorTemplate = "vim +{line} {file}"

// ErrEmptyEditorCommand is returned when the editor template expands to
// nothing.
var ErrEmptyEditorCommand = errors.New("editor command is empty")

// EditorTemplate returns the editor command template to use: configured
// when non-empty, then "$EDITOR +{line} {file}", then the default.
func EditorTemplate(configured string) string {
	if configured != "" {
		return configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor + " +{line} {file}"
	}
	return DefaultEditorTemplate
}

// Editor opens files at a given line in an external editor.
//
// Template is split on whitespace; the placeholders {file} and {line} are
// substituted in every word. The editor inherits the standard streams
// unless Stdin, Stdout or Stderr are set.
type Editor struct {
	Template string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewEditor returns an Editor for the given template, resolved with
// EditorTemplate.
func NewEditor(template string) *Editor {
	return &Editor{Template: EditorTemplate(template)}
}

// Command builds the editor command for path at line without starting it.
func (e *Editor) Command(path string, line int) (*exec.Cmd, error) {
	return e.CommandContext(context.Background(), path, line)
}

// CommandContext is Command bound to ctx.
func (e *Editor) CommandContext(ctx context.Context, path string, line int) (*exec.Cmd, error) {
	words := strings.Fields(EditorTemplate(e.Template))
	if len(words) == 0 {
		return nil, ErrEmptyEditorCommand
	}
	if line < 1 {
		line = 1
	}
	r := strings.NewReplacer("{file}", path, "{line}", strconv.Itoa(line))
	for i, w := range words {
		words[i] = r.Replace(w)
	}

	cmd := exec.CommandContext(ctx, words[0], words[1:]...) //nolint:gosec // the editor is user configured
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if e.Stdin != nil {
		cmd.Stdin = e.Stdin
	}
	if e.Stdout != nil {
		cmd.Stdout = e.Stdout
	}
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	}
	return cmd, nil
}

// Open runs the editor and waits for it to exit.
func (e *Editor) Open(ctx context.Context, path string, line int) error {
	cmd, err := e.CommandContext(ctx, path, line)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %q: %w", cmd.Path, err)
	}
	return nil
}
