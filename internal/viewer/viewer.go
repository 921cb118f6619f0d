// Package viewer is the interactive terminal pager for flagged lines.
//
// Each flagged line is shown with up to two non-blank lines of context on
// either side. The proofreader moves between flagged lines, scrolls long
// pages, opens the file in an editor at the flagged line, or quits the
// file. Wide characters are wrapped by terminal cell width.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/zhproof/internal/review"
)

// ErrAborted is returned when the proofreader stops the whole run.
var ErrAborted = errors.New("review aborted")

// Viewer runs one full-screen program per session.
type Viewer struct {
	editor CommandBuilder
	keys   KeyMap
	in     io.Reader
	out    io.Writer
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithEditor sets the editor launched by the edit key.
func WithEditor(e CommandBuilder) Option {
	return func(v *Viewer) {
		v.editor = e
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(v *Viewer) {
		v.keys = k
	}
}

// WithIO sets the terminal input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(v *Viewer) {
		v.in = in
		v.out = out
	}
}

// New returns a Viewer on the standard streams.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		keys: DefaultKeyMap(),
		in:   os.Stdin,
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View implements review.Viewer. It blocks until the session ends.
func (v *Viewer) View(ctx context.Context, s review.Session) error {
	if len(s.Lines) == 0 {
		return nil
	}
	p := tea.NewProgram(
		NewModel(s, v.editor, v.keys),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(v.in),
		tea.WithOutput(v.out),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run viewer for %s: %w", s.Path, err)
	}
	if m, ok := final.(Model); ok && m.Aborted() {
		return ErrAborted
	}
	return nil
}
