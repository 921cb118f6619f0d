package replace

import (
	"context"
	"fmt"
	"io"

	"github.com/nao1215/zhproof/internal/terminal"
)

// TerminalPrompter asks on a terminal and reads a single keystroke:
// y applies, e edits, any other key skips.
type TerminalPrompter struct {
	keys terminal.KeyReader
	out  io.Writer
}

// NewTerminalPrompter returns a prompter reading keys from keys and writing
// the question to out.
func NewTerminalPrompter(keys terminal.KeyReader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{keys: keys, out: out}
}

// Ask shows the fragment with every occurrence of the match highlighted and
// waits for a key.
func (p *TerminalPrompter) Ask(ctx context.Context, q Prompt) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return DecisionSkip, err
	}

	fmt.Fprintf(p.out, "\n>>> Replace '%s' below with '%s'? (y/e/n)\n",
		terminal.MatchStyle.Render(q.Entry.Match),
		terminal.ReplacementStyle.Render(q.Entry.Replacement))
	fmt.Fprintln(p.out, terminal.SubtleStyle.Render(fmt.Sprintf("%s:%d", q.Fragment.Path, q.Fragment.Line)))
	if q.Entry.Notes != "" {
		fmt.Fprintln(p.out, terminal.SubtleStyle.Render(q.Entry.Notes))
	}
	fmt.Fprintf(p.out, "\n%s\n\n", terminal.Highlight(q.Text, q.Entry.Match, terminal.MatchStyle))

	key, err := p.keys.ReadKey()
	if err != nil {
		return DecisionSkip, err
	}
	switch key {
	case 'y':
		return DecisionApply, nil
	case 'e':
		return DecisionEdit, nil
	default:
		return DecisionSkip, nil
	}
}
