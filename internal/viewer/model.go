package viewer

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/zhproof/internal/review"
)

const (
	// contextLines is the number of non-blank lines shown above and below
	// the flagged line.
	contextLines = 2
	// margin is the left and right padding in cells.
	margin = 2
	// chromeRows are the rows used by the header and the help line.
	chromeRows = 7
)

// CommandBuilder builds the command that opens an editor at a file line.
type CommandBuilder interface {
	Command(path string, line int) (*exec.Cmd, error)
}

// editorFinishedMsg is sent when the editor process exits.
type editorFinishedMsg struct {
	err error
}

// row is one rendered screen row.
type row struct {
	text  string
	style lipgloss.Style
}

// Model is the bubbletea model of one review session.
type Model struct {
	session review.Session
	lines   []string
	keys    KeyMap
	editor  CommandBuilder

	idx     int
	scroll  int
	width   int
	height  int
	status  string
	aborted bool
}

// NewModel returns a model showing the first flagged line of s.
func NewModel(s review.Session, editor CommandBuilder, keys KeyMap) Model {
	return Model{
		session: s,
		lines:   strings.Split(s.Content, "\n"),
		keys:    keys,
		editor:  editor,
		width:   80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Current returns the flagged line number on screen.
func (m Model) Current() int {
	if len(m.session.Lines) == 0 {
		return 0
	}
	return m.session.Lines[m.idx]
}

// Aborted reports whether the proofreader asked to stop the whole run.
func (m Model) Aborted() bool {
	return m.aborted
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("editor failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Abort):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if m.idx >= len(m.session.Lines)-1 {
			return m, tea.Quit
		}
		m.idx++
		m.scroll = 0

	case key.Matches(msg, m.keys.Prev):
		if m.idx > 0 {
			m.idx--
			m.scroll = 0
		}

	case key.Matches(msg, m.keys.ScrollDown):
		if m.scroll < len(m.rows())-m.visibleRows() {
			m.scroll++
		}

	case key.Matches(msg, m.keys.ScrollUp):
		if m.scroll > 0 {
			m.scroll--
		}

	case key.Matches(msg, m.keys.Edit):
		if m.editor == nil {
			m.status = "no editor configured"
			return m, nil
		}
		cmd, err := m.editor.Command(m.session.Path, m.Current())
		if err != nil {
			m.status = fmt.Sprintf("editor failed: %v", err)
			return m, nil
		}
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorFinishedMsg{err: err}
		})
	}
	return m, nil
}

// visibleRows returns how many content rows fit on screen. Before the
// first window size message every row is shown.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return len(m.rows())
	}
	return max(m.height-chromeRows, 1)
}

// rows lays out the context above, the flagged line and the context below.
// Each line gets a label row, its wrapped text and a blank separator after
// each block.
func (m Model) rows() []row {
	n := m.Current()
	if n < 1 || n > len(m.lines) {
		return nil
	}
	above, below := Nearby(m.lines, n, contextLines)
	cols := max(m.width-2*margin, 1)

	var rows []row
	block := func(numbers []int, style lipgloss.Style) {
		for _, num := range numbers {
			rows = append(rows, row{text: fmt.Sprintf("Line %d:", num), style: labelStyle})
			for _, w := range Wrap(strings.TrimSpace(m.lines[num-1]), cols) {
				rows = append(rows, row{text: w, style: style})
			}
		}
		rows = append(rows, row{})
	}
	block(above, contextStyle)
	block([]int{n}, flaggedStyle)
	block(below, contextStyle)
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	pad := strings.Repeat(" ", margin)

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(string(m.session.Rule))))
	b.WriteString("\n\n")
	b.WriteString(pad + pathStyle.Render(fmt.Sprintf("%s (%d/%d)", m.session.Path, m.idx+1, len(m.session.Lines))))
	b.WriteString("\n\n")

	rows := m.rows()
	end := min(m.scroll+m.visibleRows(), len(rows))
	for _, r := range rows[min(m.scroll, end):end] {
		if r.text != "" {
			b.WriteString(pad + r.style.Render(r.text))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(pad + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(pad + helpStyle.Render(m.keys.help()))
	return b.String()
}
