package viewer

import (
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/review"
)

type fakeEditor struct {
	path string
	line int
	err  error
}

func (f *fakeEditor) Command(path string, line int) (*exec.Cmd, error) {
	f.path, f.line = path, line
	if f.err != nil {
		return nil, f.err
	}
	return exec.Command("true"), nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newSession() review.Session {
	return review.Session{
		Path:    "text/ch1.xhtml",
		Rule:    model.RulePunctuationLineEnd,
		Content: "\n第一句。\n\n第二句\n第三句。\n第四句\n\n第五句。\n",
		Lines:   []int{4, 6},
	}
}

func TestModelNavigation(t *testing.T) {
	t.Parallel()

	var m tea.Model = NewModel(newSession(), nil, DefaultKeyMap())

	m, cmd := m.Update(runes("n"))
	if isQuit(cmd) {
		t.Fatal("next on first line quit")
	}
	if got := m.(Model).Current(); got != 6 {
		t.Fatalf("Current() = %d, want 6", got)
	}

	m, _ = m.Update(runes("p"))
	if got := m.(Model).Current(); got != 4 {
		t.Fatalf("Current() after p = %d, want 4", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.(Model).Current(); got != 4 {
		t.Fatalf("Current() after left on first line = %d, want 4", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !isQuit(cmd) {
		t.Error("next on last line did not quit")
	}
}

func TestModelQuitAndAbort(t *testing.T) {
	t.Parallel()

	m := NewModel(newSession(), nil, DefaultKeyMap())

	next, cmd := m.Update(runes("q"))
	if !isQuit(cmd) || next.(Model).Aborted() {
		t.Error("q should quit the file without aborting")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) || !next.(Model).Aborted() {
		t.Error("ctrl+c should quit and abort")
	}
}

func TestModelEdit(t *testing.T) {
	t.Parallel()

	t.Run("opens editor at flagged line", func(t *testing.T) {
		t.Parallel()

		editor := &fakeEditor{}
		m := NewModel(newSession(), editor, DefaultKeyMap())
		_, cmd := m.Update(runes("e"))
		if cmd == nil {
			t.Fatal("edit returned no command")
		}
		if editor.path != "text/ch1.xhtml" || editor.line != 4 {
			t.Errorf("editor opened %s:%d, want text/ch1.xhtml:4", editor.path, editor.line)
		}
	})

	t.Run("command failure is shown", func(t *testing.T) {
		t.Parallel()

		m := NewModel(newSession(), &fakeEditor{err: errors.New("no vim")}, DefaultKeyMap())
		next, cmd := m.Update(runes("e"))
		if cmd != nil {
			t.Error("failed edit returned a command")
		}
		if !strings.Contains(next.View(), "no vim") {
			t.Errorf("View() does not show the editor error")
		}
	})

	t.Run("editor exit error is shown", func(t *testing.T) {
		t.Parallel()

		m := NewModel(newSession(), &fakeEditor{}, DefaultKeyMap())
		next, _ := m.Update(editorFinishedMsg{err: errors.New("exit status 1")})
		if !strings.Contains(next.View(), "exit status 1") {
			t.Errorf("View() does not show the editor exit error")
		}
	})
}

func TestModelView(t *testing.T) {
	t.Parallel()

	m := NewModel(newSession(), nil, DefaultKeyMap())
	view := m.View()

	for _, want := range []string{
		"punctuation_line_end",
		"text/ch1.xhtml (1/2)",
		"Line 2:", "第一句。",
		"Line 4:", "第二句",
		"Line 5:", "Line 6:",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "Line 8:") {
		t.Error("View() shows more than two context lines below")
	}
}

func TestModelScroll(t *testing.T) {
	t.Parallel()

	var m tea.Model = NewModel(newSession(), nil, DefaultKeyMap())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: chromeRows + 2})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(Model).scroll; got != 1 {
		t.Fatalf("scroll = %d, want 1", got)
	}
	if strings.Contains(m.View(), "Line 2:") {
		t.Error("scrolled view still shows the first row")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.(Model).scroll; got != 0 {
		t.Errorf("scroll = %d, want 0", got)
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		cols int
		want []string
	}{
		{name: "ascii", in: "abcdef", cols: 4, want: []string{"abcd", "ef"}},
		{name: "wide characters take two cells", in: "一二三四五", cols: 4, want: []string{"一二", "三四", "五"}},
		{name: "mixed", in: "a一b", cols: 3, want: []string{"a一", "b"}},
		{name: "wide wider than cols", in: "一二", cols: 1, want: []string{"一", "二"}},
		{name: "empty", in: "", cols: 4, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Wrap(tt.in, tt.cols); !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.cols, got, tt.want)
			}
		})
	}
}

func TestCellWidth(t *testing.T) {
	t.Parallel()

	for r, want := range map[rune]int{'a': 1, '中': 2, '，': 2, 'Ａ': 2, 'ｱ': 1} {
		if got := CellWidth(r); got != want {
			t.Errorf("CellWidth(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestNearby(t *testing.T) {
	t.Parallel()

	lines := strings.Split("a\n\nb\nc\nX\n\nd\ne\nf", "\n")
	above, below := Nearby(lines, 5, 2)
	if !slices.Equal(above, []int{3, 4}) {
		t.Errorf("above = %v, want [3 4]", above)
	}
	if !slices.Equal(below, []int{7, 8}) {
		t.Errorf("below = %v, want [7 8]", below)
	}

	above, below = Nearby(lines, 1, 2)
	if len(above) != 0 || !slices.Equal(below, []int{3, 4}) {
		t.Errorf("Nearby(1) = %v, %v", above, below)
	}
}
