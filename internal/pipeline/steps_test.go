package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/zhproof/internal/convert"
	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/registry"
	"github.com/nao1215/zhproof/internal/rewrite"
)

const chapter = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="zh-Hans">
<body>
<p>中文ABC中文</p>
<div>中文ABC</div>
</body>
</html>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func spacingRule() model.Rule {
	return model.Rule{
		ID:         model.RuleChineseSpacing,
		Kind:       model.KindRewrite,
		Extensions: []string{"xhtml"},
		Tags:       []string{"p"},
		SkipFiles:  []string{},
		Policy:     model.PolicyAuto,
	}
}

func cleanPipeline(fn registry.RewriteFunc) *Pipeline {
	return New([]Step{
		NewReadStep(),
		NewParseStep(),
		NewRewriteStep(spacingRule(), fn),
		NewWriteStep(),
	})
}

// TestRewritePipeline tests clean-style pipelines on real files.
func TestRewritePipeline(t *testing.T) {
	t.Parallel()

	t.Run("rewrites in-scope text only", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
		job := NewJob(path)

		if err := cleanPipeline(registry.Pure(rewrite.ChineseSpacing)).Execute(t.Context(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := strings.Replace(chapter, "<p>中文ABC中文</p>", "<p>中文 ABC 中文</p>", 1)
		if got := readFile(t, path); got != want {
			t.Errorf("unexpected output:\n%s", got)
		}
		if !job.Written || job.Rewritten != 1 || job.Fragments != 1 {
			t.Errorf("unexpected job counters %+v", job)
		}
	})

	t.Run("unchanged file is not written", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
		job := NewJob(path)
		identity := registry.Pure(func(text, _ string) string { return text })

		if err := cleanPipeline(identity).Execute(t.Context(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.Written {
			t.Error("expected unchanged file not to be written")
		}
	})

	t.Run("hand edits during the run are kept", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
		edited := strings.Replace(chapter, "中文ABC中文", "手工修改", 1)
		editInEditor := func(_ context.Context, _ model.Rule, f model.Fragment) (registry.Outcome, error) {
			if err := os.WriteFile(path, []byte(edited), 0o600); err != nil {
				return registry.Outcome{}, err
			}
			return registry.Outcome{Text: f.Text + "!", Deferred: true}, nil
		}
		job := NewJob(path)

		if err := cleanPipeline(editInEditor).Execute(t.Context(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !job.Conflict || job.Written {
			t.Errorf("expected conflict without write, got %+v", job)
		}
		if got := readFile(t, path); got != edited {
			t.Errorf("expected hand edit to survive, got:\n%s", got)
		}
	})

	t.Run("deferred fragment without edit still writes", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
		deferOnly := func(_ context.Context, _ model.Rule, f model.Fragment) (registry.Outcome, error) {
			return registry.Outcome{Text: f.Text + "。", Deferred: true}, nil
		}
		job := NewJob(path)

		if err := cleanPipeline(deferOnly).Execute(t.Context(), job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.Conflict || !job.Written || job.Deferred != 1 {
			t.Errorf("unexpected job %+v", job)
		}
		if !strings.Contains(readFile(t, path), "<p>中文ABC中文。</p>") {
			t.Error("expected rewritten fragment in output")
		}
	})

	t.Run("fragment line is reported", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
		var lines []int
		record := func(_ context.Context, _ model.Rule, f model.Fragment) (registry.Outcome, error) {
			lines = append(lines, f.Line)
			return registry.Outcome{Text: f.Text}, nil
		}

		if err := cleanPipeline(record).Execute(t.Context(), NewJob(path)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lines) != 1 || lines[0] != 4 {
			t.Errorf("expected fragment on line 4, got %v", lines)
		}
	})

	t.Run("missing file fails at read", func(t *testing.T) {
		t.Parallel()

		job := NewJob(filepath.Join(t.TempDir(), "missing.xhtml"))
		if err := cleanPipeline(registry.Pure(rewrite.ChineseSpacing)).Execute(t.Context(), job); err == nil {
			t.Error("expected error for missing file")
		}
		if len(job.Steps) != 0 {
			t.Errorf("expected no completed steps, got %v", job.Steps)
		}
	})
}

// TestConvertPipeline tests conversion into a mirrored output tree.
func TestConvertPipeline(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	src := `<html xml:lang="zh-Hant" lang="zh-Hant"><body><p>這個著作</p><p>ABC</p></body></html>`
	path := writeFile(t, in, "ch01.xhtml", src)

	converter := convert.Func(func(text string) (string, error) {
		return strings.NewReplacer("這", "这", "個", "个").Replace(text), nil
	})
	var postLang string
	post := func(text, lang string) string {
		postLang = lang
		return strings.ReplaceAll(text, "著", "着")
	}

	job := NewJob(path)
	job.OutPath = filepath.Join(out, "text", "ch01.xhtml")
	p := New([]Step{
		NewReadStep(),
		NewParseStep(),
		NewConvertStep(converter, model.TraditionalToSimplified, post),
		NewWriteStep(),
	})

	if err := p.Execute(t.Context(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<html xml:lang="zh-Hans" lang="zh-Hans"><body><p>这个着作</p><p>ABC</p></body></html>`
	if got := readFile(t, job.OutPath); got != want {
		t.Errorf("unexpected output:\n got %s\nwant %s", got, want)
	}
	if postLang != "zh-Hans" {
		t.Errorf("expected replacements for zh-Hans, got %q", postLang)
	}
	if readFile(t, path) != src {
		t.Error("expected input file to be untouched")
	}
}

// TestReviewPipeline tests that review steps see line-faithful text.
func TestReviewPipeline(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ch01.xhtml", chapter)
	rule := model.Rule{ID: model.RulePunctuationLineEnd, Kind: model.KindReview, Tags: []string{"p"}}

	var content string
	fn := func(_ context.Context, p string, id model.RuleID, c string) (model.ReviewResult, error) {
		content = c
		return model.ReviewResult{Path: p, Rule: id, Lines: []model.FlaggedLine{{Line: 4, Rule: id, Path: p}}}, nil
	}
	job := NewJob(path)
	p := New([]Step{NewReadStep(), NewParseStep(), NewReviewStep(rule, fn)})

	if err := p.Execute(t.Context(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := strings.Count(content, "\n"), strings.Count(chapter, "\n"); got != want {
		t.Errorf("expected %d line breaks, got %d", want, got)
	}
	if lines := strings.Split(content, "\n"); strings.TrimSpace(lines[3]) != "中文ABC中文" {
		t.Errorf("expected paragraph on line 4, got %q", lines[3])
	}
	if strings.Contains(content, "<div>") || strings.Count(content, "中文ABC") != 1 {
		t.Errorf("expected out-of-scope text to be blanked: %q", content)
	}
	if len(job.Reviews) != 1 || job.Reviews[0].Path != path {
		t.Errorf("unexpected reviews %+v", job.Reviews)
	}
}
