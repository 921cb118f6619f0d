package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/zhproof/internal/convert"
	"github.com/nao1215/zhproof/internal/markup"
	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/registry"
	"github.com/nao1215/zhproof/internal/rewrite"
	"github.com/nao1215/zhproof/internal/walker"
)

// Permissions of files and directories created by the write step.
const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// stepBase holds what every step shares.
type stepBase struct {
	logger *slog.Logger
}

// StepOption configures a step.
type StepOption func(*stepBase)

// WithStepLogger sets a custom logger for a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(b *stepBase) {
		b.logger = logger
	}
}

func newStepBase(opts []StepOption) stepBase {
	b := stepBase{logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// ReadStep loads the job's file.
type ReadStep struct {
	stepBase
}

// NewReadStep creates a new read step.
func NewReadStep(opts ...StepOption) *ReadStep {
	return &ReadStep{stepBase: newStepBase(opts)}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do reads job.Path into job.Source.
func (s *ReadStep) Do(_ context.Context, job *Job) error {
	data, err := os.ReadFile(job.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", job.Path, err)
	}
	job.Source = data
	s.logger.Debug("file read", "path", job.Path, "bytes", len(data))
	return nil
}

// ParseStep builds the markup tree of the job's source.
type ParseStep struct {
	stepBase
}

// NewParseStep creates a new parse step.
func NewParseStep(opts ...StepOption) *ParseStep {
	return &ParseStep{stepBase: newStepBase(opts)}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do parses job.Source into job.Doc.
func (s *ParseStep) Do(_ context.Context, job *Job) error {
	doc, err := markup.Parse(bytes.NewReader(job.Source))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", job.Path, err)
	}
	job.Doc = doc
	return nil
}

// RewriteStep runs one rewrite rule over the in-scope fragments of the
// document. Fragments are handled strictly one after another in document
// order.
type RewriteStep struct {
	stepBase
	rule model.Rule
	fn   registry.RewriteFunc
}

// NewRewriteStep creates a rewrite step for rule.
func NewRewriteStep(rule model.Rule, fn registry.RewriteFunc, opts ...StepOption) *RewriteStep {
	return &RewriteStep{stepBase: newStepBase(opts), rule: rule, fn: fn}
}

// Name returns the step name.
func (s *RewriteStep) Name() string {
	return "rewrite:" + string(s.rule.ID)
}

// Do rewrites every fragment of job.Doc in place.
func (s *RewriteStep) Do(ctx context.Context, job *Job) error {
	w := walker.New(s.rule.Tags, walker.WithPath(job.Path))
	for run := range w.Fragments(job.Doc) {
		job.Fragments++
		out, err := s.fn(ctx, s.rule, run.Fragment)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", job.Path, run.Fragment.Line, err)
		}
		if out.Text != run.Fragment.Text {
			run.Node.SetText(out.Text)
			job.Rewritten++
			s.logger.Debug("fragment rewritten",
				"rule", s.rule.ID,
				"path", job.Path,
				"line", run.Fragment.Line,
				"text", out.Text,
			)
		}
		if out.Deferred {
			job.Deferred++
		}
	}
	return nil
}

// ConvertStep converts every text node between Traditional and Simplified
// Chinese, applies the automatic replacements of the target language and
// rewrites the language declarations.
type ConvertStep struct {
	stepBase
	converter convert.Converter
	direction model.Direction
	post      rewrite.Func
}

// NewConvertStep creates a conversion step. post runs on converted text
// with the target language; it may be nil.
func NewConvertStep(c convert.Converter, dir model.Direction, post rewrite.Func, opts ...StepOption) *ConvertStep {
	return &ConvertStep{stepBase: newStepBase(opts), converter: c, direction: dir, post: post}
}

// Name returns the step name.
func (s *ConvertStep) Name() string {
	return "convert:" + string(s.direction)
}

// Do converts job.Doc in place.
func (s *ConvertStep) Do(_ context.Context, job *Job) error {
	target := s.direction.TargetLang()
	for n := range job.Doc.TextNodes() {
		text := n.Text()
		if !rewrite.ContainsCJK(text) {
			continue
		}
		out, err := s.converter.Convert(text)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", job.Path, n.Line, err)
		}
		if s.post != nil {
			out = s.post(out, target)
		}
		if out != text {
			n.SetText(out)
			job.Rewritten++
		}
	}
	if n := job.Doc.RewriteLang(s.direction.SourceLang(), target); n > 0 {
		s.logger.Debug("language declarations rewritten", "path", job.Path, "count", n, "lang", target)
	}
	return nil
}

// ReviewStep reconstructs the document under one review rule and hands it
// to the rule's reviewer.
type ReviewStep struct {
	stepBase
	rule model.Rule
	fn   registry.ReviewFunc
}

// NewReviewStep creates a review step for rule.
func NewReviewStep(rule model.Rule, fn registry.ReviewFunc, opts ...StepOption) *ReviewStep {
	return &ReviewStep{stepBase: newStepBase(opts), rule: rule, fn: fn}
}

// Name returns the step name.
func (s *ReviewStep) Name() string {
	return "review:" + string(s.rule.ID)
}

// Do appends the review result to job.Reviews.
func (s *ReviewStep) Do(ctx context.Context, job *Job) error {
	content := walker.New(s.rule.Tags, walker.WithPath(job.Path)).Reconstruct(job.Doc)
	res, err := s.fn(ctx, job.Path, s.rule.ID, content)
	if err != nil {
		return fmt.Errorf("failed to review %s: %w", job.Path, err)
	}
	job.Reviews = append(job.Reviews, res)
	return nil
}

// WriteStep renders the document and writes it to the job's target in a
// single write.
type WriteStep struct {
	stepBase
}

// NewWriteStep creates a new write step.
func NewWriteStep(opts ...StepOption) *WriteStep {
	return &WriteStep{stepBase: newStepBase(opts)}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes the job's target. An unchanged document is not written back
// in place. When fragments were handed to the editor and the file on disk
// no longer matches what was read, the file is left as the proofreader
// saved it.
func (s *WriteStep) Do(_ context.Context, job *Job) error {
	target := job.Target()
	if job.InPlace() {
		if !job.Doc.Changed() {
			s.logger.Debug("file unchanged", "path", target)
			return nil
		}
		if job.Deferred > 0 {
			current, err := os.ReadFile(target)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", target, err)
			}
			if !bytes.Equal(current, job.Source) {
				job.Conflict = true
				s.logger.Warn("file was edited during the run, not overwriting; run clean again to apply the remaining changes",
					"path", target)
				return nil
			}
		}
	} else if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	var buf bytes.Buffer
	if err := job.Doc.Render(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", target, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	job.Written = true
	return nil
}
