package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/zhproof/internal/markup"
	"github.com/nao1215/zhproof/internal/model"
)

// Job is one file processed by a pipeline. A Job is owned by a single
// pipeline run and never shared.
type Job struct {
	// Path is the file read by the pipeline.
	Path string

	// OutPath is the file written by the pipeline. Empty means Path.
	OutPath string

	// Source is the content of Path as read.
	Source []byte

	// Doc is the parsed document.
	Doc *markup.Document

	// Fragments counts the fragments the rewrite step visited.
	Fragments int

	// Rewritten counts the fragments whose text changed.
	Rewritten int

	// Deferred counts the fragments handed to the editor.
	Deferred int

	// Reviews holds the results of review steps.
	Reviews []model.ReviewResult

	// Written is set when the write step wrote the file.
	Written bool

	// Conflict is set when the file was edited by hand during the run and
	// the write step left it alone.
	Conflict bool

	// Err is the error that stopped the pipeline, if any.
	Err error

	// Steps lists the steps that ran, in order.
	Steps []string
}

// NewJob returns a job that reads path and writes the result back to it.
func NewJob(path string) *Job {
	return &Job{Path: path}
}

// Target returns the file the job writes.
func (j *Job) Target() string {
	if j.OutPath == "" {
		return j.Path
	}
	return j.OutPath
}

// InPlace reports whether the job writes the file it read.
func (j *Job) InPlace() bool {
	return j.Target() == j.Path
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the job as left by the
// previous steps.
type Step interface {
	// Do executes the step. A returned error stops the pipeline unless it
	// was built with WithContinueOnError.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run the remaining steps
// after one fails. The first error is still recorded in the job.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline running steps in order.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{steps: steps}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Execute runs all steps on job. Cancellation is checked before each step;
// a step blocked on the proofreader is not interrupted.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"path", job.Path,
				"reason", ctx.Err(),
			)
			job.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "path", job.Path)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"path", job.Path,
				"error", err,
			)
			if job.Err == nil {
				job.Err = err
			}
			if !p.continueOnError {
				return err
			}
		}
		job.Steps = append(job.Steps, step.Name())
	}
	return job.Err
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
