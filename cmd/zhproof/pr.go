package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/zhproof/internal/config"
	"github.com/nao1215/zhproof/internal/fileset"
	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/pipeline"
	"github.com/nao1215/zhproof/internal/registry"
	"github.com/nao1215/zhproof/internal/replace"
	"github.com/nao1215/zhproof/internal/report"
	"github.com/nao1215/zhproof/internal/review"
	"github.com/nao1215/zhproof/internal/terminal"
	"github.com/nao1215/zhproof/internal/viewer"
)

// NewPRCmd creates the pr command.
func NewPRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr [directory]",
		Short: "Review lines that need a proofreader's attention",
		Long: `PR flags lines of the book that need a human eye and shows them one at a time.

Rules:
  punctuation_line_end  lines that do not end with closing punctuation

In the viewer:
  n, space, enter, right  next flagged line (leaves the file after the last)
  p, left                 previous flagged line
  up, down                scroll
  e                       open the file in the editor at the flagged line
  q                       leave the file

No file is modified by pr. With --format text, json or markdown the flagged
lines are listed instead of shown in the viewer.

Without --no-branch-check, pr asks before working outside a git repository
or on a branch other than the canonical one (base unless configured).

Examples:
  # Review a book
  zhproof pr ./book/src/epub/text

  # List flagged lines as JSON into a file
  zhproof pr --format json -o flagged.json ./book/src/epub/text`,
		Args: cobra.ExactArgs(1),
		RunE: runPRCmd,
	}

	cmd.Flags().StringP("rule", "r", registry.AllRules,
		"Rule to review, or \"all\" for every review rule")
	cmd.Flags().Bool("no-branch-check", false,
		"Do not check the git repository and branch")
	cmd.Flags().StringP("format", "f", string(config.DefaultFormat),
		"Output format: tui, text, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write the listing to a file instead of stdout (not with --format tui)")

	return cmd
}

// runPRCmd executes the pr command.
func runPRCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildPRConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	reg, err := registry.New(cfg.Rules())
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	rules, err := reg.Select(cfg.RuleName, model.KindReview)
	if err != nil {
		return err
	}

	if !cfg.SkipRepoCheck {
		ok, err := confirmRepository(cmd, cfg.Path, cfg.CanonicalBranch)
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	table, err := newTable(cfg)
	if err != nil {
		return err
	}
	opts := []review.Option{review.WithLogger(logger)}
	if cfg.Format == config.FormatTUI {
		v := viewer.New(
			viewer.WithEditor(terminal.NewEditor(cfg.EditorTemplate)),
			viewer.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
		)
		opts = append(opts, review.WithViewer(v))
	}
	dispatch := registry.NewDispatch(
		replace.NewResolver(table, replace.WithAutoOnly(), replace.WithLogger(logger)),
		review.NewReviewer(opts...),
	)
	if err := dispatch.Check(reg); err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	results, reviewErr := runReview(ctx, cfg.Path, rules, dispatch, logger)
	if errors.Is(reviewErr, viewer.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Review aborted.")
		return nil
	}
	if reviewErr != nil && !errors.Is(reviewErr, errReviewFailed) {
		return reviewErr
	}

	// Files that failed are reported after the lines of the others.
	if cfg.Format == config.FormatTUI {
		s := report.Summarize(results)
		fmt.Fprintf(cmd.OutOrStdout(), "%d flagged line(s) in %d of %d file(s)\n", s.Lines, s.FlaggedFiles, s.Files)
		return reviewErr
	}
	if err := outputReport(cfg, results, cmd.OutOrStdout()); err != nil {
		return err
	}
	return reviewErr
}

// errReviewFailed is returned by runReview when some files could not be
// read or parsed. The results of the other files are still returned.
var errReviewFailed = errors.New("review failed")

// buildPRConfig creates a Config from the pr flags and arguments.
func buildPRConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Mode = config.ModeReview
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.RuleName, err = cmd.Flags().GetString("rule")
	if err != nil {
		return nil, err
	}

	cfg.SkipRepoCheck, err = cmd.Flags().GetBool("no-branch-check")
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	cfg.Format = config.Format(format)

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Path = args[0]
	return cfg, nil
}

// runReview reviews the files of every rule, one file at a time. A file
// that fails is logged and counted, and the run goes on with the next one.
func runReview(ctx context.Context, path string, rules []model.Rule, dispatch registry.Dispatch, logger *slog.Logger) ([]model.ReviewResult, error) {
	var results []model.ReviewResult
	failed := 0
	stepOpt := pipeline.WithStepLogger(logger)

	for _, rule := range rules {
		h := dispatch[rule.ID]
		if h.Review == nil {
			return results, fmt.Errorf("%w: %q", registry.ErrMissingHandler, rule.ID)
		}

		files, err := fileset.Discover(path, rule)
		if err != nil {
			return results, err
		}
		logger.Debug("rule pass", "rule", rule.ID, "files", len(files))

		p := pipeline.New([]pipeline.Step{
			pipeline.NewReadStep(stepOpt),
			pipeline.NewParseStep(stepOpt),
			pipeline.NewReviewStep(rule, h.Review, stepOpt),
		}, pipeline.WithLogger(logger))

		for _, file := range files {
			job := pipeline.NewJob(file)
			err := p.Execute(ctx, job)
			results = append(results, job.Reviews...)
			if err == nil {
				continue
			}
			if errors.Is(err, viewer.ErrAborted) || stopsRun(ctx, err) {
				return results, err
			}
			logger.Error("failed to review file", "rule", rule.ID, "path", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d file pass(es) could not be reviewed", errReviewFailed, failed)
	}
	return results, nil
}

// outputReport writes the flagged lines in the configured format to
// cfg.ReportFile, or to stdout when no file is set.
func outputReport(cfg *config.Config, results []model.ReviewResult, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case config.FormatMarkdown:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}
	_, err := writer.Write(results)
	return err
}
