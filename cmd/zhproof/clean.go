package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/zhproof/internal/config"
	"github.com/nao1215/zhproof/internal/fileset"
	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/pipeline"
	"github.com/nao1215/zhproof/internal/registry"
	"github.com/nao1215/zhproof/internal/replace"
	"github.com/nao1215/zhproof/internal/review"
	"github.com/nao1215/zhproof/internal/terminal"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [path]",
		Short: "Rewrite Chinese text in place with cleaning rules",
		Long: `Clean applies rewrite rules to the text of a file or of every matching file below
a directory. Files are rewritten in place.

Rules:
  chinese_spacing       one space between Chinese text and Latin letters or digits
  number_spacing        remove spaces inside numbers
  replace_text          apply the replacement table
  chinese_punctuation   use full-width punctuation in Chinese text

Replacements with the prompt policy ask before they are applied:
  y  apply the replacement
  e  open the file in the editor at the fragment's line
  any other key skips it

Without --no-git-check, clean asks before working on files outside a git
repository.

Examples:
  # Run every rule over a book
  zhproof clean ./book/src/epub/text

  # Run one rule over one chapter
  zhproof clean -r chinese_spacing ./book/src/epub/text/chapter-1.xhtml`,
		Args: cobra.ExactArgs(1),
		RunE: runCleanCmd,
	}

	cmd.Flags().StringP("rule", "r", registry.AllRules,
		"Rule to apply, or \"all\" for every rewrite rule")
	cmd.Flags().Bool("no-git-check", false,
		"Do not check that the path is inside a git repository")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCleanConfig(cmd, args)
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
	rules, err := reg.Select(cfg.RuleName, model.KindRewrite)
	if err != nil {
		return err
	}

	if !cfg.SkipRepoCheck {
		ok, err := confirmRepository(cmd, cfg.Path, "")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	table, err := newTable(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	resolver := replace.NewResolver(table,
		replace.WithPrompter(replace.NewTerminalPrompter(terminal.StdinKeyReader{}, out)),
		replace.WithEditor(terminal.NewEditor(cfg.EditorTemplate)),
		replace.WithLogger(logger),
	)
	dispatch := registry.NewDispatch(resolver, review.NewReviewer(review.WithLogger(logger)))
	if err := dispatch.Check(reg); err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runClean(ctx, cfg.Path, rules, dispatch, out, logger)
}

// buildCleanConfig creates a Config from the clean flags and arguments.
func buildCleanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Mode = config.ModeClean
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.RuleName, err = cmd.Flags().GetString("rule")
	if err != nil {
		return nil, err
	}

	cfg.SkipRepoCheck, err = cmd.Flags().GetBool("no-git-check")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Path = args[0]
	return cfg, nil
}

// cleanStats counts the outcome of a clean run.
type cleanStats struct {
	processed int
	changed   int
	conflicts int
	failed    int
}

// runClean applies rules one after another. Each rule makes its own pass
// over its files, and every file is read again so that edits made in the
// editor during an earlier pass are kept.
func runClean(ctx context.Context, path string, rules []model.Rule, dispatch registry.Dispatch, out io.Writer, logger *slog.Logger) error {
	var stats cleanStats
	stepOpt := pipeline.WithStepLogger(logger)

	for _, rule := range rules {
		h := dispatch[rule.ID]
		if h.Rewrite == nil {
			return fmt.Errorf("%w: %q", registry.ErrMissingHandler, rule.ID)
		}

		files, err := fileset.Discover(path, rule)
		if err != nil {
			return err
		}
		logger.Debug("rule pass", "rule", rule.ID, "files", len(files))

		p := pipeline.New([]pipeline.Step{
			pipeline.NewReadStep(stepOpt),
			pipeline.NewParseStep(stepOpt),
			pipeline.NewRewriteStep(rule, h.Rewrite, stepOpt),
			pipeline.NewWriteStep(stepOpt),
		}, pipeline.WithLogger(logger))

		for _, file := range files {
			job := pipeline.NewJob(file)
			if err := p.Execute(ctx, job); err != nil {
				if stopsRun(ctx, err) {
					return err
				}
				logger.Error("failed to clean file", "rule", rule.ID, "path", file, "error", err)
				stats.failed++
				continue
			}
			stats.processed++
			if job.Written {
				stats.changed++
			}
			if job.Conflict {
				stats.conflicts++
			}
			fmt.Fprintf(out, "Processed: %s\n", file)
		}
	}

	fmt.Fprintf(out, "%d file pass(es), %d changed", stats.processed, stats.changed)
	if stats.conflicts > 0 {
		fmt.Fprintf(out, ", %d left as edited", stats.conflicts)
	}
	fmt.Fprintln(out)

	if stats.failed > 0 {
		return fmt.Errorf("%d file pass(es) failed", stats.failed)
	}
	return nil
}

// stopsRun reports whether err ends the whole run rather than one file:
// cancellation, or a prompt that cannot be answered.
func stopsRun(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, terminal.ErrInterrupted) ||
		errors.Is(err, terminal.ErrNotTerminal) ||
		errors.Is(err, terminal.ErrUnsupportedPlatform)
}
