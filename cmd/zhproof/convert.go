package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nao1215/zhproof/internal/config"
	"github.com/nao1215/zhproof/internal/convert"
	"github.com/nao1215/zhproof/internal/fileset"
	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/pipeline"
	"github.com/nao1215/zhproof/internal/replace"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <t2s|s2t> <input_dir> <output_dir>",
		Short: "Convert a book between Traditional and Simplified Chinese",
		Long: `Convert rewrites the Chinese text of an EPUB source tree into the other script.

The following files under input_dir are converted and written to the same
relative path under output_dir:
  images/*.svg
  src/epub/content.opf
  src/epub/toc.xhtml
  src/epub/text/*.xhtml

After conversion the automatic entries of the replacement table are applied
for the target language, and language declarations (xml:lang, lang and
dc:language) are changed from the source to the target language.

Examples:
  # Traditional to Simplified
  zhproof convert t2s ./book-hant ./book-hans

  # Simplified to Traditional, two files at a time
  zhproof convert s2t --jobs 2 ./book-hans ./book-hant`,
		Args: cobra.ExactArgs(3),
		RunE: runConvertCmd,
	}

	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of files converted concurrently")
	cmd.Flags().Bool("no-progress", false,
		"Do not show the progress bar")

	return cmd
}

// runConvertCmd executes the convert command.
func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConvertConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)
	ctx, cancel := signalContext(logger)
	defer cancel()

	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}
	progress := cmd.ErrOrStderr()
	if noProgress {
		progress = io.Discard
	}

	return runConvert(ctx, cfg, cmd.OutOrStdout(), progress, logger)
}

// buildConvertConfig creates a Config from the convert flags and arguments.
func buildConvertConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Mode = config.ModeConvert
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Direction = model.Direction(args[0])
	cfg.InputDir = args[1]
	cfg.OutputDir = args[2]
	return cfg, nil
}

// runConvert converts every target file of cfg.InputDir concurrently and
// prints one line per converted file to out.
func runConvert(ctx context.Context, cfg *config.Config, out, progress io.Writer, logger *slog.Logger) error {
	converter, err := convert.NewOpenCC(cfg.Direction)
	if err != nil {
		return err
	}
	return convertTree(ctx, cfg, converter, out, progress, logger)
}

// convertTree is runConvert with the converter supplied.
func convertTree(ctx context.Context, cfg *config.Config, converter convert.Converter, out, progress io.Writer, logger *slog.Logger) error {
	table, err := newTable(cfg)
	if err != nil {
		return err
	}
	resolver := replace.NewResolver(table, replace.WithAutoOnly(), replace.WithLogger(logger))

	targets, err := fileset.ConvertTargets(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintf(out, "No files to convert in %s\n", cfg.InputDir)
		return nil
	}

	jobs := make([]*pipeline.Job, 0, len(targets))
	for _, path := range targets {
		outPath, err := fileset.OutputPath(cfg.InputDir, cfg.OutputDir, path)
		if err != nil {
			return err
		}
		job := pipeline.NewJob(path)
		job.OutPath = outPath
		jobs = append(jobs, job)
	}

	logger.Debug("starting conversion",
		"direction", cfg.Direction,
		"input", cfg.InputDir,
		"output", cfg.OutputDir,
		"files", len(jobs),
	)

	stepOpt := pipeline.WithStepLogger(logger)
	factory := func() *pipeline.Pipeline {
		return pipeline.New([]pipeline.Step{
			pipeline.NewReadStep(stepOpt),
			pipeline.NewParseStep(stepOpt),
			pipeline.NewConvertStep(converter, cfg.Direction, resolver.Auto, stepOpt),
			pipeline.NewWriteStep(stepOpt),
		}, pipeline.WithLogger(logger))
	}

	bar := newProgressBar(len(jobs), progress, string(cfg.Direction))
	var mu sync.Mutex
	failed := 0
	processor := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.Jobs),
		pipeline.WithBatchLogger(logger),
	)
	err = processor.ProcessBatch(ctx, jobs, func(job *pipeline.Job, _ int) {
		mu.Lock()
		defer mu.Unlock()
		if err := bar.Add(1); err != nil {
			logger.Warn("failed to update progress bar", "error", err)
		}
		if job.Err != nil {
			failed++
			return
		}
		fmt.Fprintf(out, "Processed: %s\n", job.Path)
	})
	if err != nil {
		return fmt.Errorf("conversion cancelled: %w", err)
	}

	fmt.Fprintf(out, "Converted %d of %d file(s) into %s\n", len(jobs)-failed, len(jobs), cfg.OutputDir)
	if failed > 0 {
		for _, job := range jobs {
			if job.Err != nil {
				logger.Error("conversion failed", "path", job.Path, "error", job.Err)
			}
		}
		return fmt.Errorf("%d file(s) could not be converted", failed)
	}
	return nil
}

// newProgressBar returns a bar of total steps writing to w.
func newProgressBar(total int, w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("converting "+description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
