package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/zhproof/internal/config"
	"github.com/nao1215/zhproof/internal/log"
	"github.com/nao1215/zhproof/internal/replace"
	"github.com/nao1215/zhproof/internal/repo"
	"github.com/nao1215/zhproof/internal/terminal"
)

// errAborted is returned when the proofreader declines a pre-run check of
// a command that treats declining as a failure.
var errAborted = errors.New("aborted")

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// getBoolFlag retrieves a boolean flag from the command or its parent.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getConfigFlag retrieves the config flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfigFile finds and applies the configuration file.
// If the user explicitly specified a config file path, it is an error when
// the file does not exist. Otherwise a missing file leaves the built-in
// settings in place.
func loadConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	cfg.ConfigFilePath = getConfigFlag(cmd)
	explicitConfigPath := cfg.ConfigFilePath != ""

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	f, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.ApplyFile(f)
	return nil
}

// setupLogger creates the structured logger of a run and makes it the
// default. Logs go to stderr so they never mix with prompts and listings on
// stdout.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getVerboseFlag(cmd)
	var logger *slog.Logger
	if getBoolFlag(cmd, "log-json") {
		logger = log.NewJSONLogger(os.Stderr, verbose)
	} else {
		logger = log.NewLogger(os.Stderr, verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// newTable builds the replacement table: the built-in entries merged with
// those of the configuration file.
func newTable(cfg *config.Config) (*replace.Table, error) {
	extra, err := cfg.Replacements()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	table, err := replace.DefaultTable().Merge(extra)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return table, nil
}

// confirmRepository checks that path lies inside a git repository and,
// when branch is not empty, that branch is checked out. Each failed check
// asks the proofreader whether to go on. It reports whether to continue.
func confirmRepository(cmd *cobra.Command, path, branch string) (bool, error) {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	info, err := repo.Find(path)
	if errors.Is(err, repo.ErrNotRepository) {
		return terminal.Confirm(in, out,
			fmt.Sprintf("%s is not inside a git repository, so changes cannot be reviewed or reverted. Continue?", path))
	}
	if err != nil {
		return false, err
	}

	if branch != "" && info.Branch != branch {
		return terminal.Confirm(in, out,
			fmt.Sprintf("The current branch is %q, not %q. Continue?", info.Branch, branch))
	}
	return true, nil
}
