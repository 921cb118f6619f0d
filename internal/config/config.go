package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/nao1215/zhproof/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "zhproof"

	// DefaultCanonicalBranch is the branch proofreading is expected to
	// happen on. pr asks for confirmation on any other branch.
	DefaultCanonicalBranch = "base"

	// DefaultFormat is the output of pr: the interactive viewer.
	DefaultFormat = FormatTUI
)

// DefaultJobs is the number of files convert processes concurrently.
var DefaultJobs = runtime.NumCPU()

// Mode selects the command a Config is validated for.
type Mode int

const (
	// ModeConvert is the convert command.
	ModeConvert Mode = iota
	// ModeClean is the clean command.
	ModeClean
	// ModeReview is the pr command.
	ModeReview
)

// Format is the output format of pr.
type Format string

const (
	// FormatTUI opens the interactive viewer for every file with flagged lines.
	FormatTUI Format = "tui"
	// FormatText prints one "path:line: text" row per flagged line.
	FormatText Format = "text"
	// FormatJSON prints the flagged lines as JSON.
	FormatJSON Format = "json"
	// FormatMarkdown prints a Markdown report.
	FormatMarkdown Format = "markdown"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatTUI, FormatText, FormatJSON, FormatMarkdown:
		return true
	default:
		return false
	}
}

// Config holds all options of one zhproof run. It is populated from
// command line flags and the configuration file, and passed explicitly to
// the components that need it.
type Config struct {
	// Mode is the command being run.
	Mode Mode

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the configuration file given with --config. When
	// empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// File is the loaded configuration file, nil when there is none.
	File *File

	// RuleName is the rule selected with -r. Empty and "all" select every
	// rule of the command.
	RuleName string

	// Path is the file or directory clean and pr work on.
	Path string

	// SkipRepoCheck disables the repository and branch checks.
	SkipRepoCheck bool

	// Direction is the conversion direction of convert.
	Direction model.Direction

	// InputDir is the EPUB source tree convert reads.
	InputDir string

	// OutputDir is where convert writes the converted tree.
	OutputDir string

	// Jobs is the number of files convert processes concurrently.
	Jobs int

	// Format is the output format of pr.
	Format Format

	// ReportFile is where pr writes a non-interactive report. Empty means
	// standard output.
	ReportFile string

	// CanonicalBranch is the branch pr expects.
	CanonicalBranch string

	// EditorTemplate is the editor command, with {file} and {line}
	// placeholders. Empty means $EDITOR or vim.
	EditorTemplate string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Jobs:            DefaultJobs,
		Format:          DefaultFormat,
		CanonicalBranch: DefaultCanonicalBranch,
	}
}

// ApplyFile copies the settings of the configuration file into c. Values
// already set from flags are kept.
func (c *Config) ApplyFile(f *File) {
	c.File = f
	if f == nil {
		return
	}
	if f.CanonicalBranch != "" {
		c.CanonicalBranch = f.CanonicalBranch
	}
	if c.EditorTemplate == "" {
		c.EditorTemplate = f.Editor
	}
}

// Rules returns the rule definitions: the built-in ones merged with those
// of the configuration file.
func (c *Config) Rules() []RuleSpec {
	if c.File == nil {
		return DefaultRules()
	}
	return MergeRules(DefaultRules(), c.File.Rules)
}

// Replacements returns the replacement entries of the configuration file.
// They are merged over the built-in table by the caller.
func (c *Config) Replacements() ([]model.ReplacementEntry, error) {
	if c.File == nil {
		return nil, nil
	}
	entries := make([]model.ReplacementEntry, 0, len(c.File.Replacements))
	for _, spec := range c.File.Replacements {
		e, err := spec.Entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// XDGConfigDir returns the XDG config directory for zhproof.
// On Linux: ~/.config/zhproof
// On macOS: ~/Library/Application Support/zhproof
// On Windows: %APPDATA%\zhproof
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration for the command in c.Mode and returns
// the first problem found. It runs before any file is touched.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeConvert:
		if _, err := model.ParseDirection(string(c.Direction)); err != nil {
			return ErrInvalidDirection
		}
		if c.InputDir == "" {
			return ErrNoInputDir
		}
		if c.OutputDir == "" {
			return ErrNoOutputDir
		}
		if filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
			return ErrSameDirs
		}
		if c.Jobs <= 0 {
			return ErrInvalidJobs
		}
	case ModeClean:
		if c.Path == "" {
			return ErrNoPath
		}
	case ModeReview:
		if c.Path == "" {
			return ErrNoPath
		}
		if !c.Format.Valid() {
			return ErrInvalidFormat
		}
		if c.ReportFile != "" && c.Format == FormatTUI {
			return ErrReportFileWithTUI
		}
	}
	return nil
}
