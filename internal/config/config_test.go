package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/zhproof/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default canonical branch is base", func(t *testing.T) {
		t.Parallel()
		if cfg.CanonicalBranch != "base" {
			t.Errorf("expected CanonicalBranch to be 'base', got '%s'", cfg.CanonicalBranch)
		}
	})

	t.Run("default format is tui", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != FormatTUI {
			t.Errorf("expected Format to be tui, got %q", cfg.Format)
		}
	})

	t.Run("default jobs is positive", func(t *testing.T) {
		t.Parallel()
		if cfg.Jobs <= 0 {
			t.Errorf("expected positive Jobs, got %d", cfg.Jobs)
		}
	})

	t.Run("repository checks are on by default", func(t *testing.T) {
		t.Parallel()
		if cfg.SkipRepoCheck {
			t.Error("expected SkipRepoCheck to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with one broken field per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	convert := func() *Config {
		cfg := NewConfig()
		cfg.Mode = ModeConvert
		cfg.Direction = model.TraditionalToSimplified
		cfg.InputDir = "in"
		cfg.OutputDir = "out"
		return cfg
	}
	review := func() *Config {
		cfg := NewConfig()
		cfg.Mode = ModeReview
		cfg.Path = "book"
		return cfg
	}

	tests := []struct {
		name    string
		cfg     func() *Config
		wantErr error
	}{
		{name: "valid convert", cfg: convert},
		{
			name: "invalid direction",
			cfg: func() *Config {
				c := convert()
				c.Direction = "t2t"
				return c
			},
			wantErr: ErrInvalidDirection,
		},
		{
			name: "missing input dir",
			cfg: func() *Config {
				c := convert()
				c.InputDir = ""
				return c
			},
			wantErr: ErrNoInputDir,
		},
		{
			name: "missing output dir",
			cfg: func() *Config {
				c := convert()
				c.OutputDir = ""
				return c
			},
			wantErr: ErrNoOutputDir,
		},
		{
			name: "same directories",
			cfg: func() *Config {
				c := convert()
				c.OutputDir = "./in/"
				return c
			},
			wantErr: ErrSameDirs,
		},
		{
			name: "zero jobs",
			cfg: func() *Config {
				c := convert()
				c.Jobs = 0
				return c
			},
			wantErr: ErrInvalidJobs,
		},
		{
			name: "valid clean",
			cfg: func() *Config {
				c := NewConfig()
				c.Mode = ModeClean
				c.Path = "book"
				return c
			},
		},
		{
			name: "clean without path",
			cfg: func() *Config {
				c := NewConfig()
				c.Mode = ModeClean
				return c
			},
			wantErr: ErrNoPath,
		},
		{name: "valid review", cfg: review},
		{
			name: "review without path",
			cfg: func() *Config {
				c := review()
				c.Path = ""
				return c
			},
			wantErr: ErrNoPath,
		},
		{
			name: "unknown format",
			cfg: func() *Config {
				c := review()
				c.Format = "html"
				return c
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name: "report file with tui",
			cfg: func() *Config {
				c := review()
				c.ReportFile = "report.md"
				return c
			},
			wantErr: ErrReportFileWithTUI,
		},
		{
			name: "report file with markdown",
			cfg: func() *Config {
				c := review()
				c.Format = FormatMarkdown
				c.ReportFile = "report.md"
				return c
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg().Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestDefaultRules checks the built-in rule table.
func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if rules[0].Name != string(model.RuleDefault) {
		t.Fatalf("expected default rule first, got %q", rules[0].Name)
	}
	if rules[0].SkipFiles == nil {
		t.Error("expected default rule to set an explicit empty skip list")
	}

	for _, r := range rules {
		if !model.RuleID(r.Name).Known() {
			t.Errorf("built-in rule %q is not a known rule", r.Name)
		}
	}

	pr := rules[1]
	if pr.Name != string(model.RulePunctuationLineEnd) || pr.Policy != "" {
		t.Errorf("expected punctuation_line_end to inherit its policy, got %+v", pr)
	}

	// Each call returns fresh slices.
	rules[2].Tags[0] = "changed"
	if DefaultRules()[2].Tags[0] != "h1" {
		t.Error("DefaultRules shares slices between calls")
	}
}

// TestMergeRules tests overlaying configuration rules on the built-in ones.
func TestMergeRules(t *testing.T) {
	t.Parallel()

	base := DefaultRules()
	merged := MergeRules(base, []RuleSpec{
		{Name: string(model.RulePunctuationLineEnd), SkipFiles: []string{}},
		{Name: string(model.RuleChineseSpacing), Tags: []string{"p"}, Policy: "auto"},
		{Name: "custom"},
	})

	if len(merged) != len(base)+1 {
		t.Fatalf("expected %d rules, got %d", len(base)+1, len(merged))
	}
	if got := merged[1]; got.SkipFiles == nil || len(got.SkipFiles) != 0 {
		t.Errorf("expected explicit empty skip list, got %v", got.SkipFiles)
	}
	if got := merged[1].Extensions; !slices.Equal(got, []string{"xhtml"}) {
		t.Errorf("expected unset extensions to be kept, got %v", got)
	}
	if got := merged[2]; !slices.Equal(got.Tags, []string{"p"}) || got.Policy != "auto" {
		t.Errorf("expected chinese_spacing override, got %+v", got)
	}
	if merged[len(merged)-1].Name != "custom" {
		t.Errorf("expected new rule appended")
	}
	if len(base[1].SkipFiles) != 2 {
		t.Error("MergeRules modified its input")
	}
}

// TestReplacementSpecEntry tests conversion of configured replacements.
func TestReplacementSpecEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    ReplacementSpec
		want    model.ReplacementEntry
		wantErr bool
	}{
		{
			name: "defaults",
			spec: ReplacementSpec{Match: "晩", Replacement: "晚"},
			want: model.ReplacementEntry{
				Match: "晩", Replacement: "晚",
				Scope: model.ScopeZh, Policy: model.PolicyAuto, Kind: model.KindVariant,
			},
		},
		{
			name: "all fields",
			spec: ReplacementSpec{Match: "著", Replacement: "着", Lang: "zh-Hans", Policy: "prompt", Kind: "hant2hans", Notes: "n"},
			want: model.ReplacementEntry{
				Match: "著", Replacement: "着",
				Scope: model.ScopeHans, Policy: model.PolicyPrompt, Kind: model.KindHant2Hans, Notes: "n",
			},
		},
		{name: "empty match", spec: ReplacementSpec{Replacement: "x"}, wantErr: true},
		{name: "bad lang", spec: ReplacementSpec{Match: "a", Lang: "ja"}, wantErr: true},
		{name: "bad policy", spec: ReplacementSpec{Match: "a", Policy: "sometimes"}, wantErr: true},
		{name: "bad kind", spec: ReplacementSpec{Match: "a", Kind: "typo"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.spec.Entry()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidReplacementSpec) {
					t.Errorf("expected ErrInvalidReplacementSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// TestConfigApplyFile tests that file settings fill in what flags left unset.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("file values are applied", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{CanonicalBranch: "main", Editor: "nano +{line} {file}"})
		if cfg.CanonicalBranch != "main" {
			t.Errorf("expected branch main, got %q", cfg.CanonicalBranch)
		}
		if cfg.EditorTemplate != "nano +{line} {file}" {
			t.Errorf("expected editor from file, got %q", cfg.EditorTemplate)
		}
	})

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.CanonicalBranch != DefaultCanonicalBranch {
			t.Errorf("expected default branch, got %q", cfg.CanonicalBranch)
		}
		if len(cfg.Rules()) != len(DefaultRules()) {
			t.Error("expected built-in rules without a file")
		}
		entries, err := cfg.Replacements()
		if err != nil || entries != nil {
			t.Errorf("expected no replacements, got %v, %v", entries, err)
		}
	})

	t.Run("replacements are converted", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{Replacements: []ReplacementSpec{{Match: "a", Replacement: "b"}}})
		entries, err := cfg.Replacements()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Match != "a" {
			t.Errorf("unexpected entries %+v", entries)
		}
	})
}

// TestLoadConfigFile tests loading YAML configuration files.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.zhproof.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".zhproof.yaml")
		content := `canonical_branch: proof
editor: "code --goto {file}:{line}"
rules:
  - name: punctuation_line_end
    skip_files: []
  - name: chinese_spacing
    tags: [p, li]
replacements:
  - match: 著
    replacement: 着
    lang: zh-Hans
    policy: auto
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CanonicalBranch != "proof" {
			t.Errorf("expected canonical branch proof, got %q", cfg.CanonicalBranch)
		}
		if len(cfg.Rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(cfg.Rules))
		}
		if cfg.Rules[0].SkipFiles == nil || cfg.Rules[0].Tags != nil {
			t.Errorf("expected explicit empty skip list and missing tags, got %+v", cfg.Rules[0])
		}
		if !slices.Equal(cfg.Rules[1].Tags, []string{"p", "li"}) {
			t.Errorf("unexpected tags %v", cfg.Rules[1].Tags)
		}
		if len(cfg.Replacements) != 1 || cfg.Replacements[0].Lang != "zh-Hans" {
			t.Errorf("unexpected replacements %+v", cfg.Replacements)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".zhproof.yaml")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for a rule without name", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".zhproof.yaml")
		if err := os.WriteFile(configPath, []byte("rules:\n  - tags: [p]\n"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		_, err := LoadConfigFile(configPath)
		if !errors.Is(err, ErrInvalidRuleSpec) {
			t.Errorf("expected ErrInvalidRuleSpec, got %v", err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("rules: []"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("rules: []"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		t.Chdir(dir)

		if result := FindConfigFile(""); !strings.HasSuffix(result, DefaultConfigFile) {
			t.Errorf("expected %s in current directory, got %q", DefaultConfigFile, result)
		}
	})
}

// TestXDGConfigDir tests the XDG directory helper.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" || filepath.Base(dir) != AppName {
		t.Errorf("expected XDG config dir ending in %s, got %q", AppName, dir)
	}
}
