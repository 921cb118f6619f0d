// Package fileset selects the files a rule or a conversion works on.
package fileset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nao1215/zhproof/internal/model"
)

// ErrOutsideInput is returned when a path is not below the input directory.
var ErrOutsideInput = errors.New("path is outside the input directory")

// ConvertPatterns are the EPUB source files a conversion rewrites,
// relative to the input directory.
var ConvertPatterns = []string{
	"images/*.svg",
	"src/epub/content.opf",
	"src/epub/toc.xhtml",
	"src/epub/text/*.xhtml",
}

// Discover walks root in lexical order and returns the files rule applies
// to: not hidden, with one of the rule's extensions and not in its skip
// list. Hidden directories below root are not entered. When root is a file
// it is checked against the same filters.
func Discover(root string, rule model.Rule) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !fi.IsDir() {
		if selects(rule, filepath.Base(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isHidden(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if selects(rule, d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return out, nil
}

func selects(rule model.Rule, name string) bool {
	if isHidden(name) || rule.Skips(name) {
		return false
	}
	ext := filepath.Ext(name)
	return ext != "" && rule.HasExtension(ext)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ConvertTargets returns the files under inputDir matching ConvertPatterns,
// in pattern order and sorted within each pattern. Missing files are not an
// error.
func ConvertTargets(inputDir string) ([]string, error) {
	var out []string
	for _, pattern := range ConvertPatterns {
		matches, err := filepath.Glob(filepath.Join(inputDir, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// OutputPath mirrors path, a file below inputDir, under outputDir.
func OutputPath(inputDir, outputDir, path string) (string, error) {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideInput)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideInput)
	}
	return filepath.Join(outputDir, rel), nil
}
