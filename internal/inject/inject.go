// Package inject replaces {{key}} placeholders in HTML templates with the
// matching data URIs from a lookup file.
package inject

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"inlay/internal/fileutil"
	"inlay/internal/logging"
	"inlay/internal/lookup"
)

// Placeholders are literal {{ }} pairs; the key is taken verbatim between
// the delimiters and may contain spaces. No nesting.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Report summarizes one injection pass.
type Report struct {
	PlaceholdersFound int      // total occurrences in the template
	DistinctKeys      int      // unique placeholder keys
	Replaced          int      // distinct keys substituted
	Missing           []string // distinct keys with no lookup entry, sorted
	OutputBytes       int64
}

// FindPlaceholders returns the distinct placeholder keys in document order
// of first appearance, plus the total occurrence count.
func FindPlaceholders(content string) ([]string, int) {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		key := match[1]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, len(matches)
}

// Render substitutes every placeholder whose key exists in the lookup with
// that entry's data URI. Unknown keys are left untouched and reported in
// the returned Report; they never fail the pass.
func Render(content string, file *lookup.File, logger *slog.Logger) (string, Report) {
	logger = logging.NewComponentLogger(logger, "inject")

	keys, total := FindPlaceholders(content)
	report := Report{PlaceholdersFound: total, DistinctKeys: len(keys)}

	for _, key := range keys {
		entry, ok := file.Get(key)
		if !ok || entry.DataURI == "" {
			report.Missing = append(report.Missing, key)
			logger.Warn("no lookup entry for placeholder", logging.String("key", key))
			continue
		}
		content = strings.ReplaceAll(content, "{{"+key+"}}", entry.DataURI)
		report.Replaced++
		logger.Debug("replaced placeholder",
			logging.String("key", key),
			logging.String("description", entry.Description))
	}

	sort.Strings(report.Missing)
	return content, report
}

// File runs Render over templatePath and writes the result to outputPath,
// overwriting any existing file. Missing template or lookup files are the
// caller's fatal errors; unknown placeholders are not.
func File(templatePath, outputPath string, lkp *lookup.File, logger *slog.Logger) (Report, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return Report{}, fmt.Errorf("read template %q: %w", templatePath, err)
	}

	rendered, report := Render(string(content), lkp, logger)

	if err := fileutil.WriteFileAtomic(outputPath, []byte(rendered), 0o644); err != nil {
		return report, fmt.Errorf("write output %q: %w", outputPath, err)
	}
	if info, err := os.Stat(outputPath); err == nil {
		report.OutputBytes = info.Size()
	}
	return report, nil
}
