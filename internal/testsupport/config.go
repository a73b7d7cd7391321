// Package testsupport provides fixtures shared by command and pipeline tests.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inlay/internal/config"
)

// NewConfig returns a validated config whose paths all live under a
// test-scoped temp directory, with history disabled so tests stay fast.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()

	cfg := config.Default()
	cfg.Paths.MetadataFile = filepath.Join(base, "catalogue.csv")
	cfg.Paths.ImagesDir = filepath.Join(base, "images")
	cfg.Paths.LookupFile = filepath.Join(base, "lookup.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Serve.StaticDir = base
	cfg.History.Enabled = false

	if err := os.MkdirAll(cfg.Paths.ImagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WriteConfigFile persists cfg-like TOML content and returns its path.
func WriteConfigFile(t *testing.T, cfg *config.Config) string {
	t.Helper()
	content := strings.Join([]string{
		"[paths]",
		`metadata_file = "` + cfg.Paths.MetadataFile + `"`,
		`images_dir = "` + cfg.Paths.ImagesDir + `"`,
		`lookup_file = "` + cfg.Paths.LookupFile + `"`,
		`log_dir = "` + cfg.Paths.LogDir + `"`,
		"",
		"[history]",
		"enabled = false",
		"",
	}, "\n")

	path := filepath.Join(t.TempDir(), "inlay.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
