package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"inlay/internal/config"
)

// resolvePath expands a flag value, falling back to the configured default
// when the flag was not set.
func resolvePath(flagValue, fallback string) (string, error) {
	trimmed := strings.TrimSpace(flagValue)
	if trimmed == "" {
		return fallback, nil
	}
	return config.ExpandPath(trimmed)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}

func formatSize(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// pausePrompt keeps the terminal window open after a run launched from a
// double-clicked shortcut. It only fires on an interactive stdin and is
// suppressed by --no-pause.
func pausePrompt(cmd *cobra.Command, disabled bool) {
	if disabled {
		return
	}
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isatty.IsTerminal(stdin.Fd()) {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), "\nPress Enter to close...")
	_, _ = bufio.NewReader(stdin).ReadString('\n')
}
