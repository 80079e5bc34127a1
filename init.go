package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/frozenguard/internal/config"
)

const (
	sentinelStart = "# frozenguard:start"
	sentinelEnd   = "# frozenguard:end"
)

// newInitCmd builds the `frozenguard init` subcommand, which writes (or
// updates) the managed settings block in a .frozenguard.toml file.
func newInitCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "init [path-to-" + config.FileName + "]",
		Short: "Write the default settings block to " + config.FileName,
		Long: `Write the default frozenguard settings to a config file. The settings are
wrapped in sentinel comments so they can be updated in place on subsequent runs
without touching surrounding content. Creates the file if it does not exist.

The path defaults to ./` + config.FileName + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string, dryRun bool) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	section, err := generateSection()
	if err != nil {
		return err
	}

	// --dry-run with no path: just print the section itself.
	if dryRun && len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	path := config.FileName
	if len(args) > 0 {
		path = args[0]
	}

	existing, _ := os.ReadFile(path)
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote frozenguard settings to %s\n", path)
	return nil
}

// generateSection returns the sentinel-wrapped default settings block.
func generateSection() (string, error) {
	body, err := config.Default().TOML()
	if err != nil {
		return "", err
	}
	header := `# Managed by "frozenguard init"; edits inside this block are overwritten.
# native: report writes to singleton objects (Kotlin/Native freezes them).
# non_native_source_sets: source sets whose singletons are never frozen.
# exclude: extra ignore patterns in .gitignore syntax.
`
	return sentinelStart + "\n" + header + strings.TrimRight(body, "\n") + "\n" + sentinelEnd, nil
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
