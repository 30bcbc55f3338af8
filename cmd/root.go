package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/patchview/patchview/internal/config"
	"github.com/patchview/patchview/internal/diff"
	"github.com/patchview/patchview/internal/format"
	"github.com/patchview/patchview/internal/logging"
	"github.com/patchview/patchview/internal/version"
	"github.com/patchview/patchview/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "patchview",
	Short: "Inspect unified diffs from coding-agent sessions",
	Long: `Patchview parses multi-file unified diffs into per-file records, computes
line-level diffs between text pairs, and reports addition/deletion counts.
Diff text is read from --file or piped stdin; pair mode diffs two files
given with --old and --new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If the help flag is set, show the help message
		if cmd.Flag("help").Changed {
			cmd.Help()
			return nil
		}
		if cmd.Flag("version").Changed {
			fmt.Println(version.Version)
			return nil
		}

		debug, _ := cmd.Flags().GetBool("debug")
		verbose, _ := cmd.Flags().GetBool("verbose")
		logging.Setup(verbose, debug)

		cwd, _ := cmd.Flags().GetString("cwd")
		if cwd != "" {
			if err := os.Chdir(cwd); err != nil {
				return fmt.Errorf("failed to change directory: %v", err)
			}
		}
		if cwd == "" {
			c, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current working directory: %v", err)
			}
			cwd = c
		}
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}

		outputFormatStr, _ := cmd.Flags().GetString("output-format")
		if !cmd.Flag("output-format").Changed {
			outputFormatStr = cfg.Output.Format
		}
		outputFormat := format.OutputFormat(outputFormatStr)
		if !outputFormat.IsValid() {
			return fmt.Errorf("invalid output format: %s", outputFormatStr)
		}

		contextLines, _ := cmd.Flags().GetInt("context")
		if !cmd.Flag("context").Changed {
			contextLines = cfg.Diff.ContextLines
		}
		if contextLines < 0 {
			return fmt.Errorf("context must not be negative, got %d", contextLines)
		}

		displayStr, _ := cmd.Flags().GetString("display")
		if !cmd.Flag("display").Changed {
			displayStr = cfg.Paths.Display
		}
		displayMode := workspace.DisplayMode(displayStr)
		if !displayMode.IsValid() {
			return fmt.Errorf("invalid display mode: %s", displayStr)
		}

		statsOnly, _ := cmd.Flags().GetBool("stats")
		rawMode, _ := cmd.Flags().GetBool("raw")

		// Pair mode diffs two files directly.
		oldPath, _ := cmd.Flags().GetString("old")
		newPath, _ := cmd.Flags().GetString("new")
		if oldPath != "" || newPath != "" {
			if oldPath == "" || newPath == "" {
				return fmt.Errorf("pair mode requires both --old and --new")
			}
			return handlePairMode(oldPath, newPath, contextLines, statsOnly, outputFormat)
		}

		diffText, err := readDiffText(cmd)
		if err != nil {
			return err
		}

		wsRoot, _ := cmd.Flags().GetString("workspace")
		var resolve diff.PathResolver
		if wsRoot != "" {
			resolve = workspace.Resolver(workspace.Metadata{Root: wsRoot}, displayMode)
		}

		return handleDiffText(diffText, resolve, statsOnly, rawMode, outputFormat)
	},
}

// readDiffText loads diff text from --file or piped stdin.
func readDiffText(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read diff file: %w", err)
		}
		return string(data), nil
	}

	if data, hasPiped := checkStdinPipe(); hasPiped {
		return data, nil
	}
	return "", fmt.Errorf("no diff input: pass --file or pipe diff text to stdin")
}

// checkStdinPipe reports whether diff text was piped to stdin and returns it.
func checkStdinPipe() (string, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", false
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func handlePairMode(oldPath, newPath string, contextLines int, statsOnly bool, outputFormat format.OutputFormat) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("failed to read old file: %w", err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("failed to read new file: %w", err)
	}
	oldText, newText := string(oldData), string(newData)

	slog.Debug("pair mode", "old", oldPath, "new", newPath, "context", contextLines)

	if statsOnly {
		stats := diff.ComputeStats(oldText, newText)
		return printResult(stats, fmt.Sprintf("+%d -%d", stats.Additions, stats.Deletions), outputFormat)
	}

	if outputFormat == format.JSONFormat {
		return printResult(diff.Unified(oldText, newText, contextLines), "", outputFormat)
	}

	out, err := format.Render(diff.FormatUnified(oldPath, newPath, oldText, newText, contextLines), outputFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// fileSummary is the per-file report printed for multi-file diffs.
type fileSummary struct {
	Path      string        `json:"path"`
	Kind      diff.FileKind `json:"kind"`
	Additions int           `json:"additions"`
	Deletions int           `json:"deletions"`
}

func handleDiffText(diffText string, resolve diff.PathResolver, statsOnly, rawMode bool, outputFormat format.OutputFormat) error {
	files := diff.ParseMultiFile(diffText, resolve)
	slog.Debug("parsed diff", "files", len(files))

	if rawMode {
		if outputFormat == format.JSONFormat {
			return printResult(files, "", outputFormat)
		}
		segments := make([]string, len(files))
		for i, f := range files {
			segments[i] = f.RawDiff
		}
		fmt.Println(strings.Join(segments, "\n"))
		return nil
	}

	summaries := make([]fileSummary, len(files))
	var total diff.Stats
	for i, f := range files {
		stats := diff.CountRawStats(f.RawDiff)
		summaries[i] = fileSummary{
			Path:      f.Path,
			Kind:      f.Kind,
			Additions: stats.Additions,
			Deletions: stats.Deletions,
		}
		total.Additions += stats.Additions
		total.Deletions += stats.Deletions
	}

	if statsOnly {
		return printResult(total, fmt.Sprintf("+%d -%d", total.Additions, total.Deletions), outputFormat)
	}

	var sb strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&sb, "%s  +%d -%d (%s)\n", s.Path, s.Additions, s.Deletions, s.Kind)
	}
	fmt.Fprintf(&sb, "%d files changed, %d insertions(+), %d deletions(-)", len(summaries), total.Additions, total.Deletions)

	return printResult(summaries, sb.String(), outputFormat)
}

// printResult prints v as JSON or falls back to the prepared text line.
func printResult(v any, text string, outputFormat format.OutputFormat) error {
	if outputFormat == format.TextFormat {
		fmt.Println(text)
		return nil
	}
	out, err := format.Render(v, outputFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.Flags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.Flags().StringP("file", "f", "", "Read diff text from a file instead of stdin")
	rootCmd.Flags().String("old", "", "Old file for pair mode")
	rootCmd.Flags().String("new", "", "New file for pair mode")
	rootCmd.Flags().BoolP("stats", "s", false, "Print addition/deletion counts only")
	rootCmd.Flags().Bool("raw", false, "Print the stored raw diff segments")
	rootCmd.Flags().StringP("output-format", "o", "text", "Output format (text, json)")
	rootCmd.Flags().IntP("context", "n", diff.DefaultContextLines, "Context lines around changes in pair mode")
	rootCmd.Flags().StringP("workspace", "w", "", "Workspace root for display-path resolution")
	rootCmd.Flags().String("display", "relative", "Path display mode (relative, absolute)")
	rootCmd.Flags().Bool("verbose", false, "Display logs to stderr")

	rootCmd.MarkFlagsMutuallyExclusive("file", "old")
	rootCmd.MarkFlagsMutuallyExclusive("file", "new")
	rootCmd.MarkFlagsMutuallyExclusive("stats", "raw")
}
