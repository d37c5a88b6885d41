package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scry-dev/scry/internal/config"
	"github.com/scry-dev/scry/internal/gitctx"
	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/internal/providers"
	"github.com/scry-dev/scry/internal/review"
)

// Shared review flags
var (
	flagProvider     string
	flagModel        string
	flagFormat       string
	flagOut          string
	flagMaxFiles     int
	flagMaxDiffSize  int
	flagIgnore       string
	flagOnly         string
	flagFocus        string
	flagNoRedact     bool
	flagNoCache      bool
	flagContextLines int

	flagStaged bool
	flagRange  string
	flagFiles  string
	flagStdin  bool
	flagBase   string
	flagPath   string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, markdown, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of files to review")
	cmd.Flags().IntVar(&flagMaxDiffSize, "max-diff-size", 0, "Chunk size budget in diff lines")
	cmd.Flags().StringVar(&flagIgnore, "ignore", "", "Ignore path globs (comma-separated)")
	cmd.Flags().StringVar(&flagOnly, "only", "", "Review only paths matching these globs (comma-separated)")
	cmd.Flags().StringVar(&flagFocus, "focus", "", "Focus areas for the reviewer (comma-separated)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
	cmd.Flags().IntVar(&flagContextLines, "context-lines", 0, "Number of context lines in git diffs")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMaxFiles > 0 {
		m["max_files"] = fmt.Sprintf("%d", flagMaxFiles)
	}
	if flagMaxDiffSize > 0 {
		m["max_diff_size"] = fmt.Sprintf("%d", flagMaxDiffSize)
	}
	if flagIgnore != "" {
		m["ignore"] = flagIgnore
	}
	if flagOnly != "" {
		m["include_only"] = flagOnly
	}
	if flagFocus != "" {
		m["focus"] = flagFocus
	}
	return m
}

func splitComma(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review code changes",
	Long: `Review code changes with an LLM provider.

By default the unstaged working tree diff is reviewed. Use --staged for the
index, --range for a revision range, --files for whole files, or --stdin to
review content piped in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		diff, err := collectDiff()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runReview(diff, cfg)
		return nil
	},
}

func collectDiff() (gitctx.Result, error) {
	opts := gitctx.Options{ContextLines: flagContextLines}

	switch {
	case flagStdin:
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return gitctx.Result{}, fmt.Errorf("reading stdin: %w", err)
		}
		var base string
		if flagBase != "" {
			data, err := os.ReadFile(flagBase)
			if err != nil {
				return gitctx.Result{}, fmt.Errorf("reading base file: %w", err)
			}
			base = string(data)
		}
		path := flagPath
		if path == "" {
			path = "stdin"
		}
		return gitctx.SnippetDiff(string(content), base, path), nil
	case flagFiles != "":
		return gitctx.FilesDiff(splitComma(flagFiles))
	case flagRange != "":
		return gitctx.Range(flagRange, opts)
	case flagStaged:
		return gitctx.Staged(opts)
	default:
		return gitctx.Unstaged(opts)
	}
}

func runReview(diff gitctx.Result, cfg config.Config) {
	if flagNoRedact {
		cfg.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}

	report, err := review.Run(context.Background(), review.Input{
		Diff:  diff.Diff,
		Mode:  diff.Mode,
		Range: diff.Range,
	}, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if report.Result.Assessment == review.RequestChanges {
		exitCode = ExitChangesRequested
	}
}

func init() {
	addReviewFlags(reviewCmd)
	reviewCmd.Flags().BoolVar(&flagStaged, "staged", false, "Review staged changes (index vs HEAD)")
	reviewCmd.Flags().StringVar(&flagRange, "range", "", "Review a revision range (e.g. origin/main..HEAD)")
	reviewCmd.Flags().StringVar(&flagFiles, "files", "", "Review whole files (comma-separated paths)")
	reviewCmd.Flags().BoolVar(&flagStdin, "stdin", false, "Review content from stdin")
	reviewCmd.Flags().StringVar(&flagBase, "base", "", "Base file to diff stdin content against")
	reviewCmd.Flags().StringVar(&flagPath, "path", "", "File path for stdin content (for language detection)")
}
