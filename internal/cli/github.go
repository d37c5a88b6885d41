package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scry-dev/scry/internal/config"
	"github.com/scry-dev/scry/internal/github"
	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/internal/providers"
	"github.com/scry-dev/scry/internal/review"
)

var flagPost bool

var githubCmd = &cobra.Command{
	Use:   "github <owner/repo#number>",
	Short: "Review a GitHub pull request",
	Long: `Review a GitHub pull request by reference, e.g. "scry github octocat/hello-world#42".

Requires GITHUB_TOKEN. With --post the review is also posted as a comment on
the pull request.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, repo, number, err := github.ParsePRRef(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if flagNoRedact {
			cfg.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}
		if flagNoCache {
			cfg.Cache.Enabled = false
		}

		client, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()
		diff, err := client.GetPRDiff(ctx, owner, repo, number)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		report, err := review.Run(ctx, review.Input{
			Diff:  diff,
			Mode:  "github",
			Range: args[0],
		}, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagPost {
			body, err := (&output.MarkdownWriter{}).Render(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error rendering comment: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if err := client.PostComment(ctx, owner, repo, number, body); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Posted review comment to %s\n", args[0])
		}

		if report.Result.Assessment == review.RequestChanges {
			exitCode = ExitChangesRequested
		}
		return nil
	},
}

func init() {
	addReviewFlags(githubCmd)
	githubCmd.Flags().BoolVar(&flagPost, "post", false, "Post the review as a PR comment")
}
