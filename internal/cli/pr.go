package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/autoreview/internal/config"
	"github.com/dshills/autoreview/internal/github"
	"github.com/dshills/autoreview/internal/output"
	"github.com/dshills/autoreview/internal/review"
)

var (
	flagOwner       string
	flagRepo        string
	flagAutoMerge   bool
	flagMergeMethod string
	flagFormat      string
	flagOut         string
	flagDryRun      bool
)

var prCmd = &cobra.Command{
	Use:   "pr <pr-number>",
	Short: "Review a pull request",
	Long:  "Fetch a pull request, scan its diffs for TODO/FIXME markers, post the review, and optionally merge when approved.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prNumber, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid PR number %q\n", args[0])
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			return err
		}

		// Detect owner/repo if not provided
		owner, repo := flagOwner, flagRepo
		if owner == "" || repo == "" {
			detectedOwner, detectedRepo, err := github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\nUse --owner and --repo flags to specify manually.\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if owner == "" {
				owner = detectedOwner
			}
			if repo == "" {
				repo = detectedRepo
			}
		}

		client, err := github.NewClient(cfg.Token, cfg.APIURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v (set GITHUB_TOKEN)\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()

		var result review.Result
		if flagDryRun {
			result, err = dryRun(ctx, client, owner, repo, prNumber)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
		} else {
			fmt.Fprintf(os.Stderr, "Reviewing PR #%d from %s/%s...\n", prNumber, owner, repo)
			result = review.New(client, nil).Run(ctx, review.Request{
				Owner:       owner,
				Repo:        repo,
				Number:      prNumber,
				AutoMerge:   cfg.AutoMerge,
				MergeMethod: cfg.MergeMethod,
			})
		}

		if err := output.WriteResult(&result, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		switch {
		case result.Status == "error":
			exitCode = ExitRuntimeError
		case len(result.IssuesFound) > 0:
			exitCode = ExitIssues
		}
		return nil
	},
}

// dryRun fetches and evaluates the PR without submitting anything.
func dryRun(ctx context.Context, client *github.Client, owner, repo string, prNumber int) (review.Result, error) {
	fmt.Fprintf(os.Stderr, "Dry run: fetching PR #%d from %s/%s...\n", prNumber, owner, repo)
	pr, err := client.FetchPR(ctx, owner, repo, prNumber)
	if err != nil {
		return review.Result{}, err
	}

	scanner := review.NewMarkerScanner()
	var findings []review.Finding
	for _, change := range pr.Changes {
		if change.Patch == "" {
			continue
		}
		findings = append(findings, scanner.Scan(change.Filename, change.Patch)...)
	}
	decision := review.Decide(findings)

	issues := make([]string, 0, len(decision.Findings))
	for _, f := range decision.Findings {
		issues = append(issues, f.Description)
	}
	return review.Result{
		Status:         "success",
		IssuesFound:    issues,
		ApprovalStatus: decision.Verdict,
		MergeOutcome:   review.MergeNotAttempted,
		Message:        "Dry run: no review submitted, no merge attempted",
		ReviewBody:     decision.Body,
		Findings:       decision.Findings,
	}, nil
}

func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMergeMethod != "" {
		m["mergeMethod"] = flagMergeMethod
	}
	if cmd.Flags().Changed("auto-merge") {
		m["autoMerge"] = strconv.FormatBool(flagAutoMerge)
	}
	return m
}

func init() {
	prCmd.Flags().StringVar(&flagOwner, "owner", "", "Repository owner (auto-detected if omitted)")
	prCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name (auto-detected if omitted)")
	prCmd.Flags().BoolVar(&flagAutoMerge, "auto-merge", false, "Merge the PR when the review approves it")
	prCmd.Flags().StringVar(&flagMergeMethod, "merge-method", "", "Merge method: merge, squash, or rebase")
	prCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	prCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	prCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Scan and decide but submit nothing")
}
