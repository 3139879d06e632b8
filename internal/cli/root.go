// Package cli provides the command-line interface for git-issue-commit.
package cli

import (
	"fmt"

	"github.com/runoshun/git-issue-commit/internal/app"
	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/runoshun/git-issue-commit/internal/usecase"
	"github.com/spf13/cobra"
)

// rootOptions holds the root command flags.
type rootOptions struct {
	URL          string
	APIKey       string
	Silent       bool
	Lines        int
	DryRun       bool
	InitTemplate bool
	ShowConfig   bool
	ShowLogs     bool
}

// NewRootCommand creates the root command for git-issue-commit.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "git-issue-commit <issue_id> [flags] [-- <git commit flags>]",
		Short: "Commit with a message built from a tracker issue",
		Long: `git-issue-commit fetches an issue from a Redmine-compatible tracker,
renders a commit message from a template and runs git commit with it.

The tracker url and api key are remembered per repository, so they are
only asked for the first time a repository is used.

The message template is read from ~/.config/git-issue-commit/template
(see --init-template). Available variables: issue_id, issue_subject,
issue_project, issue_tracker, issue_status, issue_author, issue_url.`,
		Example: `  # Open the editor with "Fix #3125 : <subject>" prefilled
  git-issue-commit 3125

  # Commit staged and tracked changes without opening the editor
  git-issue-commit 3125 -s -- -a

  # Use an explicit tracker
  git-issue-commit 3125 --url https://redmine.example.com --api-key KEY`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, gitArgs := splitArgs(args, cmd.ArgsLenAtDash())

			switch {
			case opts.InitTemplate:
				return runInitTemplate(cmd, c)
			case opts.ShowConfig:
				return runShowConfig(cmd, c)
			case opts.ShowLogs:
				issueArg := ""
				if len(positional) > 0 {
					issueArg = positional[0]
				}
				return runShowLogs(cmd, c, issueArg, opts.Lines)
			}

			if len(positional) == 0 {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return domain.ErrMissingIssueID
			}
			// Extra positional arguments are forwarded to git commit.
			gitArgs = append(append([]string{}, positional[1:]...), gitArgs...)

			return runCommit(cmd, c, opts, positional[0], gitArgs)
		},
	}

	root.SetVersionTemplate("git-issue-commit {{.Version}}\n")

	f := root.Flags()
	f.StringVar(&opts.URL, "url", "", "Tracker base url (e.g. https://redmine.example.com)")
	f.StringVar(&opts.APIKey, "api-key", "", "Tracker api key")
	f.BoolVarP(&opts.Silent, "silent", "s", false, "Commit without opening the editor")
	f.BoolVar(&opts.DryRun, "dry-run", false, "Print the commit message without committing")
	f.BoolVar(&opts.InitTemplate, "init-template", false, "Write the default message template for editing")
	f.BoolVar(&opts.ShowConfig, "show-config", false, "Show configuration files, settings and stored trackers")
	f.BoolVar(&opts.ShowLogs, "show-logs", false, "Show the run log, optionally only for the given issue")
	f.IntVarP(&opts.Lines, "lines", "n", 0, "Number of log lines to show with --show-logs (0 = all)")

	root.MarkFlagsMutuallyExclusive("init-template", "show-config", "show-logs", "dry-run")

	return root
}

// splitArgs separates positional arguments from those after "--".
func splitArgs(args []string, dash int) (positional, passthrough []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func runCommit(cmd *cobra.Command, c *app.Container, opts rootOptions, issueArg string, gitArgs []string) error {
	uc, err := c.CommitIssueUseCase()
	if err != nil {
		return err
	}

	in := usecase.CommitIssueInput{
		IssueArg: issueArg,
		URL:      opts.URL,
		APIKey:   opts.APIKey,
		GitArgs:  gitArgs,
		Silent:   opts.Silent,
		DryRun:   opts.DryRun,
	}
	if cfg := c.AppConfig; cfg != nil {
		if in.URL == "" {
			in.URL = cfg.Tracker.URL
		}
		if in.APIKey == "" {
			in.APIKey = cfg.Tracker.APIKey
		}
		in.Silent = in.Silent || cfg.Commit.Silent
	}

	out, err := uc.Execute(cmd.Context(), in)
	if err != nil {
		return err
	}

	if !out.Committed {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Message)
		return nil
	}
	if out.CommitOutput != "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out.CommitOutput)
	}
	return nil
}

func runInitTemplate(cmd *cobra.Command, c *app.Container) error {
	out, err := c.InitTemplateUseCase().Execute(cmd.Context())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created template: %s\n", out.Path)
	return nil
}
