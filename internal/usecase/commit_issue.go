package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// CommitIssueInput contains the input for the CommitIssue use case.
type CommitIssueInput struct {
	IssueArg string   // Issue id as given on the command line
	URL      string   // Explicit tracker url; optional
	APIKey   string   // Explicit api key; optional
	GitArgs  []string // Flags forwarded to git commit
	Silent   bool
	DryRun   bool // Render the message without committing
}

// CommitIssueOutput contains the output of the CommitIssue use case.
type CommitIssueOutput struct {
	Issue        *domain.Issue
	Message      string
	CommitOutput string
	Source       ConfigSource
	Committed    bool
}

// CommitIssue resolves tracker credentials, fetches the issue, renders the
// commit message and commits with it.
type CommitIssue struct {
	resolver  *ResolveConfig
	fetcher   domain.IssueFetcher
	templates domain.TemplateSource
	committer *CommitMessage
	git       domain.Git
	logger    domain.Logger
	workDir   string
}

// NewCommitIssue creates a new CommitIssue use case.
// workDir is the process working directory, used as the fallback repository identifier.
func NewCommitIssue(
	resolver *ResolveConfig,
	fetcher domain.IssueFetcher,
	templates domain.TemplateSource,
	committer *CommitMessage,
	git domain.Git,
	logger domain.Logger,
	workDir string,
) *CommitIssue {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CommitIssue{
		resolver:  resolver,
		fetcher:   fetcher,
		templates: templates,
		committer: committer,
		git:       git,
		logger:    logger,
		workDir:   workDir,
	}
}

// Execute runs the pipeline. Nothing is committed unless every earlier step succeeds.
func (uc *CommitIssue) Execute(ctx context.Context, in CommitIssueInput) (*CommitIssueOutput, error) {
	issueID, err := domain.ParseIssueID(in.IssueArg)
	if err != nil {
		return nil, err
	}

	repoID, err := uc.git.RemoteURL()
	if err != nil {
		return nil, err
	}
	if repoID == "" {
		repoID = uc.workDir
	}

	resolved, err := uc.resolver.Execute(ctx, ResolveConfigInput{
		URL:     in.URL,
		APIKey:  in.APIKey,
		RepoID:  repoID,
		WorkDir: uc.workDir,
		IssueID: issueID,
	})
	if err != nil {
		return nil, err
	}

	issue, err := uc.fetcher.FetchIssue(ctx, resolved.Config, issueID)
	if err != nil {
		uc.logger.Error(issueID, "fetch", err.Error())
		return nil, err
	}

	source, err := uc.templates.Template()
	if err != nil {
		return nil, err
	}
	message, err := domain.RenderMessage(source, issue)
	if err != nil {
		uc.logger.Error(issueID, "render", err.Error())
		return nil, err
	}

	out := &CommitIssueOutput{
		Issue:   issue,
		Message: message,
		Source:  resolved.Source,
	}
	if in.DryRun {
		return out, nil
	}

	commitOut, err := uc.committer.Execute(ctx, CommitMessageInput{
		Message: message,
		GitArgs: in.GitArgs,
		Silent:  in.Silent,
		IssueID: issueID,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info(issueID, "commit", fmt.Sprintf("committed with message for #%d (silent=%t)", issue.ID, in.Silent))

	out.CommitOutput = commitOut.Output
	out.Committed = true
	return out, nil
}
