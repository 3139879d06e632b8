package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/git-issue-commit/internal/app"
	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/runoshun/git-issue-commit/internal/usecase"
	"github.com/spf13/cobra"
)

func runShowConfig(cmd *cobra.Command, c *app.Container) error {
	out, err := c.ShowConfigUseCase().Execute(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(w, "[Files]")
	printPath(w, "config", out.ConfigPath, out.ConfigExists)
	printPath(w, "template", out.TemplatePath, out.TemplateExists)
	_, _ = fmt.Fprintf(w, "- credentials: %s\n", out.CredentialsPath)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "[Effective Config]")
	if err := formatEffectiveConfig(w, out.Config); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "[Trackers]")
	if len(out.Trackers) == 0 {
		_, _ = fmt.Fprintln(w, "(none)")
	}
	for _, tr := range out.Trackers {
		_, _ = fmt.Fprintf(w, "%s (key %s)\n", tr.BaseURL, tr.MaskedKey)
		for _, repo := range tr.Repos {
			_, _ = fmt.Fprintf(w, "  - %s\n", repo)
		}
	}
	return nil
}

func printPath(w io.Writer, name, path string, exists bool) {
	if exists {
		_, _ = fmt.Fprintf(w, "- %s: %s\n", name, path)
		return
	}
	_, _ = fmt.Fprintf(w, "- %s: %s (not found)\n", name, path)
}

// formatEffectiveConfig writes cfg as TOML with the api key masked.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	tracker := map[string]any{
		"timeout": cfg.Tracker.Timeout.String(),
	}
	if cfg.Tracker.URL != "" {
		tracker["url"] = cfg.Tracker.URL
	}
	if cfg.Tracker.APIKey != "" {
		tracker["api_key"] = domain.MaskKey(cfg.Tracker.APIKey)
	}
	commit := map[string]any{
		"silent": cfg.Commit.Silent,
	}
	if cfg.Commit.TemplatePath != "" {
		commit["template_path"] = cfg.Commit.TemplatePath
	}
	output := map[string]any{
		"tracker": tracker,
		"commit":  commit,
		"log":     map[string]any{"level": cfg.Log.Level},
	}

	if err := toml.NewEncoder(w).Encode(output); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func runShowLogs(cmd *cobra.Command, c *app.Container, issueArg string, lines int) error {
	in := usecase.ShowLogsInput{Lines: lines}
	if issueArg != "" {
		id, err := domain.ParseIssueID(issueArg)
		if err != nil {
			return err
		}
		in.IssueID = id
	}

	out, err := c.ShowLogsUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
	return nil
}
