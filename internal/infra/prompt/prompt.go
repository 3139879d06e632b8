// Package prompt asks the user for values on the terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// New returns a terminal prompter when in is a TTY, and a line-based
// prompter otherwise (e.g. when stdin is a pipe).
func New(in *os.File, out io.Writer) domain.Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &TUIPrompter{in: in, out: out}
	}
	return NewLinePrompter(in, out)
}

// TUIPrompter reads a value with a bubbletea text input.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

// Ensure TUIPrompter implements domain.Prompter.
var _ domain.Prompter = (*TUIPrompter)(nil)

// Prompt runs a single-field form until a non-empty value is submitted.
func (p *TUIPrompter) Prompt(ctx context.Context, label string, secret bool) (string, error) {
	m := newModel(label, secret)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPromptAborted, err)
	}
	result, ok := final.(*model)
	if !ok || result.aborted {
		return "", domain.ErrPromptAborted
	}
	return result.value, nil
}

// LinePrompter reads values line by line. It is used when stdin is not a terminal.
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// Ensure LinePrompter implements domain.Prompter.
var _ domain.Prompter = (*LinePrompter)(nil)

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Prompt repeats the question until a non-empty line is read.
// Input is not masked. End of input returns domain.ErrPromptAborted.
func (p *LinePrompter) Prompt(ctx context.Context, label string, _ bool) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrPromptAborted, err)
		}
		_, _ = fmt.Fprintf(p.out, "%s: ", label)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", fmt.Errorf("%w: %w", domain.ErrPromptAborted, err)
			}
			return "", fmt.Errorf("%w: end of input", domain.ErrPromptAborted)
		}
		if value := strings.TrimSpace(p.scanner.Text()); value != "" {
			return value, nil
		}
	}
}
