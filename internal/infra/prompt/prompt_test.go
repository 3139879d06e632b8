package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

func typeText(t *testing.T, m *model, text string) *model {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		var ok bool
		m, ok = updated.(*model)
		require.True(t, ok, "expected *model from Update")
	}
	return m
}

func TestModel_SubmitsValue(t *testing.T) {
	m := typeText(t, newModel("Tracker url", false), "https://redmine.example.com")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*model)

	assert.True(t, m.done)
	assert.Equal(t, "https://redmine.example.com", m.value)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_RejectsEmptyValue(t *testing.T) {
	m := typeText(t, newModel("Tracker url", false), "   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*model)

	assert.False(t, m.done)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "a value is required")
}

func TestModel_Abort(t *testing.T) {
	m := newModel("Api key", true)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(*model)

	assert.True(t, m.aborted)
}

func TestModel_SecretIsMasked(t *testing.T) {
	m := typeText(t, newModel("Api key", true), "hunter2")

	view := m.View()

	assert.Contains(t, view, "Api key")
	assert.NotContains(t, view, "hunter2")
}

func TestLinePrompter_Prompt(t *testing.T) {
	t.Run("skips empty lines", func(t *testing.T) {
		var out bytes.Buffer
		p := NewLinePrompter(strings.NewReader("\n  \nhttps://redmine.example.com\n"), &out)

		value, err := p.Prompt(context.Background(), "Tracker url", false)

		require.NoError(t, err)
		assert.Equal(t, "https://redmine.example.com", value)
		assert.Equal(t, 3, strings.Count(out.String(), "Tracker url: "))
	})

	t.Run("reads successive values", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader("url\nkey\n"), &bytes.Buffer{})

		first, err := p.Prompt(context.Background(), "Tracker url", false)
		require.NoError(t, err)
		second, err := p.Prompt(context.Background(), "Api key", true)
		require.NoError(t, err)

		assert.Equal(t, "url", first)
		assert.Equal(t, "key", second)
	})

	t.Run("end of input aborts", func(t *testing.T) {
		p := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})

		_, err := p.Prompt(context.Background(), "Api key", true)

		assert.ErrorIs(t, err, domain.ErrPromptAborted)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := NewLinePrompter(strings.NewReader("value\n"), &bytes.Buffer{})

		_, err := p.Prompt(ctx, "Api key", true)

		assert.ErrorIs(t, err, domain.ErrPromptAborted)
	})
}
