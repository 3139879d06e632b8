package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

func TestTemplateFile_Template(t *testing.T) {
	t.Run("returns default when missing", func(t *testing.T) {
		tf := NewTemplateFile(filepath.Join(t.TempDir(), "template"))

		got, err := tf.Template()

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMessageTemplate, got)
	})

	t.Run("returns file content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template")
		require.NoError(t, os.WriteFile(path, []byte("refs #{{.issue_id}}"), 0o600))

		got, err := NewTemplateFile(path).Template()

		require.NoError(t, err)
		assert.Equal(t, "refs #{{.issue_id}}", got)
	})

	t.Run("empty path uses default", func(t *testing.T) {
		got, err := NewTemplateFile("").Template()

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMessageTemplate, got)
	})
}

func TestTemplateFile_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git-issue-commit", "template")
	tf := NewTemplateFile(path)

	require.NoError(t, tf.Init())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMessageTemplate, string(content))

	assert.ErrorIs(t, tf.Init(), domain.ErrTemplateExists)
}
