package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/runoshun/git-issue-commit/internal/infra/config"
	"github.com/runoshun/git-issue-commit/internal/usecase"
)

func TestInitTemplate_Execute(t *testing.T) {
	t.Run("creates template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template")

		uc := usecase.NewInitTemplate(config.NewTemplateFile(path))
		out, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, path, out.Path)
	})

	t.Run("returns error when template already exists", func(t *testing.T) {
		tf := config.NewTemplateFile(filepath.Join(t.TempDir(), "template"))
		require.NoError(t, tf.Init())

		uc := usecase.NewInitTemplate(tf)
		_, err := uc.Execute(context.Background())

		assert.ErrorIs(t, err, domain.ErrTemplateExists)
	})
}
