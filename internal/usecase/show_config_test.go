package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/testutil"
	"github.com/cahaseler/cc-track/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoInfo = domain.ConfigInfo{
			Path:    "/repo/.claude/cc-track.toml",
			Content: "[commit]\npush = true",
			Exists:  true,
		}
		manager.GlobalInfo = domain.ConfigInfo{
			Path:    "/home/test/.config/cc-track/config.toml",
			Content: "[log]\nlevel = \"debug\"",
			Exists:  true,
		}
		loader := testutil.NewMockConfigLoader()
		loader.Config.Commit.Push = true

		out, err := usecase.NewShowConfig(manager, loader).Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, manager.RepoInfo, out.RepoConfig)
		assert.Equal(t, manager.GlobalInfo, out.GlobalConfig)
		require.NotNil(t, out.EffectiveConfig)
		assert.True(t, out.EffectiveConfig.Commit.Push)
	})

	t.Run("broken repo file is reported on its layer", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoInfo = domain.ConfigInfo{Path: "/repo/.claude/cc-track.toml", Exists: true}
		manager.GlobalInfo = domain.ConfigInfo{Path: "/home/test/.config/cc-track/config.toml", Exists: true}
		loader := testutil.NewMockConfigLoader()
		loader.RepoErr = errors.New("parse config /repo/.claude/cc-track.toml: toml: expected character =")
		loader.Err = loader.RepoErr

		out, err := usecase.NewShowConfig(manager, loader).Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.EqualError(t, out.RepoError, loader.RepoErr.Error())
		assert.NoError(t, out.GlobalError)
		assert.Nil(t, out.EffectiveConfig)
	})

	t.Run("missing files are not loaded on their own", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.GlobalErr = errors.New("unexpected")
		loader.RepoErr = errors.New("unexpected")

		out, err := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader).Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.NoError(t, out.GlobalError)
		assert.NoError(t, out.RepoError)
		assert.NotNil(t, out.EffectiveConfig)
	})

	t.Run("invalid config is an error", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.Err = domain.ErrInvalidConfig

		_, err := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader).Execute(context.Background(), usecase.ShowConfigInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestShowConfigTemplate_Execute(t *testing.T) {
	out, err := usecase.NewShowConfigTemplate().Execute(context.Background(), usecase.ShowConfigTemplateInput{})

	require.NoError(t, err)
	assert.Contains(t, out.Template, "[compression]")
	assert.Contains(t, out.Template, "concurrency = 5")
}

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates repo config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoInfo.Path = "/repo/.claude/cc-track.toml"

		out, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/repo/.claude/cc-track.toml", out.Path)
		assert.Equal(t, 1, manager.InitCalls)
	})

	t.Run("existing config without force", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoInfo.Exists = true

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("existing config with force", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoInfo.Exists = true

		_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{Force: true})

		require.NoError(t, err)
		assert.True(t, manager.LastForce)
	})
}
