package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/artpar/deployconf/internal/core/deploy"
	"github.com/artpar/deployconf/internal/core/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfiguration(t *testing.T) *deploy.Configuration {
	t.Helper()
	cfg, err := deploy.New("git@github.com:acme/shop.git")
	require.NoError(t, err)

	cfg.AddStage("production", "shop.example.com")
	cfg.AddStage("acceptance", "acc.example.com", deploy.WithUsername("deploy"))
	cfg.AddSharedFolder(deploy.Path("pub/media")).
		AddSharedFile(deploy.Path("app/etc/env.php")).
		AddWritableFolder("var/cache").
		AddBuildCommand(deploy.NewCommand("composer install", deploy.WithTimeout(5*time.Minute))).
		AddDeployCommand(deploy.NewDeployCommand("bin/magento indexer:reindex").ForStages("production")).
		AddAfterDeployTask(deploy.NewCommand("curl https://hooks.example.com")).
		AddPlatformConfiguration(platform.NewNginxConfiguration("")).
		AddPlatformService(platform.NewRedisService()).
		AddPostInitializeCallback(func() {})
	return cfg
}

// =============================================================================
// View Tests
// =============================================================================

func TestBuild_Snapshot(t *testing.T) {
	v := Build(newTestConfiguration(t))

	assert.Equal(t, "git@github.com:acme/shop.git", v.Repository)
	assert.Equal(t, []StageView{
		{Name: "production", Domain: "shop.example.com", Username: "app"},
		{Name: "acceptance", Domain: "acc.example.com", Username: "deploy"},
	}, v.Stages)
	assert.Equal(t, []string{"pub/media"}, v.SharedFolders)
	assert.Equal(t, []string{"pub/media", "var/cache"}, v.WritablePaths)
	assert.Equal(t, deploy.DefaultDeployExclude(), v.DeployExclude)
	assert.Equal(t, 1, v.PostInitializeCallbacks)
	assert.Nil(t, v.Deprecated)
}

func TestBuild_Tasks(t *testing.T) {
	v := Build(newTestConfiguration(t))

	assert.Equal(t, []TaskView{{Kind: "command", Run: "composer install", Timeout: "5m0s"}}, v.BuildCommands)
	assert.Equal(t, []TaskView{{Kind: "deploy-command", Run: "bin/magento indexer:reindex", Stages: []string{"production"}}}, v.DeployCommands)
	assert.Equal(t, "curl https://hooks.example.com", v.AfterDeployTasks[0].Run)

	require.Len(t, v.PlatformConfigurations, 1)
	assert.Equal(t, "nginx", v.PlatformConfigurations[0].Kind)
	assert.Empty(t, v.PlatformConfigurations[0].Run)
	assert.Equal(t, platform.NewNginxConfiguration(""), v.PlatformConfigurations[0].Settings)
}

func TestBuild_EmptyConfiguration(t *testing.T) {
	cfg, err := deploy.New("git@github.com:acme/shop.git")
	require.NoError(t, err)

	v := Build(cfg)

	assert.NotNil(t, v.Stages)
	assert.NotNil(t, v.BuildCommands)
	assert.NotNil(t, v.PlatformServices)
	assert.Zero(t, v.PostInitializeCallbacks)
}

func TestBuild_MasksRegistryPassword(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.SetDockerRegistryUsername("ci")
	cfg.SetDockerRegistryPassword("hunter2")

	v := Build(cfg)

	require.NotNil(t, v.Deprecated)
	assert.Equal(t, "ci", v.Deprecated.DockerRegistryUsername)
	assert.Equal(t, "********", v.Deprecated.DockerRegistryPassword)
}

// =============================================================================
// JSON Tests
// =============================================================================

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, newTestConfiguration(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "git@github.com:acme/shop.git", decoded["repository"])
	assert.Equal(t, "pub", decoded["public_folder"])
	assert.NotContains(t, decoded, "deprecated")

	services := decoded["platform_services"].([]any)
	require.Len(t, services, 1)
	settings := services[0].(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, float64(platform.DefaultRedisMemoryMB), settings["memory_mb"])
}

// =============================================================================
// Text Tests
// =============================================================================

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, newTestConfiguration(t)))
	out := buf.String()

	assert.Contains(t, out, "Deploy configuration")
	assert.Contains(t, out, "git@github.com:acme/shop.git")
	assert.Contains(t, out, "deploy@acc.example.com")
	assert.Contains(t, out, "bin/magento indexer:reindex")
	assert.Contains(t, out, "production")
	assert.Contains(t, out, "*.scss")
	assert.NotContains(t, out, "deprecated")
}

func TestText_EmptySections(t *testing.T) {
	cfg, err := deploy.New("git@github.com:acme/shop.git")
	require.NoError(t, err)
	cfg.SetDaaSEnabled(true)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, cfg))

	assert.Contains(t, buf.String(), "(none)")
	assert.Contains(t, buf.String(), "deprecated docker/daas settings")
}
