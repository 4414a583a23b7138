package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRepository = "git@example.com/repo.git"

func newTestConfiguration(t *testing.T) *Configuration {
	t.Helper()
	cfg, err := New(testRepository)
	require.NoError(t, err)
	return cfg
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNew_KeepsRepository(t *testing.T) {
	testCases := []string{
		"git@example.com/repo.git",
		"https://github.com/acme/shop.git",
		"ssh://git@gitlab.example.com:2222/acme/shop.git",
	}
	for _, repo := range testCases {
		t.Run(repo, func(t *testing.T) {
			cfg, err := New(repo)
			require.NoError(t, err)
			assert.Equal(t, repo, cfg.GitRepository())
		})
	}
}

func TestNew_EmptyRepository(t *testing.T) {
	cfg, err := New("")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrGitRepositoryRequired)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_WhitespaceRepositoryIsKept(t *testing.T) {
	for _, repo := range []string{"   ", "\t\n"} {
		cfg, err := New(repo)
		require.NoError(t, err)
		assert.Equal(t, repo, cfg.GitRepository())
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := newTestConfiguration(t)

	assert.Equal(t, []string{
		"./.git", "./.github", "./deploy.php", "./.gitlab-ci.yml", "./Jenkinsfile",
		".DS_Store", ".idea", ".gitignore", ".editorconfig",
		"*.scss", "*.less", "*.jsx", "*.ts",
	}, cfg.DeployExclude())
	assert.Equal(t, "php", cfg.PHPVersion())
	assert.Equal(t, "pub", cfg.PublicFolder())
	assert.Equal(t, "build/build.tgz", cfg.BuildArchiveFile())
	assert.Equal(t, "var/log", cfg.LogDir())

	assert.Empty(t, cfg.DockerBaseImagePHP())
	assert.Empty(t, cfg.DockerBaseImageNginx())
	assert.Empty(t, cfg.DockerImage())
	assert.Empty(t, cfg.DockerRegistry())
	assert.Empty(t, cfg.DockerRegistryUsername())
	assert.Empty(t, cfg.DockerRegistryPassword())
	assert.False(t, cfg.DaaSEnabled())
	assert.False(t, cfg.HasDeprecatedSettings())
}

func TestNew_EmptyCollectionsAreNotNil(t *testing.T) {
	cfg := newTestConfiguration(t)

	assert.NotNil(t, cfg.Stages())
	assert.NotNil(t, cfg.SharedFolders())
	assert.NotNil(t, cfg.SharedFiles())
	assert.NotNil(t, cfg.WritableFolders())
	assert.NotNil(t, cfg.BuildCommands())
	assert.NotNil(t, cfg.DeployCommands())
	assert.NotNil(t, cfg.AfterDeployTasks())
	assert.NotNil(t, cfg.PlatformConfigurations())
	assert.NotNil(t, cfg.PlatformServices())
	assert.NotNil(t, cfg.PostInitializeCallbacks())

	assert.Empty(t, cfg.Stages())
	assert.Empty(t, cfg.BuildCommands())
	assert.Empty(t, cfg.PostInitializeCallbacks())
}

// =============================================================================
// Stage Tests
// =============================================================================

func TestAddStage_ReturnsStage(t *testing.T) {
	cfg := newTestConfiguration(t)

	stage := cfg.AddStage("production", "shop.example.com")

	assert.Equal(t, "production", stage.Name())
	assert.Equal(t, "shop.example.com", stage.Domain())
	assert.Equal(t, "app", stage.Username())
}

func TestAddStage_WithUsername(t *testing.T) {
	cfg := newTestConfiguration(t)

	stage := cfg.AddStage("acceptance", "acc.example.com", WithUsername("deploy"))

	assert.Equal(t, "deploy", stage.Username())
}

func TestAddStage_AppendsInOrder(t *testing.T) {
	cfg := newTestConfiguration(t)

	prod := cfg.AddStage("production", "shop.example.com")
	acc := cfg.AddStage("acceptance", "acc.example.com")
	test := cfg.AddStage("test", "test.example.com")

	stages := cfg.Stages()
	require.Len(t, stages, 3)
	assert.Same(t, prod, stages[0])
	assert.Same(t, acc, stages[1])
	assert.Same(t, test, stages[2])
}

// =============================================================================
// Shared Folder & File Tests
// =============================================================================

func TestAddSharedFolder_WrapsPath(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.AddSharedFolder(Path("var/import"))

	folders := cfg.SharedFolders()
	require.Len(t, folders, 1)
	assert.Equal(t, "var/import", folders[0].Path())
}

func TestAddSharedFolder_KeepsInstance(t *testing.T) {
	cfg := newTestConfiguration(t)
	folder := NewSharedFolder("pub/media")

	cfg.AddSharedFolder(folder)

	assert.Same(t, folder, cfg.SharedFolders()[0])
}

func TestAddSharedFolder_KeepsDuplicates(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.AddSharedFolder(Path("var/import")).AddSharedFolder(Path("var/import"))

	folders := cfg.SharedFolders()
	require.Len(t, folders, 2)
	assert.True(t, folders[0].Equal(folders[1]))
	assert.NotSame(t, folders[0], folders[1])
}

func TestAddSharedFolder_SkipsNil(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.AddSharedFolder((*SharedFolder)(nil)).
		AddSharedFolder(nil).
		AddSharedFolder(Path("pub/media")).
		AddSharedFile((*SharedFile)(nil)).
		AddSharedFile(nil)
	cfg.SetSharedFolders(Path("var/import"), (*SharedFolder)(nil), Path("pub/media"))

	assert.Len(t, cfg.SharedFolders(), 2)
	assert.Empty(t, cfg.SharedFiles())
	assert.Equal(t, []string{"var/import", "pub/media"}, cfg.WritablePaths())
}

func TestSetSharedFolders_Replaces(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.AddSharedFolder(Path("var/import")).AddSharedFolder(Path("var/export"))

	media := NewSharedFolder("pub/media")
	cfg.SetSharedFolders(media, Path("var/session"))

	folders := cfg.SharedFolders()
	require.Len(t, folders, 2)
	assert.Same(t, media, folders[0])
	assert.Equal(t, "var/session", folders[1].Path())
}

func TestAddSharedFile_WrapsPath(t *testing.T) {
	cfg := newTestConfiguration(t)
	file := NewSharedFile("pub/errors/local.xml")

	cfg.AddSharedFile(Path("app/etc/env.php")).AddSharedFile(file)

	files := cfg.SharedFiles()
	require.Len(t, files, 2)
	assert.Equal(t, "app/etc/env.php", files[0].Path())
	assert.Same(t, file, files[1])
}

func TestSetSharedFiles_Replaces(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.AddSharedFile(Path("app/etc/env.php"))

	cfg.SetSharedFiles()

	assert.Empty(t, cfg.SharedFiles())
}

func TestSharedFolder_Equal(t *testing.T) {
	a := NewSharedFolder("var/import")

	assert.True(t, a.Equal(NewSharedFolder("var/import")))
	assert.False(t, a.Equal(NewSharedFolder("var/export")))
	assert.False(t, a.Equal(nil))
	assert.True(t, NewSharedFile(".env").Equal(NewSharedFile(".env")))
}

// =============================================================================
// Writable Folder Tests
// =============================================================================

func TestWritableFolders_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.AddWritableFolder("var/cache").AddWritableFolder("generated")
	assert.Equal(t, []string{"var/cache", "generated"}, cfg.WritableFolders())

	cfg.SetWritableFolders("pub/static")
	assert.Equal(t, []string{"pub/static"}, cfg.WritableFolders())
}

func TestWritablePaths_IncludesSharedFolders(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.AddSharedFolder(Path("pub/media"))
	cfg.AddWritableFolder("var/cache")
	cfg.AddSharedFolder(Path("var/import"))

	assert.Equal(t, []string{"pub/media", "var/import", "var/cache"}, cfg.WritablePaths())
	assert.Equal(t, []string{"var/cache"}, cfg.WritableFolders())
}

// =============================================================================
// Deploy Exclude Tests
// =============================================================================

func TestAddDeployExclude_AppendsToDefaults(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.AddDeployExclude("./phpcs.xml")

	excludes := cfg.DeployExclude()
	assert.Len(t, excludes, len(DefaultDeployExclude())+1)
	assert.Equal(t, "./phpcs.xml", excludes[len(excludes)-1])
}

func TestSetDeployExclude_DiscardsDefaults(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.SetDeployExclude()
	assert.Empty(t, cfg.DeployExclude())
	assert.NotNil(t, cfg.DeployExclude())

	cfg.SetDeployExclude("./.git", "*.map")
	assert.Equal(t, []string{"./.git", "*.map"}, cfg.DeployExclude())
}

func TestDefaultDeployExclude_ReturnsCopy(t *testing.T) {
	defaults := DefaultDeployExclude()
	defaults[0] = "changed"

	assert.Equal(t, "./.git", DefaultDeployExclude()[0])
	assert.Equal(t, "./.git", newTestConfiguration(t).DeployExclude()[0])
}

// =============================================================================
// Command Collection Tests
// =============================================================================

func TestBuildCommands_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)
	first := NewCommand("composer install")
	second := NewCommand("npm run build")
	deployCmd := NewDeployCommand("bin/magento setup:di:compile")

	cfg.AddBuildCommand(first).AddBuildCommand(second).AddBuildCommand(deployCmd)
	assert.Equal(t, []Commander{first, second, deployCmd}, cfg.BuildCommands())

	replacement := NewCommand("make build")
	cfg.SetBuildCommands(replacement)
	assert.Equal(t, []Commander{replacement}, cfg.BuildCommands())
}

func TestDeployCommands_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)
	a := NewDeployCommand("bin/magento app:config:import")
	b := NewDeployCommand("bin/magento cache:flush")

	cfg.AddDeployCommand(a).AddDeployCommand(b)
	assert.Equal(t, []*DeployCommand{a, b}, cfg.DeployCommands())

	cfg.SetDeployCommands()
	assert.Empty(t, cfg.DeployCommands())
}

func TestAfterDeployTasks_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)
	notify := NewCommand("curl -X POST https://hooks.example.com/deployed")
	tag := NewDeployCommand("newrelic deploy").ForStages("production")

	cfg.AddAfterDeployTask(notify).AddAfterDeployTask(tag)
	assert.Equal(t, []TaskConfiguration{notify, tag}, cfg.AfterDeployTasks())

	cfg.SetAfterDeployTasks(tag)
	assert.Equal(t, []TaskConfiguration{tag}, cfg.AfterDeployTasks())
}

// =============================================================================
// Platform Tests
// =============================================================================

type fakeTask struct {
	kind string
}

func (f *fakeTask) TaskKind() string { return f.kind }

func TestPlatformConfigurations_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)
	nginx := &fakeTask{kind: "nginx"}
	cron := &fakeTask{kind: "cron"}

	cfg.AddPlatformConfiguration(nginx).AddPlatformConfiguration(cron)
	assert.Equal(t, []TaskConfiguration{nginx, cron}, cfg.PlatformConfigurations())

	cfg.SetPlatformConfigurations(cron)
	assert.Equal(t, []TaskConfiguration{cron}, cfg.PlatformConfigurations())
	assert.Empty(t, cfg.PlatformServices())
}

func TestPlatformServices_AddThenSet(t *testing.T) {
	cfg := newTestConfiguration(t)
	redis := &fakeTask{kind: "redis"}
	varnish := &fakeTask{kind: "varnish"}

	cfg.AddPlatformService(redis).AddPlatformService(varnish)
	require.Len(t, cfg.PlatformServices(), 2)
	assert.Same(t, redis, cfg.PlatformServices()[0])

	cfg.SetPlatformServices(varnish, redis, redis)
	assert.Equal(t, []TaskConfiguration{varnish, redis, redis}, cfg.PlatformServices())
}

// =============================================================================
// Post Initialize Callback Tests
// =============================================================================

func TestPostInitializeCallbacks_StoredNotInvoked(t *testing.T) {
	cfg := newTestConfiguration(t)
	var calls []string

	cfg.AddPostInitializeCallback(func() { calls = append(calls, "first") }).
		AddPostInitializeCallback(func() { calls = append(calls, "second") })

	assert.Empty(t, calls)

	callbacks := cfg.PostInitializeCallbacks()
	require.Len(t, callbacks, 2)
	for _, callback := range callbacks {
		callback()
	}
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestSetPostInitializeCallbacks_Replaces(t *testing.T) {
	cfg := newTestConfiguration(t)
	called := false
	cfg.AddPostInitializeCallback(func() {})

	cfg.SetPostInitializeCallbacks(func() { called = true })

	callbacks := cfg.PostInitializeCallbacks()
	require.Len(t, callbacks, 1)
	callbacks[0]()
	assert.True(t, called)
}

// =============================================================================
// Scalar Tests
// =============================================================================

func TestScalars_LastWriteWins(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.SetPHPVersion("php8.1")
	cfg.SetPHPVersion("php8.3")
	cfg.SetPublicFolder("public")
	cfg.SetBuildArchiveFile("dist/release.tgz")
	cfg.SetLogDir("storage/logs")

	assert.Equal(t, "php8.3", cfg.PHPVersion())
	assert.Equal(t, "public", cfg.PublicFolder())
	assert.Equal(t, "dist/release.tgz", cfg.BuildArchiveFile())
	assert.Equal(t, "storage/logs", cfg.LogDir())
}

func TestDeprecatedSettings_AreStored(t *testing.T) {
	cfg := newTestConfiguration(t)

	cfg.SetDockerBaseImagePHP("registry.example.com/php:8.2-fpm")
	cfg.SetDockerBaseImageNginx("nginx:stable")
	cfg.SetDockerImage("acme/shop")
	cfg.SetDockerRegistry("registry.example.com")
	cfg.SetDockerRegistryUsername("ci")
	cfg.SetDockerRegistryPassword("secret")
	cfg.SetDaaSEnabled(true)

	assert.Equal(t, "registry.example.com/php:8.2-fpm", cfg.DockerBaseImagePHP())
	assert.Equal(t, "nginx:stable", cfg.DockerBaseImageNginx())
	assert.Equal(t, "acme/shop", cfg.DockerImage())
	assert.Equal(t, "registry.example.com", cfg.DockerRegistry())
	assert.Equal(t, "ci", cfg.DockerRegistryUsername())
	assert.Equal(t, "secret", cfg.DockerRegistryPassword())
	assert.True(t, cfg.DaaSEnabled())
	assert.True(t, cfg.HasDeprecatedSettings())
}

func TestHasDeprecatedSettings_SingleField(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.SetDockerRegistry("registry.example.com")
	assert.True(t, cfg.HasDeprecatedSettings())
}

// =============================================================================
// Read Tests
// =============================================================================

func TestGetters_AreIdempotent(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.AddStage("production", "shop.example.com")
	cfg.AddSharedFolder(Path("pub/media"))
	cfg.AddDeployExclude("*.map")

	assert.Equal(t, cfg.Stages(), cfg.Stages())
	assert.Equal(t, cfg.SharedFolders(), cfg.SharedFolders())
	assert.Equal(t, cfg.DeployExclude(), cfg.DeployExclude())
	assert.Equal(t, cfg.WritablePaths(), cfg.WritablePaths())
}

func TestGetters_ReturnCopies(t *testing.T) {
	cfg := newTestConfiguration(t)
	cfg.AddWritableFolder("var/cache")

	folders := cfg.WritableFolders()
	folders[0] = "changed"
	_ = append(cfg.DeployExclude(), "appended")

	assert.Equal(t, []string{"var/cache"}, cfg.WritableFolders())
	assert.Len(t, cfg.DeployExclude(), len(DefaultDeployExclude()))
}
