package deploy

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultPHPVersion       = "php"
	DefaultPublicFolder     = "pub"
	DefaultBuildArchiveFile = "build/build.tgz"
	DefaultLogDir           = "var/log"
)

// defaultDeployExclude uses tar --exclude semantics: a leading "./" anchors the
// pattern to the project root, a bare pattern matches anywhere in the tree.
var defaultDeployExclude = []string{
	"./.git",
	"./.github",
	"./deploy.php",
	"./.gitlab-ci.yml",
	"./Jenkinsfile",
	".DS_Store",
	".idea",
	".gitignore",
	".editorconfig",
	"*.scss",
	"*.less",
	"*.jsx",
	"*.ts",
}

// DefaultDeployExclude returns the patterns every new Configuration starts with.
func DefaultDeployExclude() []string {
	return append([]string{}, defaultDeployExclude...)
}

// PostInitializeCallback is run by the deploy engine once its own tasks are set
// up, so a script can reconfigure them late. The configuration only stores it.
type PostInitializeCallback func()

// =============================================================================
// Configuration
// =============================================================================

// Configuration describes how an application is built and deployed to its stages.
type Configuration struct {
	gitRepository string

	stages                  []*Stage
	sharedFolders           []*SharedFolder
	sharedFiles             []*SharedFile
	writableFolders         []string
	deployExclude           []string
	buildCommands           []Commander
	deployCommands          []*DeployCommand
	afterDeployTasks        []TaskConfiguration
	platformConfigurations  []TaskConfiguration
	platformServices        []TaskConfiguration
	postInitializeCallbacks []PostInitializeCallback

	phpVersion       string
	publicFolder     string
	buildArchiveFile string
	logDir           string

	docker      dockerSettings
	daasEnabled bool
}

// dockerSettings are kept only so old deploy scripts keep working. Nothing reads them.
type dockerSettings struct {
	baseImagePHP     string
	baseImageNginx   string
	image            string
	registry         string
	registryUsername string
	registryPassword string
}

// New creates a Configuration for the given git repository.
// Returns ErrGitRepositoryRequired if gitRepository is empty. Any other string,
// including one of only whitespace, is stored unchanged.
func New(gitRepository string) (*Configuration, error) {
	if gitRepository == "" {
		return nil, ErrGitRepositoryRequired
	}
	return &Configuration{
		gitRepository:    gitRepository,
		deployExclude:    DefaultDeployExclude(),
		phpVersion:       DefaultPHPVersion,
		publicFolder:     DefaultPublicFolder,
		buildArchiveFile: DefaultBuildArchiveFile,
		logDir:           DefaultLogDir,
	}, nil
}

// GitRepository returns the repository the deploy engine clones.
func (c *Configuration) GitRepository() string {
	return c.gitRepository
}

// =============================================================================
// Stages
// =============================================================================

// AddStage creates a stage, appends it and returns the stage (not the
// Configuration) so stage specific settings can follow.
func (c *Configuration) AddStage(name, domain string, opts ...StageOption) *Stage {
	stage := newStage(name, domain, opts...)
	c.stages = append(c.stages, stage)
	return stage
}

// Stages returns the stages in the order they were added.
func (c *Configuration) Stages() []*Stage {
	return append([]*Stage{}, c.stages...)
}

// =============================================================================
// Shared Folders & Files
// =============================================================================

// SetSharedFolders replaces all shared folders.
func (c *Configuration) SetSharedFolders(folders ...SharedFolderSource) *Configuration {
	c.sharedFolders = nil
	for _, folder := range folders {
		c.AddSharedFolder(folder)
	}
	return c
}

// AddSharedFolder appends a shared folder. A Path is wrapped into a new
// SharedFolder, a *SharedFolder is stored as is. Duplicates are kept, nil
// folders are skipped.
func (c *Configuration) AddSharedFolder(folder SharedFolderSource) *Configuration {
	if folder == nil {
		return c
	}
	if f := folder.AsSharedFolder(); f != nil {
		c.sharedFolders = append(c.sharedFolders, f)
	}
	return c
}

// SharedFolders returns the shared folders in symlink order.
func (c *Configuration) SharedFolders() []*SharedFolder {
	return append([]*SharedFolder{}, c.sharedFolders...)
}

// SetSharedFiles replaces all shared files.
func (c *Configuration) SetSharedFiles(files ...SharedFileSource) *Configuration {
	c.sharedFiles = nil
	for _, file := range files {
		c.AddSharedFile(file)
	}
	return c
}

// AddSharedFile appends a shared file, wrapping a Path the same way AddSharedFolder does.
func (c *Configuration) AddSharedFile(file SharedFileSource) *Configuration {
	if file == nil {
		return c
	}
	if f := file.AsSharedFile(); f != nil {
		c.sharedFiles = append(c.sharedFiles, f)
	}
	return c
}

// SharedFiles returns the shared files.
func (c *Configuration) SharedFiles() []*SharedFile {
	return append([]*SharedFile{}, c.sharedFiles...)
}

// =============================================================================
// Writable Folders
// =============================================================================

// SetWritableFolders replaces all writable folders.
func (c *Configuration) SetWritableFolders(folders ...string) *Configuration {
	c.writableFolders = nil
	for _, folder := range folders {
		c.AddWritableFolder(folder)
	}
	return c
}

// AddWritableFolder appends a folder that must be writable but is not shared.
func (c *Configuration) AddWritableFolder(folder string) *Configuration {
	c.writableFolders = append(c.writableFolders, folder)
	return c
}

// WritableFolders returns the explicitly writable folders. Shared folders are
// writable as well but are not included; see WritablePaths.
func (c *Configuration) WritableFolders() []string {
	return append([]string{}, c.writableFolders...)
}

// WritablePaths returns every path the application may write to: the shared
// folder paths followed by the writable folders. Nothing is deduplicated.
func (c *Configuration) WritablePaths() []string {
	paths := make([]string, 0, len(c.sharedFolders)+len(c.writableFolders))
	for _, folder := range c.sharedFolders {
		paths = append(paths, folder.Path())
	}
	return append(paths, c.writableFolders...)
}

// =============================================================================
// Deploy Exclude
// =============================================================================

// SetDeployExclude replaces the exclude patterns, defaults included.
func (c *Configuration) SetDeployExclude(patterns ...string) *Configuration {
	c.deployExclude = nil
	for _, pattern := range patterns {
		c.AddDeployExclude(pattern)
	}
	return c
}

// AddDeployExclude appends a pattern passed to the archiver as tar --exclude.
func (c *Configuration) AddDeployExclude(pattern string) *Configuration {
	c.deployExclude = append(c.deployExclude, pattern)
	return c
}

// DeployExclude returns the exclude patterns.
func (c *Configuration) DeployExclude() []string {
	return append([]string{}, c.deployExclude...)
}

// =============================================================================
// Commands
// =============================================================================

// SetBuildCommands replaces the build commands.
func (c *Configuration) SetBuildCommands(commands ...Commander) *Configuration {
	c.buildCommands = nil
	for _, command := range commands {
		c.AddBuildCommand(command)
	}
	return c
}

// AddBuildCommand appends a command run on the build host before the release
// archive is created, e.g. static content generation.
func (c *Configuration) AddBuildCommand(command Commander) *Configuration {
	c.buildCommands = append(c.buildCommands, command)
	return c
}

// BuildCommands returns the build commands.
func (c *Configuration) BuildCommands() []Commander {
	return append([]Commander{}, c.buildCommands...)
}

// SetDeployCommands replaces the deploy commands.
func (c *Configuration) SetDeployCommands(commands ...*DeployCommand) *Configuration {
	c.deployCommands = nil
	for _, command := range commands {
		c.AddDeployCommand(command)
	}
	return c
}

// AddDeployCommand appends a command run on the stage servers during deploy.
func (c *Configuration) AddDeployCommand(command *DeployCommand) *Configuration {
	c.deployCommands = append(c.deployCommands, command)
	return c
}

// DeployCommands returns the deploy commands.
func (c *Configuration) DeployCommands() []*DeployCommand {
	return append([]*DeployCommand{}, c.deployCommands...)
}

// SetAfterDeployTasks replaces the after deploy tasks.
func (c *Configuration) SetAfterDeployTasks(tasks ...TaskConfiguration) *Configuration {
	c.afterDeployTasks = nil
	for _, task := range tasks {
		c.AddAfterDeployTask(task)
	}
	return c
}

// AddAfterDeployTask appends a task run after a successful deploy,
// e.g. a deploy notification.
func (c *Configuration) AddAfterDeployTask(task TaskConfiguration) *Configuration {
	c.afterDeployTasks = append(c.afterDeployTasks, task)
	return c
}

// AfterDeployTasks returns the after deploy tasks.
func (c *Configuration) AfterDeployTasks() []TaskConfiguration {
	return append([]TaskConfiguration{}, c.afterDeployTasks...)
}

// =============================================================================
// Platform
// =============================================================================

// SetPlatformConfigurations replaces the platform configurations.
func (c *Configuration) SetPlatformConfigurations(configs ...TaskConfiguration) *Configuration {
	c.platformConfigurations = nil
	for _, config := range configs {
		c.AddPlatformConfiguration(config)
	}
	return c
}

// AddPlatformConfiguration appends server configuration provisioned from the repository.
func (c *Configuration) AddPlatformConfiguration(config TaskConfiguration) *Configuration {
	c.platformConfigurations = append(c.platformConfigurations, config)
	return c
}

// PlatformConfigurations returns the platform configurations.
func (c *Configuration) PlatformConfigurations() []TaskConfiguration {
	return append([]TaskConfiguration{}, c.platformConfigurations...)
}

// SetPlatformServices replaces the platform services.
func (c *Configuration) SetPlatformServices(services ...TaskConfiguration) *Configuration {
	c.platformServices = nil
	for _, service := range services {
		c.AddPlatformService(service)
	}
	return c
}

// AddPlatformService appends an additional service to run on the platform.
func (c *Configuration) AddPlatformService(service TaskConfiguration) *Configuration {
	c.platformServices = append(c.platformServices, service)
	return c
}

// PlatformServices returns the platform services.
func (c *Configuration) PlatformServices() []TaskConfiguration {
	return append([]TaskConfiguration{}, c.platformServices...)
}

// =============================================================================
// Post Initialize Callbacks
// =============================================================================

// SetPostInitializeCallbacks replaces the post initialize callbacks.
func (c *Configuration) SetPostInitializeCallbacks(callbacks ...PostInitializeCallback) *Configuration {
	c.postInitializeCallbacks = nil
	for _, callback := range callbacks {
		c.AddPostInitializeCallback(callback)
	}
	return c
}

// AddPostInitializeCallback appends a callback for the deploy engine to run.
func (c *Configuration) AddPostInitializeCallback(callback PostInitializeCallback) *Configuration {
	c.postInitializeCallbacks = append(c.postInitializeCallbacks, callback)
	return c
}

// PostInitializeCallbacks returns the callbacks in insertion order.
func (c *Configuration) PostInitializeCallbacks() []PostInitializeCallback {
	return append([]PostInitializeCallback{}, c.postInitializeCallbacks...)
}

// =============================================================================
// Scalar Settings
// =============================================================================

// PHPVersion returns the PHP binary used on the servers, DefaultPHPVersion unless set.
func (c *Configuration) PHPVersion() string { return c.phpVersion }

// SetPHPVersion sets the PHP binary used on the servers, e.g. "php8.2".
func (c *Configuration) SetPHPVersion(version string) { c.phpVersion = version }

// PublicFolder returns the web root, DefaultPublicFolder unless set.
func (c *Configuration) PublicFolder() string { return c.publicFolder }

// SetPublicFolder sets the web root relative to the release folder.
func (c *Configuration) SetPublicFolder(folder string) { c.publicFolder = folder }

// BuildArchiveFile returns where the build artifact is written, DefaultBuildArchiveFile unless set.
func (c *Configuration) BuildArchiveFile() string { return c.buildArchiveFile }

// SetBuildArchiveFile sets the build artifact path relative to the project root.
func (c *Configuration) SetBuildArchiveFile(file string) { c.buildArchiveFile = file }

// LogDir returns the log directory, DefaultLogDir unless set.
func (c *Configuration) LogDir() string { return c.logDir }

// SetLogDir sets the directory holding log files, used for log aggregation.
func (c *Configuration) SetLogDir(dir string) { c.logDir = dir }
