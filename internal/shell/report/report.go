// Package report renders a deploy.Configuration for people and tools: an
// indented JSON snapshot of every setting, or a styled text summary.
package report

import (
	"encoding/json"
	"io"

	"github.com/artpar/deployconf/internal/core/deploy"
)

// =============================================================================
// View Types
// =============================================================================

// View is a read-only snapshot of a configuration.
type View struct {
	Repository       string `json:"repository"`
	PHPVersion       string `json:"php_version"`
	PublicFolder     string `json:"public_folder"`
	BuildArchiveFile string `json:"build_archive_file"`
	LogDir           string `json:"log_dir"`

	Stages          []StageView `json:"stages"`
	SharedFolders   []string    `json:"shared_folders"`
	SharedFiles     []string    `json:"shared_files"`
	WritableFolders []string    `json:"writable_folders"`
	WritablePaths   []string    `json:"writable_paths"`
	DeployExclude   []string    `json:"deploy_exclude"`

	BuildCommands          []TaskView `json:"build_commands"`
	DeployCommands         []TaskView `json:"deploy_commands"`
	AfterDeployTasks       []TaskView `json:"after_deploy_tasks"`
	PlatformConfigurations []TaskView `json:"platform_configurations"`
	PlatformServices       []TaskView `json:"platform_services"`

	PostInitializeCallbacks int `json:"post_initialize_callbacks"`

	Deprecated *DeprecatedView `json:"deprecated,omitempty"`
}

// StageView describes a stage.
type StageView struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Username string `json:"username"`
}

// TaskView describes a command or platform descriptor. Command fields are
// empty for platform descriptors, which are carried in Settings instead.
type TaskView struct {
	Kind     string                   `json:"kind"`
	Run      string                   `json:"run,omitempty"`
	Timeout  string                   `json:"timeout,omitempty"`
	TTY      bool                     `json:"tty,omitempty"`
	Stages   []string                 `json:"stages,omitempty"`
	Settings deploy.TaskConfiguration `json:"settings,omitempty"`
}

// DeprecatedView holds the deprecated settings, only present when one is set.
type DeprecatedView struct {
	DockerBaseImagePHP     string `json:"docker_base_image_php,omitempty"`
	DockerBaseImageNginx   string `json:"docker_base_image_nginx,omitempty"`
	DockerImage            string `json:"docker_image,omitempty"`
	DockerRegistry         string `json:"docker_registry,omitempty"`
	DockerRegistryUsername string `json:"docker_registry_username,omitempty"`
	DockerRegistryPassword string `json:"docker_registry_password,omitempty"`
	DaaSEnabled            bool   `json:"daas_enabled"`
}

// =============================================================================
// Building Views
// =============================================================================

// Build takes a snapshot of cfg. Registry passwords are masked.
func Build(cfg *deploy.Configuration) View {
	v := View{
		Repository:       cfg.GitRepository(),
		PHPVersion:       cfg.PHPVersion(),
		PublicFolder:     cfg.PublicFolder(),
		BuildArchiveFile: cfg.BuildArchiveFile(),
		LogDir:           cfg.LogDir(),

		Stages:          make([]StageView, 0, len(cfg.Stages())),
		SharedFolders:   make([]string, 0, len(cfg.SharedFolders())),
		SharedFiles:     make([]string, 0, len(cfg.SharedFiles())),
		WritableFolders: cfg.WritableFolders(),
		WritablePaths:   cfg.WritablePaths(),
		DeployExclude:   cfg.DeployExclude(),

		BuildCommands:          make([]TaskView, 0, len(cfg.BuildCommands())),
		DeployCommands:         make([]TaskView, 0, len(cfg.DeployCommands())),
		AfterDeployTasks:       taskViews(cfg.AfterDeployTasks()),
		PlatformConfigurations: taskViews(cfg.PlatformConfigurations()),
		PlatformServices:       taskViews(cfg.PlatformServices()),

		PostInitializeCallbacks: len(cfg.PostInitializeCallbacks()),
	}

	for _, s := range cfg.Stages() {
		v.Stages = append(v.Stages, StageView{Name: s.Name(), Domain: s.Domain(), Username: s.Username()})
	}
	for _, f := range cfg.SharedFolders() {
		v.SharedFolders = append(v.SharedFolders, f.Path())
	}
	for _, f := range cfg.SharedFiles() {
		v.SharedFiles = append(v.SharedFiles, f.Path())
	}
	for _, c := range cfg.BuildCommands() {
		v.BuildCommands = append(v.BuildCommands, taskView(c))
	}
	for _, c := range cfg.DeployCommands() {
		v.DeployCommands = append(v.DeployCommands, taskView(c))
	}

	if cfg.HasDeprecatedSettings() {
		v.Deprecated = &DeprecatedView{
			DockerBaseImagePHP:     cfg.DockerBaseImagePHP(),
			DockerBaseImageNginx:   cfg.DockerBaseImageNginx(),
			DockerImage:            cfg.DockerImage(),
			DockerRegistry:         cfg.DockerRegistry(),
			DockerRegistryUsername: cfg.DockerRegistryUsername(),
			DockerRegistryPassword: mask(cfg.DockerRegistryPassword()),
			DaaSEnabled:            cfg.DaaSEnabled(),
		}
	}
	return v
}

func taskViews(tasks []deploy.TaskConfiguration) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskView(task))
	}
	return views
}

func taskView(task deploy.TaskConfiguration) TaskView {
	view := TaskView{Kind: task.TaskKind()}

	commander, ok := task.(deploy.Commander)
	if !ok {
		view.Settings = task
		return view
	}

	cmd := commander.AsCommand()
	view.Run = cmd.Line()
	view.TTY = cmd.TTY()
	if cmd.Timeout() > 0 {
		view.Timeout = cmd.Timeout().String()
	}
	if dc, ok := task.(*deploy.DeployCommand); ok {
		view.Stages = dc.Stages()
	}
	return view
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// =============================================================================
// JSON Output
// =============================================================================

// JSON writes the snapshot of cfg as indented JSON.
func JSON(w io.Writer, cfg *deploy.Configuration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(cfg))
}
