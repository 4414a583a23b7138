package manifest

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/artpar/deployconf/internal/core/deploy"
	"github.com/artpar/deployconf/internal/core/platform"
	"github.com/artpar/deployconf/internal/core/preset"
	"github.com/artpar/deployconf/internal/core/validation"
)

// =============================================================================
// Build
// =============================================================================

// Build turns a parsed manifest into a configuration. Sections are applied in
// a fixed order: template, scalars, stages, shared paths, writable folders,
// excludes, commands, platform, deprecated settings. Lists in the manifest are
// appended to whatever the template already configured.
func Build(m *Manifest, logger *slog.Logger) (*deploy.Configuration, error) {
	logger = orDiscard(logger)

	cfg, err := newConfiguration(m)
	if err != nil {
		return nil, err
	}

	applyScalars(cfg, m)

	if err := applyStages(cfg, m.Stages); err != nil {
		return nil, err
	}

	for _, folder := range m.SharedFolders {
		cfg.AddSharedFolder(deploy.Path(folder))
	}
	for _, file := range m.SharedFiles {
		cfg.AddSharedFile(deploy.Path(file))
	}
	for _, folder := range m.WritableFolders {
		cfg.AddWritableFolder(folder)
	}

	if m.ReplaceDeployExclude {
		cfg.SetDeployExclude(m.DeployExclude...)
	} else {
		for _, pattern := range m.DeployExclude {
			cfg.AddDeployExclude(pattern)
		}
	}

	if err := applyCommands(cfg, m, logger); err != nil {
		return nil, err
	}
	if err := applyPlatform(cfg, m, logger); err != nil {
		return nil, err
	}
	applyDeprecated(cfg, m, logger)

	logger.Debug("manifest applied",
		"repository", cfg.GitRepository(),
		"template", m.Template,
		"stages", len(cfg.Stages()),
		"build_commands", len(cfg.BuildCommands()),
		"deploy_commands", len(cfg.DeployCommands()),
	)
	return cfg, nil
}

func newConfiguration(m *Manifest) (*deploy.Configuration, error) {
	var (
		cfg *deploy.Configuration
		err error
	)
	if m.Repository != "" && strings.TrimSpace(m.Repository) == "" {
		return nil, NewParseError("repository", "repository must not be blank", deploy.ErrGitRepositoryRequired)
	}
	if m.Template == "" {
		cfg, err = deploy.New(m.Repository)
	} else {
		tmpl, lookupErr := preset.Lookup(m.Template)
		if lookupErr != nil {
			return nil, NewParseError("template", lookupErr.Error(), fmt.Errorf("%w: %w", ErrInvalidTemplate, lookupErr))
		}
		cfg, err = tmpl.Apply(m.Repository, preset.Options{Locales: m.Locales})
	}
	if err != nil {
		return nil, NewParseError("repository", err.Error(), err)
	}
	return cfg, nil
}

func applyScalars(cfg *deploy.Configuration, m *Manifest) {
	if m.PHPVersion != "" {
		cfg.SetPHPVersion(m.PHPVersion)
	}
	if m.PublicFolder != "" {
		cfg.SetPublicFolder(m.PublicFolder)
	}
	if m.BuildArchiveFile != "" {
		cfg.SetBuildArchiveFile(m.BuildArchiveFile)
	}
	if m.LogDir != "" {
		cfg.SetLogDir(m.LogDir)
	}
}

func applyStages(cfg *deploy.Configuration, stages []StageSpec) error {
	names := make([]string, 0, len(stages))
	for _, s := range cfg.Stages() {
		names = append(names, s.Name())
	}

	for i, s := range stages {
		prefix := fmt.Sprintf("stages[%d]", i)
		if field, msg := validation.ValidateStageFields(s.Name, s.Domain, s.Username); field != "" {
			return NewParseError(prefix+"."+field, msg, ErrInvalidStage)
		}
		if ok, reason := validation.CanAddStage(names, s.Name); !ok {
			return NewParseError(prefix+".name", reason, ErrInvalidStage)
		}
		names = append(names, s.Name)

		var opts []deploy.StageOption
		if s.Username != "" {
			opts = append(opts, deploy.WithUsername(s.Username))
		}
		cfg.AddStage(s.Name, s.Domain, opts...)
	}
	return nil
}

// =============================================================================
// Commands
// =============================================================================

func applyCommands(cfg *deploy.Configuration, m *Manifest, logger *slog.Logger) error {
	stages := make([]string, 0, len(m.Stages))
	for _, s := range cfg.Stages() {
		stages = append(stages, s.Name())
	}
	warnUndefined := func(field string, spec CommandSpec) {
		if missing := validation.UndefinedStages(stages, spec.Stages); len(missing) > 0 {
			logger.Warn("command targets undefined stages", "field", field, "stages", missing)
		}
	}

	for i, spec := range m.BuildCommands {
		field := fmt.Sprintf("build_commands[%d]", i)
		cmd, err := toDeployCommand(field, spec)
		if err != nil {
			return err
		}
		warnUndefined(field, spec)
		if len(spec.Stages) == 0 {
			cfg.AddBuildCommand(cmd.AsCommand())
		} else {
			cfg.AddBuildCommand(cmd)
		}
	}
	for i, spec := range m.DeployCommands {
		field := fmt.Sprintf("deploy_commands[%d]", i)
		cmd, err := toDeployCommand(field, spec)
		if err != nil {
			return err
		}
		warnUndefined(field, spec)
		cfg.AddDeployCommand(cmd)
	}
	for i, spec := range m.AfterDeployCommands {
		field := fmt.Sprintf("after_deploy_commands[%d]", i)
		cmd, err := toDeployCommand(field, spec)
		if err != nil {
			return err
		}
		warnUndefined(field, spec)
		if len(spec.Stages) == 0 {
			cfg.AddAfterDeployTask(cmd.AsCommand())
		} else {
			cfg.AddAfterDeployTask(cmd)
		}
	}
	return nil
}

// toDeployCommand validates a command spec. Callers that do not target stages
// unwrap the result with AsCommand.
func toDeployCommand(field string, spec CommandSpec) (*deploy.DeployCommand, error) {
	if strings.TrimSpace(spec.Run) == "" {
		return nil, NewParseError(field+".run", "command is required", ErrInvalidCommand)
	}

	var opts []deploy.CommandOption
	if spec.Timeout != "" {
		timeout, err := time.ParseDuration(spec.Timeout)
		if err != nil || timeout < 0 {
			return nil, NewParseError(field+".timeout", fmt.Sprintf("invalid duration %q", spec.Timeout), ErrInvalidCommand)
		}
		opts = append(opts, deploy.WithTimeout(timeout))
	}
	if spec.TTY {
		opts = append(opts, deploy.WithTTY())
	}

	cmd := deploy.NewDeployCommand(spec.Run, opts...)
	if _, err := cmd.Args(); err != nil {
		return nil, NewParseError(field+".run", err.Error(), ErrInvalidCommand)
	}
	return cmd.ForStages(spec.Stages...), nil
}

// =============================================================================
// Platform
// =============================================================================

func applyPlatform(cfg *deploy.Configuration, m *Manifest, logger *slog.Logger) error {
	for i, spec := range m.PlatformConfigurations {
		task, err := toPlatformTask(fmt.Sprintf("platform_configurations[%d]", i), spec)
		if err != nil {
			return err
		}
		if platform.IsService(task.TaskKind()) {
			logger.Warn("platform service listed as platform configuration", "kind", task.TaskKind())
		}
		cfg.AddPlatformConfiguration(task)
	}
	for i, spec := range m.PlatformServices {
		task, err := toPlatformTask(fmt.Sprintf("platform_services[%d]", i), spec)
		if err != nil {
			return err
		}
		if !platform.IsService(task.TaskKind()) {
			logger.Warn("platform configuration listed as platform service", "kind", task.TaskKind())
		}
		cfg.AddPlatformService(task)
	}
	return nil
}

func toPlatformTask(field string, spec PlatformSpec) (deploy.TaskConfiguration, error) {
	kind := spec.Kind()
	if kind == "" {
		return nil, NewParseError(field+".type", "platform type is required", ErrInvalidPlatform)
	}
	attrs, err := spec.Attributes()
	if err != nil {
		return nil, NewParseError(field, err.Error(), fmt.Errorf("%w: %w", ErrInvalidPlatform, err))
	}
	task, err := platform.New(kind, attrs)
	if err != nil {
		return nil, NewParseError(field, err.Error(), fmt.Errorf("%w: %w", ErrInvalidPlatform, err))
	}
	return task, nil
}

// =============================================================================
// Deprecated Settings
// =============================================================================

func applyDeprecated(cfg *deploy.Configuration, m *Manifest, logger *slog.Logger) {
	if d := m.Docker; d != nil {
		cfg.SetDockerBaseImagePHP(d.BaseImagePHP)
		cfg.SetDockerBaseImageNginx(d.BaseImageNginx)
		cfg.SetDockerImage(d.Image)
		cfg.SetDockerRegistry(d.Registry)
		cfg.SetDockerRegistryUsername(d.RegistryUsername)
		cfg.SetDockerRegistryPassword(d.RegistryPassword)
	}
	cfg.SetDaaSEnabled(m.DaaSEnabled)

	if cfg.HasDeprecatedSettings() {
		logger.Warn("deprecated docker and daas settings are ignored by the deploy engine")
	}
}
