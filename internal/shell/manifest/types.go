package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/artpar/deployconf/internal/core/platform"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Manifest - Decoded Document
// =============================================================================

// Manifest is the declarative form of a deploy configuration. The same keys are
// used in YAML and TOML documents.
type Manifest struct {
	Repository string   `yaml:"repository" toml:"repository"`
	Template   string   `yaml:"template" toml:"template"`
	Locales    []string `yaml:"locales" toml:"locales"`

	PHPVersion       string `yaml:"php_version" toml:"php_version"`
	PublicFolder     string `yaml:"public_folder" toml:"public_folder"`
	BuildArchiveFile string `yaml:"build_archive_file" toml:"build_archive_file"`
	LogDir           string `yaml:"log_dir" toml:"log_dir"`

	Stages []StageSpec `yaml:"stages" toml:"stages"`

	SharedFolders        []string `yaml:"shared_folders" toml:"shared_folders"`
	SharedFiles          []string `yaml:"shared_files" toml:"shared_files"`
	WritableFolders      []string `yaml:"writable_folders" toml:"writable_folders"`
	DeployExclude        []string `yaml:"deploy_exclude" toml:"deploy_exclude"`
	ReplaceDeployExclude bool     `yaml:"replace_deploy_exclude" toml:"replace_deploy_exclude"`

	BuildCommands       []CommandSpec `yaml:"build_commands" toml:"build_commands"`
	DeployCommands      []CommandSpec `yaml:"deploy_commands" toml:"deploy_commands"`
	AfterDeployCommands []CommandSpec `yaml:"after_deploy_commands" toml:"after_deploy_commands"`

	PlatformConfigurations []PlatformSpec `yaml:"platform_configurations" toml:"platform_configurations"`
	PlatformServices       []PlatformSpec `yaml:"platform_services" toml:"platform_services"`

	// Deprecated settings, applied for compatibility and otherwise ignored.
	Docker      *DockerSpec `yaml:"docker" toml:"docker"`
	DaaSEnabled bool        `yaml:"daas_enabled" toml:"daas_enabled"`
}

// StageSpec describes one stage.
type StageSpec struct {
	Name     string `yaml:"name" toml:"name"`
	Domain   string `yaml:"domain" toml:"domain"`
	Username string `yaml:"username" toml:"username"`
}

// DockerSpec holds the deprecated docker image settings.
type DockerSpec struct {
	BaseImagePHP     string `yaml:"base_image_php" toml:"base_image_php"`
	BaseImageNginx   string `yaml:"base_image_nginx" toml:"base_image_nginx"`
	Image            string `yaml:"image" toml:"image"`
	Registry         string `yaml:"registry" toml:"registry"`
	RegistryUsername string `yaml:"registry_username" toml:"registry_username"`
	RegistryPassword string `yaml:"registry_password" toml:"registry_password"`
}

// =============================================================================
// CommandSpec
// =============================================================================

// CommandSpec is written either as a plain shell line or as a table:
//
//	build_commands:
//	  - composer install
//	  - run: bin/magento setup:di:compile
//	    timeout: 15m
type CommandSpec struct {
	Run     string   `yaml:"run" toml:"run"`
	Timeout string   `yaml:"timeout" toml:"timeout"`
	TTY     bool     `yaml:"tty" toml:"tty"`
	Stages  []string `yaml:"stages" toml:"stages"`
}

var commandKeys = []string{"run", "timeout", "tty", "stages"}

// UnmarshalYAML accepts a scalar shell line or a mapping. Node.Decode does not
// inherit the decoder's KnownFields setting, so mapping keys are checked here.
func (c *CommandSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = CommandSpec{Run: value.Value}
		return nil
	}
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if !slices.Contains(commandKeys, key.Value) {
				return fmt.Errorf("line %d: unknown command key %q", key.Line, key.Value)
			}
		}
	}
	type plain CommandSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = CommandSpec(p)
	return nil
}

// UnmarshalTOML accepts a string shell line or an inline table.
func (c *CommandSpec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*c = CommandSpec{Run: v}
		return nil
	case map[string]any:
		spec := CommandSpec{}
		for key, raw := range v {
			var ok bool
			switch key {
			case "run":
				spec.Run, ok = raw.(string)
			case "timeout":
				spec.Timeout, ok = raw.(string)
			case "tty":
				spec.TTY, ok = raw.(bool)
			case "stages":
				spec.Stages, ok = stringList(raw)
			default:
				return fmt.Errorf("unknown command key %q", key)
			}
			if !ok {
				return fmt.Errorf("command key %q has unexpected type %T", key, raw)
			}
		}
		*c = spec
		return nil
	default:
		return fmt.Errorf("command must be a string or a table, got %T", data)
	}
}

func stringList(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}

// =============================================================================
// PlatformSpec
// =============================================================================

// PlatformSpec is a platform descriptor: a "type" key naming the platform kind
// plus the attributes of that kind.
//
// YAML scalars are kept as written, so `version: 6.0` stays "6.0". TOML has
// already typed its values by the time they arrive here, and floats are
// rejected in Attributes for the same reason.
type PlatformSpec map[string]any

// UnmarshalYAML keeps every scalar's source text instead of its resolved value.
func (p *PlatformSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: platform entry must be a mapping", value.Line)
	}

	spec := make(PlatformSpec, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			spec[key.Value] = scalarText(val)
		case yaml.SequenceNode:
			items := make([]any, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: platform attribute %q must be a list of scalars", item.Line, key.Value)
				}
				items = append(items, scalarText(item))
			}
			spec[key.Value] = items
		default:
			return fmt.Errorf("line %d: platform attribute %q must be a scalar or a list", val.Line, key.Value)
		}
	}
	*p = spec
	return nil
}

func scalarText(n *yaml.Node) string {
	if n.ShortTag() == "!!null" {
		return ""
	}
	return n.Value
}

// Kind returns the "type" value.
func (p PlatformSpec) Kind() string {
	kind, _ := p["type"].(string)
	return kind
}

// Attributes returns every key except "type" as a string attribute. Lists are
// joined with commas, integers and booleans are formatted with fmt. A float is
// an ErrInvalidAttribute because its source text is lost: 3.10 would read 3.1.
func (p PlatformSpec) Attributes() (platform.Attributes, error) {
	attrs := make(platform.Attributes, len(p))
	for key, value := range p {
		if key == "type" {
			continue
		}
		text, err := formatAttribute(key, value)
		if err != nil {
			return nil, err
		}
		attrs[key] = text
	}
	return attrs, nil
}

func formatAttribute(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float32, float64:
		return "", fmt.Errorf("%w: %s is the number %v; quote version strings", platform.ErrInvalidAttribute, key, v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			part, err := formatAttribute(key, item)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ","), nil
	default:
		return fmt.Sprint(v), nil
	}
}
