package platform

import (
	"fmt"

	"github.com/artpar/deployconf/internal/core/deploy"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultNginxFolder      = "etc/nginx"
	DefaultSupervisorFolder = "etc/supervisor"
	DefaultCronFile         = "etc/cron"
	DefaultVarnishFile      = "etc/varnish.vcl"
	DefaultVarnishVersion   = "6.0"
)

// =============================================================================
// Server Configuration
// =============================================================================

// NginxConfiguration syncs the nginx configuration in SourceFolder to the servers.
type NginxConfiguration struct {
	SourceFolder string `json:"source_folder"`
}

// NewNginxConfiguration creates an nginx configuration, defaulting to etc/nginx.
func NewNginxConfiguration(sourceFolder string) *NginxConfiguration {
	return &NginxConfiguration{SourceFolder: orDefault(sourceFolder, DefaultNginxFolder)}
}

func (n *NginxConfiguration) TaskKind() string { return KindNginx }

func newNginxFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return NewNginxConfiguration(a["source"]), nil
}

// SupervisorConfiguration syncs supervisor program files in SourceFolder.
type SupervisorConfiguration struct {
	SourceFolder string `json:"source_folder"`
}

func NewSupervisorConfiguration(sourceFolder string) *SupervisorConfiguration {
	return &SupervisorConfiguration{SourceFolder: orDefault(sourceFolder, DefaultSupervisorFolder)}
}

func (s *SupervisorConfiguration) TaskKind() string { return KindSupervisor }

func newSupervisorFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return NewSupervisorConfiguration(a["source"]), nil
}

// CronConfiguration installs the crontab in SourceFile. The provisioner
// replaces the block it manages and leaves the rest of the crontab alone.
type CronConfiguration struct {
	SourceFile string `json:"source_file"`
}

func NewCronConfiguration(sourceFile string) *CronConfiguration {
	return &CronConfiguration{SourceFile: orDefault(sourceFile, DefaultCronFile)}
}

func (c *CronConfiguration) TaskKind() string { return KindCron }

func newCronFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return NewCronConfiguration(a["source"]), nil
}

// VarnishConfiguration uploads a VCL file and selects the varnish version.
type VarnishConfiguration struct {
	ConfigFile string `json:"config_file"`
	Version    string `json:"version"`
}

func NewVarnishConfiguration(configFile, version string) *VarnishConfiguration {
	return &VarnishConfiguration{
		ConfigFile: orDefault(configFile, DefaultVarnishFile),
		Version:    orDefault(version, DefaultVarnishVersion),
	}
}

func (v *VarnishConfiguration) TaskKind() string { return KindVarnish }

func newVarnishFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	return NewVarnishConfiguration(a["config_file"], a["version"]), nil
}

// SettingConfiguration sets a single platform setting, e.g. php_version=8.2.
type SettingConfiguration struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

func NewSettingConfiguration(attribute, value string) *SettingConfiguration {
	return &SettingConfiguration{Attribute: attribute, Value: value}
}

func (s *SettingConfiguration) TaskKind() string { return KindSetting }

func newSettingFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	if a["attribute"] == "" {
		return nil, fmt.Errorf("%w: setting requires an attribute", ErrInvalidAttribute)
	}
	return NewSettingConfiguration(a["attribute"], a["value"]), nil
}

// Whitelist types.
const (
	WhitelistDatabase = "database"
	WhitelistFTP      = "ftp"
	WhitelistWAF      = "waf"
)

// WhitelistConfiguration grants the given addresses access of the given type.
type WhitelistConfiguration struct {
	Type      string   `json:"type"`
	Addresses []string `json:"addresses"`
}

func NewWhitelistConfiguration(whitelistType string, addresses ...string) *WhitelistConfiguration {
	return &WhitelistConfiguration{
		Type:      orDefault(whitelistType, WhitelistDatabase),
		Addresses: append([]string{}, addresses...),
	}
}

func (w *WhitelistConfiguration) TaskKind() string { return KindWhitelist }

func newWhitelistFromAttributes(a Attributes) (deploy.TaskConfiguration, error) {
	addresses := splitList(a["addresses"])
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%w: whitelist requires at least one address", ErrInvalidAttribute)
	}
	access := orDefault(a["access"], WhitelistDatabase)
	switch access {
	case WhitelistDatabase, WhitelistFTP, WhitelistWAF:
	default:
		return nil, fmt.Errorf("%w: whitelist access must be %s, %s or %s, got %q",
			ErrInvalidAttribute, WhitelistDatabase, WhitelistFTP, WhitelistWAF, access)
	}
	return NewWhitelistConfiguration(access, addresses...), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
