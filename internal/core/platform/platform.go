// Package platform contains the task descriptors used to provision the hosting
// platform from the repository: server configuration (nginx, cron, supervisor,
// varnish, settings, whitelists) and additional services (redis, varnish,
// rabbitmq, elasticsearch).
//
// This is part of the Functional Core - descriptors are plain values. The
// platform provisioner reads them from deploy.Configuration and applies them.
package platform

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/artpar/deployconf/internal/core/deploy"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrUnknownKind      = errors.New("unknown platform kind")
	ErrInvalidAttribute = errors.New("invalid platform attribute")
)

// =============================================================================
// Kinds
// =============================================================================

const (
	KindNginx         = "nginx"
	KindSupervisor    = "supervisor"
	KindCron          = "cron"
	KindVarnish       = "varnish"
	KindSetting       = "setting"
	KindWhitelist     = "whitelist"
	KindRedis         = "redis"
	KindVarnishCache  = "varnish-service"
	KindRabbitMQ      = "rabbitmq"
	KindElasticsearch = "elasticsearch"
)

// Attributes holds the string attributes a descriptor is built from, as read
// from a manifest.
type Attributes map[string]string

type factory func(attrs Attributes) (deploy.TaskConfiguration, error)

// registration is a descriptor factory plus the attribute keys it reads.
type registration struct {
	build factory
	keys  []string
}

var registry = map[string]registration{
	KindNginx:         {newNginxFromAttributes, []string{"source"}},
	KindSupervisor:    {newSupervisorFromAttributes, []string{"source"}},
	KindCron:          {newCronFromAttributes, []string{"source"}},
	KindVarnish:       {newVarnishFromAttributes, []string{"config_file", "version"}},
	KindSetting:       {newSettingFromAttributes, []string{"attribute", "value"}},
	KindWhitelist:     {newWhitelistFromAttributes, []string{"access", "addresses"}},
	KindRedis:         {newRedisFromAttributes, []string{"version", "memory_mb", "persistent"}},
	KindVarnishCache:  {newVarnishServiceFromAttributes, []string{"version", "memory_mb"}},
	KindRabbitMQ:      {newRabbitMQFromAttributes, []string{"version"}},
	KindElasticsearch: {newElasticsearchFromAttributes, []string{"version"}},
}

// New builds the descriptor registered for kind from attrs. Missing attributes
// fall back to the descriptor defaults. An attribute the kind does not read is
// an ErrInvalidAttribute, so misspelled keys do not silently keep a default.
func New(kind string, attrs Attributes) (deploy.TaskConfiguration, error) {
	reg, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(reg.keys, name) {
			return nil, fmt.Errorf("%w: %s does not accept %q (accepted: %s)",
				ErrInvalidAttribute, kind, name, strings.Join(reg.keys, ", "))
		}
	}
	return reg.build(attrs)
}

// AttributeKeys returns the attribute keys kind reads, nil for an unknown kind.
func AttributeKeys(kind string) []string {
	reg, ok := registry[kind]
	if !ok {
		return nil
	}
	return append([]string{}, reg.keys...)
}

// Kinds returns every kind New accepts, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// IsService reports whether kind describes a platform service rather than
// server configuration.
func IsService(kind string) bool {
	switch kind {
	case KindRedis, KindVarnishCache, KindRabbitMQ, KindElasticsearch:
		return true
	default:
		return false
	}
}

// =============================================================================
// Attribute Helpers
// =============================================================================

func intAttribute(attrs Attributes, key string, fallback int) (int, error) {
	raw, ok := attrs[key]
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidAttribute, key, raw)
	}
	return n, nil
}

func boolAttribute(attrs Attributes, key string, fallback bool) (bool, error) {
	raw, ok := attrs[key]
	if !ok || raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidAttribute, key, raw)
	}
	return b, nil
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
