// Package preset provides application templates: functions that return a
// deploy.Configuration already populated with the shared paths, excludes and
// commands a framework needs. Callers keep configuring the result as usual.
package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/artpar/deployconf/internal/core/deploy"
)

var ErrUnknownTemplate = errors.New("unknown application template")

// Options tunes a template.
type Options struct {
	// Locales are the static content locales (Magento 2 only).
	Locales []string
}

// Template is a named application template.
type Template struct {
	Name        string
	Description string
	apply       func(repo string, opts Options) (*deploy.Configuration, error)
}

// Apply builds a configuration for repo.
func (t Template) Apply(repo string, opts Options) (*deploy.Configuration, error) {
	return t.apply(repo, opts)
}

var templates = map[string]Template{
	"magento2": {
		Name:        "magento2",
		Description: "Magento 2 with static content and DI compilation at build time",
		apply: func(repo string, opts Options) (*deploy.Configuration, error) {
			return Magento2(repo, opts.Locales...)
		},
	},
	"laravel": {
		Name:        "laravel",
		Description: "Laravel with migrations and config cache at deploy time",
		apply: func(repo string, _ Options) (*deploy.Configuration, error) {
			return Laravel(repo)
		},
	},
}

// Lookup returns the template registered under name (case-insensitive).
func Lookup(name string) (Template, error) {
	t, ok := templates[strings.ToLower(name)]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Names returns the registered template names, sorted.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
