package preset

import (
	"github.com/artpar/deployconf/internal/core/deploy"
)

// DefaultMagentoLocale is used for static content when no locales are given.
const DefaultMagentoLocale = "en_US"

// Magento2 returns a configuration for a Magento 2 shop.
//
// Static content is generated on the build host for the given locales, so the
// deploy itself only imports config, upgrades the schema and flushes the cache.
func Magento2(repo string, locales ...string) (*deploy.Configuration, error) {
	cfg, err := deploy.New(repo)
	if err != nil {
		return nil, err
	}
	if len(locales) == 0 {
		locales = []string{DefaultMagentoLocale}
	}

	cfg.SetSharedFiles(
		deploy.Path("app/etc/env.php"),
		deploy.Path("pub/errors/local.xml"),
	)
	cfg.SetSharedFolders(
		deploy.Path("var/log"),
		deploy.Path("var/session"),
		deploy.Path("var/report"),
		deploy.Path("var/export"),
		deploy.Path("pub/media"),
		deploy.Path("pub/sitemaps"),
		deploy.Path("pub/static/_cache"),
	)
	cfg.AddDeployExclude("./phpcs.xml").
		AddDeployExclude("./phpmd.xml").
		AddDeployExclude("./auth.json")

	staticContent := append([]string{
		"bin/magento", "setup:static-content:deploy", "--force", "--jobs=4",
	}, locales...)

	cfg.SetBuildCommands(
		deploy.NewCommand("composer install --no-dev --prefer-dist --optimize-autoloader"),
		deploy.NewCommand("bin/magento setup:di:compile"),
		deploy.CommandFromArgs(staticContent...),
	)
	cfg.SetDeployCommands(
		deploy.NewDeployCommand("bin/magento app:config:import"),
		deploy.NewDeployCommand("bin/magento setup:upgrade --keep-generated"),
		deploy.NewDeployCommand("bin/magento cache:flush"),
	)
	return cfg, nil
}
