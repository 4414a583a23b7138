package preset

import "github.com/artpar/deployconf/internal/core/deploy"

// Laravel returns a configuration for a Laravel application.
func Laravel(repo string) (*deploy.Configuration, error) {
	cfg, err := deploy.New(repo)
	if err != nil {
		return nil, err
	}

	cfg.SetPublicFolder("public")
	cfg.SetLogDir("storage/logs")
	cfg.AddSharedFolder(deploy.Path("storage")).
		AddSharedFile(deploy.Path(".env")).
		AddWritableFolder("bootstrap/cache").
		AddDeployExclude("./node_modules").
		AddDeployExclude("./tests")

	cfg.AddBuildCommand(deploy.NewCommand("composer install --no-dev --prefer-dist --optimize-autoloader"))
	cfg.AddDeployCommand(deploy.NewDeployCommand("php artisan migrate --force")).
		AddDeployCommand(deploy.NewDeployCommand("php artisan config:cache"))
	return cfg, nil
}
