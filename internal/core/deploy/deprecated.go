package deploy

// =============================================================================
// Deprecated Docker Settings
// =============================================================================

// The settings below belonged to the Docker based hosting product. They are
// stored so older deploy scripts keep working but have no effect on a deploy.
// An empty string means unset, so setting "" cannot be told apart from never
// setting the value.

// DockerBaseImagePHP returns the PHP base image.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) DockerBaseImagePHP() string { return c.docker.baseImagePHP }

// SetDockerBaseImagePHP stores the PHP base image.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) SetDockerBaseImagePHP(image string) { c.docker.baseImagePHP = image }

// DockerBaseImageNginx returns the nginx base image.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) DockerBaseImageNginx() string { return c.docker.baseImageNginx }

// SetDockerBaseImageNginx stores the nginx base image.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) SetDockerBaseImageNginx(image string) { c.docker.baseImageNginx = image }

// DockerImage returns the application image name.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) DockerImage() string { return c.docker.image }

// SetDockerImage stores the application image name.
//
// Deprecated: Docker images are no longer built; the value is ignored.
func (c *Configuration) SetDockerImage(image string) { c.docker.image = image }

// DockerRegistry returns the registry images were pushed to.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) DockerRegistry() string { return c.docker.registry }

// SetDockerRegistry stores the image registry.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) SetDockerRegistry(registry string) { c.docker.registry = registry }

// DockerRegistryUsername returns the registry user.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) DockerRegistryUsername() string { return c.docker.registryUsername }

// SetDockerRegistryUsername stores the registry user.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) SetDockerRegistryUsername(username string) {
	c.docker.registryUsername = username
}

// DockerRegistryPassword returns the registry password.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) DockerRegistryPassword() string { return c.docker.registryPassword }

// SetDockerRegistryPassword stores the registry password.
//
// Deprecated: Docker images are no longer pushed; the value is ignored.
func (c *Configuration) SetDockerRegistryPassword(password string) {
	c.docker.registryPassword = password
}

// DaaSEnabled reports whether DevOps as a Service was switched on.
//
// Deprecated: DevOps as a Service is not supported; the value is ignored.
func (c *Configuration) DaaSEnabled() bool { return c.daasEnabled }

// SetDaaSEnabled switches DevOps as a Service on or off.
//
// Deprecated: DevOps as a Service is not supported; the value is ignored.
func (c *Configuration) SetDaaSEnabled(enabled bool) { c.daasEnabled = enabled }

// HasDeprecatedSettings reports whether any of the deprecated settings was set.
func (c *Configuration) HasDeprecatedSettings() bool {
	return c.docker != dockerSettings{} || c.daasEnabled
}
