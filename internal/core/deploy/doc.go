// Package deploy contains the deploy configuration model.
//
// This is part of the Functional Core - the package performs no I/O, starts no
// processes and never invokes the callbacks it stores. A deploy script (or the
// manifest loader in internal/shell/manifest) builds a Configuration with the
// builder methods and then hands it, read-only, to the deploy engine.
//
// # Collections
//
// Every collection follows the same contract:
//
//   - Get (e.g. SharedFolders) returns the contents in insertion order, never nil.
//   - Add (e.g. AddSharedFolder) appends one element and returns the Configuration.
//   - Set (e.g. SetSharedFolders) clears the collection, then adds each element.
//
// AddStage is the exception: it returns the new *Stage instead of the
// Configuration so the caller can keep configuring that stage. Nil shared
// folders and files are skipped by the Add methods.
//
// # Deprecated settings
//
// The Docker and DaaS accessors are kept for old deploy scripts and have no
// effect. Unset values are the empty string (false for DaaSEnabled), not a
// separate null state: SetDockerImage("") is the same as never setting it.
//
// # Usage
//
//	cfg, err := deploy.New("git@github.com:acme/shop.git")
//	if err != nil {
//	    return err
//	}
//	cfg.AddStage("production", "shop.example.com")
//	cfg.AddSharedFolder(deploy.Path("var/import")).
//	    AddSharedFile(deploy.Path("app/etc/env.php")).
//	    AddBuildCommand(deploy.NewCommand("composer install --no-dev"))
package deploy
