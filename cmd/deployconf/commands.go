package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/artpar/deployconf/internal/core/deploy"
	"github.com/artpar/deployconf/internal/core/platform"
	"github.com/artpar/deployconf/internal/core/preset"
	"github.com/artpar/deployconf/internal/shell/manifest"
	"github.com/artpar/deployconf/internal/shell/report"
	"github.com/spf13/cobra"
)

// cli holds the state shared by all commands of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	config *Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "deployconf",
		Short: "Inspect and validate deploy manifests",
		Long: `deployconf reads a deploy manifest (YAML or TOML) and builds the deploy
configuration the deploy engine consumes: stages, shared and writable paths,
release excludes, build/deploy/after-deploy commands and platform provisioning.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		c.newValidateCmd(),
		c.newShowCmd(),
		c.newTemplatesCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return &CommandError{Op: "load config", Err: err, ExitCode: ExitConfigError}
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}

	c.config = cfg
	c.logger = SetupLogger(cfg, c.stderr)

	// LoadConfig falls back to defaults for a missing file.
	if c.configPath != "" {
		if _, err := os.Stat(c.configPath); errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("config file not found, using defaults", "path", c.configPath)
		}
	}
	c.logger.Debug("configuration loaded", "command", cmd.Name(), "config", c.configPath)
	return nil
}

// loadManifest resolves the manifest path and format from the arguments, the
// --format flag and the config file, in that order.
func (c *cli) loadManifest(args []string, format string) (*deploy.Configuration, string, error) {
	path := c.config.Manifest.Path
	if len(args) > 0 {
		path = args[0]
	}
	if format == "" {
		format = c.config.Manifest.Format
	}

	var f manifest.Format
	if format != "" {
		parsed, err := manifest.ParseFormat(format)
		if err != nil {
			return nil, path, &CommandError{Op: "parse format", Err: err, ExitCode: ExitUsageError}
		}
		f = parsed
	}

	cfg, err := manifest.LoadFile(path, f, c.logger)
	if err != nil {
		return nil, path, &CommandError{Op: "load manifest " + path, Err: err, ExitCode: ExitManifestError}
	}
	return cfg, path, nil
}

// =============================================================================
// validate
// =============================================================================

func (c *cli) newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check that a manifest builds a deploy configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadManifest(args, format)
			if err != nil {
				return err
			}

			c.logger.Info("manifest is valid",
				"path", path,
				"repository", cfg.GitRepository(),
				"stages", len(cfg.Stages()),
				"build_commands", len(cfg.BuildCommands()),
				"deploy_commands", len(cfg.DeployCommands()),
			)
			if len(cfg.Stages()) == 0 {
				c.logger.Warn("manifest defines no stages", "path", path)
			}
			fmt.Fprintf(c.stdout, "%s: ok\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Manifest format (yaml, toml); detected from the extension by default")
	return cmd
}

// =============================================================================
// show
// =============================================================================

func (c *cli) newShowCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "show [manifest]",
		Short: "Print the deploy configuration a manifest builds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = c.config.Output.Format
			}

			cfg, _, err := c.loadManifest(args, format)
			if err != nil {
				return err
			}

			switch strings.ToLower(output) {
			case "json":
				err = report.JSON(c.stdout, cfg)
			case "text", "":
				err = report.Text(c.stdout, cfg)
			default:
				return &CommandError{
					Op:       "show",
					Err:      fmt.Errorf("unknown output format %q", output),
					ExitCode: ExitUsageError,
				}
			}
			if err != nil {
				return &CommandError{Op: "write report", Err: err, ExitCode: ExitOutputError}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Manifest format (yaml, toml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (text, json)")
	return cmd
}

// =============================================================================
// templates
// =============================================================================

func (c *cli) newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List application templates and platform types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.stdout, "Application templates:")
			for _, name := range preset.Names() {
				tmpl, err := preset.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "  %-10s %s\n", tmpl.Name, tmpl.Description)
			}

			fmt.Fprintln(c.stdout, "\nPlatform types:")
			for _, kind := range platform.Kinds() {
				group := "configuration"
				if platform.IsService(kind) {
					group = "service"
				}
				fmt.Fprintf(c.stdout, "  %-16s %-13s %s\n", kind, group, strings.Join(platform.AttributeKeys(kind), ", "))
			}
			return nil
		},
	}
}

// =============================================================================
// version
// =============================================================================

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "deployconf %s (built %s)\n", Version, BuildTime)
		},
	}
}
