package deploy

import (
	"time"

	"github.com/kballard/go-shellquote"
)

// =============================================================================
// Task Capability
// =============================================================================

// TaskConfiguration is implemented by everything the deploy engine turns into a
// task: commands, deploy commands and platform descriptors. The configuration
// treats these values as opaque.
type TaskConfiguration interface {
	// TaskKind names the kind of task, e.g. "command" or "nginx".
	TaskKind() string
}

// Commander is a TaskConfiguration backed by a Command. Both *Command and
// *DeployCommand satisfy it, so either can be used as a build command.
type Commander interface {
	TaskConfiguration
	AsCommand() *Command
}

// Task kinds of the command types.
const (
	KindCommand       = "command"
	KindDeployCommand = "deploy-command"
)

// =============================================================================
// Command
// =============================================================================

// Command is a shell command run at one of the deploy phases.
type Command struct {
	line    string
	timeout time.Duration
	tty     bool
}

// CommandOption customizes a Command.
type CommandOption func(*Command)

// WithTimeout limits how long the command may run. Zero means the engine default.
func WithTimeout(d time.Duration) CommandOption {
	return func(c *Command) {
		c.timeout = d
	}
}

// WithTTY requests a pseudo terminal for the command.
func WithTTY() CommandOption {
	return func(c *Command) {
		c.tty = true
	}
}

// NewCommand creates a command from a shell line, e.g. "bin/magento cache:flush".
func NewCommand(line string, opts ...CommandOption) *Command {
	c := &Command{line: line}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommandFromArgs creates a command from an argument vector, quoting each
// argument so that Args returns the same vector.
//
// Example:
//
//	CommandFromArgs("echo", "hello world").Line() // returns "echo 'hello world'"
func CommandFromArgs(args ...string) *Command {
	return NewCommand(shellquote.Join(args...))
}

// Line returns the shell line.
func (c *Command) Line() string {
	return c.line
}

// Args splits the shell line into arguments using POSIX shell quoting rules.
func (c *Command) Args() ([]string, error) {
	return shellquote.Split(c.line)
}

// Timeout returns the configured timeout, zero if unset.
func (c *Command) Timeout() time.Duration {
	return c.timeout
}

// TTY reports whether the command needs a pseudo terminal.
func (c *Command) TTY() bool {
	return c.tty
}

// TaskKind implements TaskConfiguration.
func (c *Command) TaskKind() string {
	return KindCommand
}

// AsCommand implements Commander.
func (c *Command) AsCommand() *Command {
	return c
}

// =============================================================================
// DeployCommand
// =============================================================================

// DeployCommand is a command run on the servers of the stages it targets.
// A deploy command without stages runs on every stage.
type DeployCommand struct {
	Command
	stages []string
}

// NewDeployCommand creates a deploy command that targets every stage.
func NewDeployCommand(line string, opts ...CommandOption) *DeployCommand {
	return &DeployCommand{Command: *NewCommand(line, opts...)}
}

// ForStages restricts the command to the named stages. Calls accumulate.
func (d *DeployCommand) ForStages(names ...string) *DeployCommand {
	d.stages = append(d.stages, names...)
	return d
}

// Stages returns the targeted stage names, empty when the command runs everywhere.
func (d *DeployCommand) Stages() []string {
	return append([]string{}, d.stages...)
}

// AppliesTo reports whether the command runs on stage, matching by stage name.
// A nil stage matches nothing.
func (d *DeployCommand) AppliesTo(stage *Stage) bool {
	if stage == nil {
		return false
	}
	if len(d.stages) == 0 {
		return true
	}
	for _, name := range d.stages {
		if name == stage.Name() {
			return true
		}
	}
	return false
}

// TaskKind implements TaskConfiguration.
func (d *DeployCommand) TaskKind() string {
	return KindDeployCommand
}
