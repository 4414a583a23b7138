package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/artpar/deployconf/internal/core/deploy"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Text writes a human readable summary of cfg. Empty sections are listed as
// "(none)" so the output always has the same shape.
func Text(w io.Writer, cfg *deploy.Configuration) error {
	v := Build(cfg)
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deploy configuration") + "\n")
	writeField(&b, "repository", v.Repository)
	writeField(&b, "php", v.PHPVersion)
	writeField(&b, "public folder", v.PublicFolder)
	writeField(&b, "build archive", v.BuildArchiveFile)
	writeField(&b, "log dir", v.LogDir)

	stages := make([]string, 0, len(v.Stages))
	for _, s := range v.Stages {
		stages = append(stages, fmt.Sprintf("%s  %s@%s", s.Name, s.Username, s.Domain))
	}
	writeSection(&b, "Stages", stages)
	writeSection(&b, "Shared folders", v.SharedFolders)
	writeSection(&b, "Shared files", v.SharedFiles)
	writeSection(&b, "Writable paths", v.WritablePaths)
	writeSection(&b, "Deploy exclude", v.DeployExclude)
	writeSection(&b, "Build commands", taskLines(v.BuildCommands))
	writeSection(&b, "Deploy commands", taskLines(v.DeployCommands))
	writeSection(&b, "After deploy", taskLines(v.AfterDeployTasks))
	writeSection(&b, "Platform configurations", taskLines(v.PlatformConfigurations))
	writeSection(&b, "Platform services", taskLines(v.PlatformServices))

	if v.PostInitializeCallbacks > 0 {
		writeField(&b, "post initialize callbacks", fmt.Sprint(v.PostInitializeCallbacks))
	}
	if v.Deprecated != nil {
		b.WriteString("\n" + warnStyle.Render("deprecated docker/daas settings are set and will be ignored") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", mutedStyle.Render(label+":"), value)
}

func writeSection(b *strings.Builder, title string, lines []string) {
	b.WriteString("\n" + headingStyle.Render(title) + "\n")
	if len(lines) == 0 {
		b.WriteString("  " + mutedStyle.Render("(none)") + "\n")
		return
	}
	for _, line := range lines {
		b.WriteString("  - " + line + "\n")
	}
}

func taskLines(tasks []TaskView) []string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Run == "" {
			lines = append(lines, fmt.Sprintf("%s %+v", t.Kind, t.Settings))
			continue
		}
		line := t.Run
		if len(t.Stages) > 0 {
			line += mutedStyle.Render(" [" + strings.Join(t.Stages, ", ") + "]")
		}
		if t.Timeout != "" {
			line += mutedStyle.Render(" (timeout " + t.Timeout + ")")
		}
		lines = append(lines, line)
	}
	return lines
}
