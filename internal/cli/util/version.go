package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/openmotor-dataset/openmotor/internal/build"
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for openmotor",
	Example: `  # Show version info
  openmotor version

  # Plain output (for scripts)
  openmotor version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = shared.GroupConfiguration
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "openmotor %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the version info inside a box
func printPrettyVersion(out io.Writer) {
	termWidth := shared.GetTerminalWidth()
	colors := shared.NewColors()

	fmt.Fprintln(out)
	fmt.Fprintln(out, colors.Cyan(shared.CenterText("openmotor", termWidth)))
	fmt.Fprintln(out, colors.Dim(shared.CenterText(shared.Tagline, termWidth)))
	fmt.Fprintln(out)

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))
	blank := pad + shared.BoxVertical + strings.Repeat(" ", boxWidth-2) + shared.BoxVertical

	fmt.Fprintln(out, pad+shared.BoxTopLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxTopRight)
	fmt.Fprintln(out, blank)
	for _, item := range info {
		line := fmt.Sprintf("  %s    %s", colors.Yellow(fmt.Sprintf("%12s", item.label)), colors.White(item.value))
		lineLen := 12 + 4 + len(item.value) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(out, pad+shared.BoxVertical+" "+line+" "+shared.BoxVertical)
	}
	fmt.Fprintln(out, blank)
	fmt.Fprintln(out, pad+shared.BoxBottomLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxBottomRight)
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
