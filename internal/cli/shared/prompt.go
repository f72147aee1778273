package shared

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PromptYesNo asks question on the command's output and reads one line from
// its input. Only "y" and "yes" (any case) count as yes; EOF counts as no.
func PromptYesNo(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))

	return answer == "y" || answer == "yes"
}
