// Command causalctl analyzes causal loop models from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "causalctl",
		Short: "Find feedback loops and leverage points in causal loop models",
		Long: "causalctl reads a causal loop model, detects its feedback loops,\n" +
			"identifies leverage points and synthesizes strategic options.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newArchetypesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
