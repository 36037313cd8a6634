// hr-assistant answers Kazi Farms HR questions from the indexed policy
// documents.
//
// Usage:
//
//	hr-assistant ask "What is the house allowance for a farm manager?"
//	hr-assistant chat [--session=<id>]
//	hr-assistant serve
//	hr-assistant replay --fixture=<path>
//	hr-assistant inspect runs|sessions|stats|export
//	hr-assistant ingest <passages.jsonl>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config  string
	variant string
	seed    uint64
}

var rootCmd = &cobra.Command{
	Use:   "hr-assistant",
	Short: "Guarded, confidence-gated HR Q&A for Kazi Farms",
	Long: "hr-assistant answers employee questions about salaries, allowances, leave and policy\n" +
		"from the indexed HR documents, falling back to canned guidance when the evidence is weak.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.config, "config", "c", "", "config file (default config/$ENV.yaml)")
	f.StringVar(&rootFlags.variant, "variant", "", "pipeline variant override: basic, similarity or final")
	f.Uint64Var(&rootFlags.seed, "seed", 0, "random seed override for pooled responses (0 keeps config)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
