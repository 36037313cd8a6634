package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kazifarms/hr-assistant/internal/assistant"
)

var askFlags struct {
	session  string
	json     bool
	noMemory bool
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	f := askCmd.Flags()
	f.StringVar(&askFlags.session, "session", "", "continue an existing session")
	f.BoolVar(&askFlags.json, "json", false, "print the full result as JSON")
	f.BoolVar(&askFlags.noMemory, "no-memory", false, "skip conversation memory and the run log")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(!askFlags.noMemory)
	if err != nil {
		return err
	}
	defer a.close()

	ans, err := a.svc.Ask(cmd.Context(), askFlags.session, strings.Join(args, " "))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if askFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}
	printAnswer(out, ans)
	return nil
}

// printAnswer writes the response with its confidence, sources and any
// followup hint.
func printAnswer(out io.Writer, ans assistant.Answer) {
	fmt.Fprintln(out, ans.FinalResponse)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Confidence: %.1f%%\n", ans.ConfidenceScore)
	if len(ans.SourceDocuments) > 0 {
		fmt.Fprintf(out, "Sources:\n")
		for i, p := range ans.SourceDocuments {
			label := p.Source()
			if label == "" {
				label = p.ID
			}
			fmt.Fprintf(out, "  %d. %s\n", i+1, label)
		}
	}
	if ans.FollowupSuggestion != "" {
		fmt.Fprintf(out, "Tip: %s\n", ans.FollowupSuggestion)
	}
	if ans.SimilarityReport != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ans.SimilarityReport)
	}
	if ans.SessionID != "" {
		fmt.Fprintf(out, "Session: %s\n", ans.SessionID)
	}
}
