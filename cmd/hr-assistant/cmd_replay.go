package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/lexicon"
	"github.com/kazifarms/hr-assistant/internal/replay"
)

var replayFlags struct {
	fixture string
	lexicon string
	workers int
	verbose bool
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded fixture offline and check routing expectations",
	RunE:  runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVar(&replayFlags.fixture, "fixture", "", "path to fixture JSON (required)")
	f.StringVar(&replayFlags.lexicon, "lexicon", "", "lexicon YAML overlay")
	f.IntVar(&replayFlags.workers, "workers", 4, "cases replayed in parallel")
	f.BoolVarP(&replayFlags.verbose, "verbose", "v", false, "print every response")

	_ = replayCmd.MarkFlagRequired("fixture")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	f, err := replay.LoadFixture(replayFlags.fixture)
	if err != nil {
		return err
	}
	if rootFlags.variant != "" {
		f.Config.Variant = rootFlags.variant
	}
	if rootFlags.seed != 0 {
		f.Config.Seed = rootFlags.seed
	}
	lex, err := lexicon.Load(replayFlags.lexicon)
	if err != nil {
		return err
	}

	results, err := replay.NewHarness(lex, replayFlags.workers, zap.NewNop()).Replay(cmd.Context(), f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.Description != "" {
		fmt.Fprintf(out, "Fixture: %s\n\n", f.Description)
	}
	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%-4s %-20s %-22s conf=%5.1f  %s\n", status, r.ID, r.Terminal, r.Confidence, r.Query)
		for _, m := range r.Mismatches {
			fmt.Fprintf(out, "       %s\n", m)
		}
		if replayFlags.verbose {
			fmt.Fprintf(out, "       > %s\n", r.Response)
		}
	}

	s := replay.Summarize(results)
	fmt.Fprintf(out, "\n%d cases: %d passed, %d failed\n", s.Total, s.Passed, s.Failed)
	terminals := make([]string, 0, len(s.Terminals))
	for t := range s.Terminals {
		terminals = append(terminals, t)
	}
	sort.Strings(terminals)
	for _, t := range terminals {
		fmt.Fprintf(out, "  %-22s %d\n", t, s.Terminals[t])
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", s.Failed, s.Total)
	}
	return nil
}
