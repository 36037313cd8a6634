package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kazifarms/hr-assistant/internal/logging"
	"github.com/kazifarms/hr-assistant/internal/store"
)

var inspectFlags struct {
	limit int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect stored sessions and the run log",
}

var inspectRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent pipeline runs and terminal counts",
	RunE:  runInspectRuns,
}

var inspectSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored conversation sessions",
	RunE:  runInspectSessions,
}

var inspectStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show conversation memory statistics",
	RunE:  runInspectStats,
}

var inspectExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every conversation as JSON to stdout",
	RunE:  runInspectExport,
}

func init() {
	inspectRunsCmd.Flags().IntVarP(&inspectFlags.limit, "limit", "n", 20, "number of runs to show")
	inspectCmd.AddCommand(inspectRunsCmd, inspectSessionsCmd, inspectStatsCmd, inspectExportCmd)
}

// openStore opens the configured SQLite file without wiring the pipeline.
func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := logging.Migrate(s.DB()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func runInspectRuns(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := logging.Recent(s.DB(), inspectFlags.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %-10s %-22s %-8s conf=%5.1f %5dms  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Variant, r.Terminal, r.MatchType, r.Confidence, r.DurationMS, r.Query)
		if r.ErrorMessage != "" {
			fmt.Fprintf(out, "    error: %s\n", r.ErrorMessage)
		}
	}

	counts, err := logging.TerminalCounts(s.DB())
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(out, "\nTerminals:")
	for _, k := range keys {
		fmt.Fprintf(out, "  %-22s %d\n", k, counts[k])
	}
	return nil
}

func runInspectSessions(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sessions, err := s.ListSessions(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, si := range sessions {
		fmt.Fprintf(out, "%s  %s  %3d msgs  %s\n",
			si.SessionID, si.LastUpdated.Format("2006-01-02 15:04"), si.MessageCount, si.Summary)
	}
	return nil
}

func runInspectStats(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Conversations: %d\n", st.TotalConversations)
	fmt.Fprintf(out, "Messages:      %d\n", st.TotalMessages)
	fmt.Fprintf(out, "Size:          %d bytes\n", st.SizeBytes)
	return nil
}

func runInspectExport(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Export(cmd.Context(), cmd.OutOrStdout())
}
