package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

var ingestFlags struct {
	batch int
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <passages.jsonl>",
	Short: "Embed and index passages into the valkey index",
	Long: "Reads one JSON passage per line: {\"id\": \"...\", \"text\": \"...\", \"metadata\": {\"source\": \"...\"}}.\n" +
		"Creates the index if needed. Requires the valkey index backend.",
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestFlags.batch, "batch", 64, "passages embedded per request")
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()
	if a.valkey == nil {
		return fmt.Errorf("ingest requires index.backend=valkey, got %q", a.cfg.Index.Backend)
	}

	passages, err := readPassages(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := a.valkey.EnsureIndex(ctx); err != nil {
		return err
	}

	batch := max(ingestFlags.batch, 1)
	total := 0
	for start := 0; start < len(passages); start += batch {
		n, err := a.valkey.Put(ctx, passages[start:min(start+batch, len(passages))])
		if err != nil {
			return fmt.Errorf("batch at %d: %w", start, err)
		}
		total += n
		a.log.Debug("batch indexed", zap.Int("offset", start), zap.Int("count", n))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d passages into %s\n", total, a.cfg.Index.Name)
	return nil
}

// readPassages parses a JSONL file, skipping blank lines and passages
// without text.
func readPassages(path string) ([]retrieval.Passage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open passages: %w", err)
	}
	defer f.Close()

	var out []retrieval.Passage
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; sc.Scan(); line++ {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var p retrieval.Passage
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("passage-%d", line)
		}
		out = append(out, p)
	}
	return out, sc.Err()
}
