package similarity

import (
	"fmt"
	"strings"
)

// Report renders metrics as the plain-text comparison report.
func Report(query, answer string, m Metrics) string {
	var b strings.Builder
	b.WriteString("\nSIMILARITY COMPARISON REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Input Query: %s\n\n", truncate(query, 100))
	fmt.Fprintf(&b, "Output Response: %s\n\n", truncate(answer, 100))
	b.WriteString("SIMILARITY METRICS:\n")
	fmt.Fprintf(&b, "• Semantic Similarity: %.3f\n", m.Semantic)
	fmt.Fprintf(&b, "• Keyword Similarity: %.3f\n", m.Keyword)
	fmt.Fprintf(&b, "• Structural Similarity: %.3f\n", m.Structural)
	fmt.Fprintf(&b, "• Content Relevance: %.3f\n\n", m.Content)
	b.WriteString("OVERALL ASSESSMENT:\n")
	fmt.Fprintf(&b, "• Overall Similarity: %.3f\n", m.Overall)
	fmt.Fprintf(&b, "• Similarity Level: %s\n\n", strings.ToUpper(string(m.Level)))
	b.WriteString("ANALYSIS:\n")

	switch m.Level {
	case LevelExcellent:
		b.WriteString("The response is highly relevant to the query with excellent semantic and keyword alignment.")
	case LevelGood:
		b.WriteString("The response is relevant to the query with good semantic and keyword alignment.")
	case LevelFair:
		b.WriteString("The response has moderate relevance to the query. Consider improving semantic alignment.")
	default:
		b.WriteString("The response has poor relevance to the query. Significant improvement needed.")
	}
	if m.Semantic < 0.5 {
		b.WriteString("\n• Consider improving semantic understanding of the query.")
	}
	if m.Keyword < 0.5 {
		b.WriteString("\n• Consider including more relevant keywords from the query.")
	}
	if m.Content < 0.3 {
		b.WriteString("\n• Consider including more domain-specific content.")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
