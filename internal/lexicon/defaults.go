package lexicon

// Default returns a fresh Lexicon populated with the built-in tables.
// Each call allocates new slices, so callers may safely hand it to tests
// that tweak a single table.
func Default() *Lexicon {
	return &Lexicon{
		Classifier:  defaultClassifier(),
		Guard:       defaultGuard(),
		Matcher:     defaultMatcher(),
		Fallback:    defaultFallback(),
		Irrelevance: defaultIrrelevance(),
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
