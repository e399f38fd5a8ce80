package learning

// PresenceCounts maps a token to the number of documents of one class that
// contain it at least once (document frequency). Tokens missing from the map
// have a count of zero.
type PresenceCounts map[string]int

// CountPresence counts, for every token, how many of docs contain it.
// A token repeated inside a single document is counted once for that document,
// so no count can exceed len(docs).
func CountPresence(docs []string) PresenceCounts {
	counts := make(PresenceCounts)
	for _, doc := range docs {
		for token := range Tokenize(doc) {
			if token == "" {
				continue
			}
			counts[token]++
		}
	}
	return counts
}

// Get returns the count for token, zero when the token was never seen.
func (c PresenceCounts) Get(token string) int {
	return c[token]
}

// WordProb is the Laplace smoothed probability that a document of a class with
// classDocs training documents contains token: (count+1)/(classDocs+2).
// With count <= classDocs the result always lies strictly inside (0, 1).
func WordProb(counts PresenceCounts, token string, classDocs int) float64 {
	return (float64(counts.Get(token)) + 1.0) / (float64(classDocs) + 2.0)
}
