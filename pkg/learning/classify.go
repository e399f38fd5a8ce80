package learning

import "math"

// Result is the outcome of scoring one document.
type Result struct {
	Label     Label   `json:"label"`
	SpamScore float64 `json:"spam_score"`
	HamScore  float64 `json:"ham_score"`

	// MatchedFeatures is the number of vocabulary tokens present in the
	// document.
	MatchedFeatures int `json:"matched_features"`
}

// Classify scores doc against both classes in log space and labels it.
//
// Every vocabulary token contributes to both scores: ln P(token|class) when
// the document contains it and ln(1 - P(token|class)) when it does not.
// Skipping the absent tokens would turn this into a different model, so the
// cost is O(|vocabulary|) per document regardless of its length. Tokens of doc
// outside the vocabulary are ignored. Equal scores resolve to Ham.
func (m *Model) Classify(doc string) (Result, error) {
	if m == nil || m.vocab == nil || m.totalDocs == 0 {
		return Result{}, ErrEmptyModel
	}

	spamScore := math.Log(float64(m.spamDocs) / float64(m.totalDocs))
	hamScore := math.Log(float64(m.hamDocs) / float64(m.totalDocs))

	present := Tokenize(doc)
	matched := 0

	for _, token := range m.vocab.tokens {
		spamProb := WordProb(m.spamCounts, token, m.spamDocs)
		hamProb := WordProb(m.hamCounts, token, m.hamDocs)

		if _, ok := present[token]; ok {
			matched++
			spamScore += math.Log(spamProb)
			hamScore += math.Log(hamProb)
		} else {
			spamScore += math.Log(1.0 - spamProb)
			hamScore += math.Log(1.0 - hamProb)
		}
	}

	label := Ham
	if spamScore > hamScore {
		label = Spam
	}

	return Result{
		Label:           label,
		SpamScore:       spamScore,
		HamScore:        hamScore,
		MatchedFeatures: matched,
	}, nil
}
