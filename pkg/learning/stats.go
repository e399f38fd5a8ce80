package learning

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// WordStats describes one vocabulary token.
type WordStats struct {
	Word       string  `json:"word"`
	SpamCount  int     `json:"spam_count"`
	HamCount   int     `json:"ham_count"`
	SpamProb   float64 `json:"spam_prob"`
	HamProb    float64 `json:"ham_prob"`
	Spamminess float64 `json:"spamminess"`
}

// GetWordStats returns statistics for token, or nil when it is not part of
// the vocabulary.
func (m *Model) GetWordStats(token string) *WordStats {
	if !m.vocab.Contains(token) {
		return nil
	}

	spamProb := WordProb(m.spamCounts, token, m.spamDocs)
	hamProb := WordProb(m.hamCounts, token, m.hamDocs)

	return &WordStats{
		Word:       token,
		SpamCount:  m.spamCounts.Get(token),
		HamCount:   m.hamCounts.Get(token),
		SpamProb:   spamProb,
		HamProb:    hamProb,
		Spamminess: spamProb / (spamProb + hamProb),
	}
}

// TopWords returns up to limit vocabulary tokens most indicative of label,
// ordered by spamminess (descending for Spam, ascending for Ham). A limit of
// zero or less returns every token.
func (m *Model) TopWords(label Label, limit int) []*WordStats {
	words := make([]*WordStats, 0, m.vocab.Len())
	for _, token := range m.vocab.tokens {
		words = append(words, m.GetWordStats(token))
	}

	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Spamminess == words[j].Spamminess {
			return words[i].Word < words[j].Word
		}
		if label == Spam {
			return words[i].Spamminess > words[j].Spamminess
		}
		return words[i].Spamminess < words[j].Spamminess
	})

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// ModelInfo summarizes a trained model.
type ModelInfo struct {
	SpamDocuments  int       `json:"spam_documents"`
	HamDocuments   int       `json:"ham_documents"`
	TotalDocuments int       `json:"total_documents"`
	SpamPrior      float64   `json:"spam_prior"`
	HamPrior       float64   `json:"ham_prior"`
	VocabularySize int       `json:"vocabulary_size"`
	SpamTokens     int       `json:"spam_tokens"`
	HamTokens      int       `json:"ham_tokens"`
	TrainedAt      time.Time `json:"trained_at"`
}

// Info returns a summary of the model.
func (m *Model) Info() *ModelInfo {
	return &ModelInfo{
		SpamDocuments:  m.spamDocs,
		HamDocuments:   m.hamDocs,
		TotalDocuments: m.totalDocs,
		SpamPrior:      m.spamPrior,
		HamPrior:       m.hamPrior,
		VocabularySize: m.vocab.Len(),
		SpamTokens:     len(m.spamCounts),
		HamTokens:      len(m.hamCounts),
		TrainedAt:      m.trainedAt,
	}
}

// PrintStats writes a human readable model summary to w, including the top
// limit tokens of each class.
func (m *Model) PrintStats(w io.Writer, limit int) {
	info := m.Info()

	fmt.Fprintf(w, "🧠 Naive Bayes Model\n")
	fmt.Fprintf(w, "════════════════════════════════════════\n")
	fmt.Fprintf(w, "Training Data:\n")
	fmt.Fprintf(w, "  Spam emails: %d\n", info.SpamDocuments)
	fmt.Fprintf(w, "  Ham emails: %d\n", info.HamDocuments)
	fmt.Fprintf(w, "  Spam prior: %.4f\n", info.SpamPrior)
	fmt.Fprintf(w, "  Ham prior: %.4f\n", info.HamPrior)
	fmt.Fprintf(w, "  Vocabulary size: %d\n", info.VocabularySize)
	fmt.Fprintf(w, "  Distinct spam words: %d\n", info.SpamTokens)
	fmt.Fprintf(w, "  Distinct ham words: %d\n", info.HamTokens)
	if !info.TrainedAt.IsZero() {
		fmt.Fprintf(w, "  Trained: %s\n", info.TrainedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(w, "\n📈 Top Spam Words:\n")
	for i, word := range m.TopWords(Spam, limit) {
		fmt.Fprintf(w, "  %2d. %-15s (%.3f spamminess, %d/%d)\n",
			i+1, word.Word, word.Spamminess, word.SpamCount, word.HamCount)
	}

	fmt.Fprintf(w, "\n📉 Top Ham Words:\n")
	for i, word := range m.TopWords(Ham, limit) {
		fmt.Fprintf(w, "  %2d. %-15s (%.3f spamminess, %d/%d)\n",
			i+1, word.Word, word.Spamminess, word.SpamCount, word.HamCount)
	}

	fmt.Fprintf(w, "\n")
}
