// Package learning implements a Bernoulli naive Bayes spam classifier.
//
// A Model is built once by Train and is read-only afterwards, so a single
// model can be shared by any number of goroutines calling Classify.
package learning

import (
	"log/slog"
	"time"
)

// Label is a classification verdict.
type Label string

const (
	Spam Label = "spam"
	Ham  Label = "ham"
)

// TrainingSet holds the two views of each training corpus.
//
// The body-only views decide the vocabulary, the class priors and the
// smoothing denominators. The whole-document views (subject and body) decide
// the per-class presence counts. Each whole-document view must not hold more
// documents than the body-only view of the same class.
type TrainingSet struct {
	SpamWhole []string
	HamWhole  []string
	SpamBody  []string
	HamBody   []string
}

// Model is a trained classifier. The zero value is not usable; obtain one
// from Train or TrainDocuments.
type Model struct {
	vocab *Vocabulary

	spamCounts PresenceCounts
	hamCounts  PresenceCounts

	spamDocs  int
	hamDocs   int
	totalDocs int

	spamPrior float64
	hamPrior  float64

	trainedAt time.Time
}

// Train builds a model from set in a single pass.
func Train(set TrainingSet) (*Model, error) {
	spamDocs, hamDocs := len(set.SpamBody), len(set.HamBody)

	switch {
	case spamDocs+hamDocs == 0:
		return nil, invalidTrainingData("no training documents")
	case spamDocs == 0:
		return nil, invalidTrainingData("no spam training documents")
	case hamDocs == 0:
		return nil, invalidTrainingData("no ham training documents")
	case len(set.SpamWhole) > spamDocs:
		return nil, invalidTrainingData("%d spam documents but only %d spam bodies", len(set.SpamWhole), spamDocs)
	case len(set.HamWhole) > hamDocs:
		return nil, invalidTrainingData("%d ham documents but only %d ham bodies", len(set.HamWhole), hamDocs)
	}

	total := spamDocs + hamDocs
	spamPrior := float64(spamDocs) / float64(total)

	m := &Model{
		vocab:      BuildVocabulary(set.SpamBody, set.HamBody),
		spamCounts: CountPresence(set.SpamWhole),
		hamCounts:  CountPresence(set.HamWhole),
		spamDocs:   spamDocs,
		hamDocs:    hamDocs,
		totalDocs:  total,
		spamPrior:  spamPrior,
		hamPrior:   1 - spamPrior,
		trainedAt:  time.Now(),
	}

	slog.Debug("model trained",
		"spam_docs", spamDocs,
		"ham_docs", hamDocs,
		"vocabulary", m.vocab.Len(),
		"spam_tokens", len(m.spamCounts),
		"ham_tokens", len(m.hamCounts))

	return m, nil
}

// TrainDocuments trains on a single view of each corpus, using the same
// documents for vocabulary, priors and counts.
func TrainDocuments(spamDocs, hamDocs []string) (*Model, error) {
	return Train(TrainingSet{
		SpamWhole: spamDocs,
		HamWhole:  hamDocs,
		SpamBody:  spamDocs,
		HamBody:   hamDocs,
	})
}

// Vocabulary returns the sorted vocabulary.
func (m *Model) Vocabulary() []string { return m.vocab.Tokens() }

// VocabularySize returns the number of features every document is scored on.
func (m *Model) VocabularySize() int { return m.vocab.Len() }

// Priors returns P(spam) and P(ham). They always sum to one.
func (m *Model) Priors() (spam, ham float64) { return m.spamPrior, m.hamPrior }

// DocumentCounts returns the number of spam, ham and total training documents.
func (m *Model) DocumentCounts() (spam, ham, total int) {
	return m.spamDocs, m.hamDocs, m.totalDocs
}

// SpamCount returns the number of spam documents containing token.
func (m *Model) SpamCount(token string) int { return m.spamCounts.Get(token) }

// HamCount returns the number of ham documents containing token.
func (m *Model) HamCount(token string) int { return m.hamCounts.Get(token) }

// WordProb returns the smoothed probability that a document of class label
// contains token.
func (m *Model) WordProb(label Label, token string) float64 {
	if label == Spam {
		return WordProb(m.spamCounts, token, m.spamDocs)
	}
	return WordProb(m.hamCounts, token, m.hamDocs)
}

// TrainedAt returns when the model was built.
func (m *Model) TrainedAt() time.Time { return m.trainedAt }
