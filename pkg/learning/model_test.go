package learning

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

const epsilon = 1e-9

var (
	sampleSpam = []string{"buy now cheap", "free money now"}
	sampleHam  = []string{"meeting at noon", "project update now"}
)

func trainSample(t *testing.T) *Model {
	t.Helper()
	m, err := TrainDocuments(sampleSpam, sampleHam)
	if err != nil {
		t.Fatalf("TrainDocuments failed: %v", err)
	}
	return m
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"simple", "buy now", []string{"buy", "now"}},
		{"repeated", "now now now", []string{"now"}},
		{"whitespace runs", "  buy \n\n now\t", []string{"buy", "now"}},
		{"empty", "", nil},
		{"blank", " \n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.doc)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, expected %v", tt.doc, got, tt.want)
			}
			for _, token := range tt.want {
				if _, ok := got[token]; !ok {
					t.Errorf("Tokenize(%q) missing %q", tt.doc, token)
				}
			}
		})
	}
}

func TestBuildVocabulary(t *testing.T) {
	vocab := BuildVocabulary(sampleSpam, sampleHam)

	want := []string{"at", "buy", "cheap", "free", "meeting", "money", "noon", "now", "project", "update"}
	if !reflect.DeepEqual(vocab.Tokens(), want) {
		t.Errorf("Tokens() = %v, expected %v", vocab.Tokens(), want)
	}
	if vocab.Len() != 10 {
		t.Errorf("Len() = %d, expected 10", vocab.Len())
	}
	if !vocab.Contains("noon") || vocab.Contains("lunch") {
		t.Error("Contains reported wrong membership")
	}
}

func TestBuildVocabularyIgnoresEmptyDocuments(t *testing.T) {
	vocab := BuildVocabulary([]string{"", "  "}, []string{""})
	if vocab.Len() != 0 {
		t.Errorf("expected empty vocabulary, got %v", vocab.Tokens())
	}
}

func TestVocabularyMonotonic(t *testing.T) {
	small := BuildVocabulary(sampleSpam[:1], sampleHam[:1])
	large := BuildVocabulary(append(sampleSpam, "winner winner"), sampleHam)

	if large.Len() < small.Len() {
		t.Fatalf("vocabulary shrank from %d to %d", small.Len(), large.Len())
	}
	for _, token := range small.Tokens() {
		if !large.Contains(token) {
			t.Errorf("token %q lost after adding documents", token)
		}
	}
}

func TestCountPresenceUsesDocumentFrequency(t *testing.T) {
	docs := []string{"spam spam spam spam", "spam eggs", "eggs"}
	counts := CountPresence(docs)

	if got := counts.Get("spam"); got != 2 {
		t.Errorf("count(spam) = %d, expected 2", got)
	}
	if got := counts.Get("eggs"); got != 2 {
		t.Errorf("count(eggs) = %d, expected 2", got)
	}
	if got := counts.Get("ham"); got != 0 {
		t.Errorf("count(ham) = %d, expected 0", got)
	}
	if _, ok := counts[""]; ok {
		t.Error("empty token must not be counted")
	}
	for token, n := range counts {
		if n > len(docs) {
			t.Errorf("count(%s) = %d exceeds %d documents", token, n, len(docs))
		}
	}
}

func TestWordProbBounds(t *testing.T) {
	for classDocs := 0; classDocs <= 6; classDocs++ {
		for count := 0; count <= classDocs; count++ {
			counts := PresenceCounts{"x": count}
			p := WordProb(counts, "x", classDocs)
			if p <= 0 || p >= 1 {
				t.Errorf("WordProb(count=%d, docs=%d) = %v, expected within (0,1)", count, classDocs, p)
			}
		}
	}

	if p := WordProb(PresenceCounts{}, "unseen", 3); math.Abs(p-0.2) > epsilon {
		t.Errorf("unseen token probability = %v, expected 0.2", p)
	}
}

func TestTrainSample(t *testing.T) {
	m := trainSample(t)

	if m.VocabularySize() != 10 {
		t.Errorf("VocabularySize() = %d, expected 10", m.VocabularySize())
	}

	spamPrior, hamPrior := m.Priors()
	if math.Abs(spamPrior-0.5) > epsilon {
		t.Errorf("spam prior = %v, expected 0.5", spamPrior)
	}
	if math.Abs(spamPrior+hamPrior-1.0) > epsilon {
		t.Errorf("priors sum to %v, expected 1", spamPrior+hamPrior)
	}

	if got := m.SpamCount("now"); got != 2 {
		t.Errorf("SpamCount(now) = %d, expected 2", got)
	}
	if got := m.HamCount("now"); got != 1 {
		t.Errorf("HamCount(now) = %d, expected 1", got)
	}
	if got := m.WordProb(Spam, "now"); math.Abs(got-0.75) > epsilon {
		t.Errorf("WordProb(spam, now) = %v, expected 0.75", got)
	}

	spam, ham, total := m.DocumentCounts()
	if spam != 2 || ham != 2 || total != 4 {
		t.Errorf("DocumentCounts() = %d/%d/%d, expected 2/2/4", spam, ham, total)
	}
}

func TestPriorsComplement(t *testing.T) {
	m, err := TrainDocuments([]string{"a", "b", "c"}, []string{"d", "e", "f", "g", "h", "i", "j"})
	if err != nil {
		t.Fatalf("TrainDocuments failed: %v", err)
	}
	spamPrior, hamPrior := m.Priors()
	if math.Abs(spamPrior-0.3) > epsilon {
		t.Errorf("spam prior = %v, expected 0.3", spamPrior)
	}
	if math.Abs(spamPrior+hamPrior-1.0) > epsilon {
		t.Errorf("priors sum to %v, expected 1", spamPrior+hamPrior)
	}
}

func TestTrainKeepsViewsApart(t *testing.T) {
	m, err := Train(TrainingSet{
		SpamWhole: []string{"offer buy now", "offer cheap"},
		HamWhole:  []string{"agenda meeting"},
		SpamBody:  []string{"buy now", "cheap", ""},
		HamBody:   []string{"meeting"},
	})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if m.VocabularySize() != 4 {
		t.Errorf("vocabulary = %v, expected the 4 body tokens", m.Vocabulary())
	}
	if containsString(m.Vocabulary(), "offer") {
		t.Error("subject-only token must not enter the vocabulary")
	}
	if got := m.SpamCount("offer"); got != 2 {
		t.Errorf("SpamCount(offer) = %d, expected 2", got)
	}

	spam, ham, _ := m.DocumentCounts()
	if spam != 3 || ham != 1 {
		t.Errorf("document counts = %d/%d, expected body counts 3/1", spam, ham)
	}
	if spamPrior, _ := m.Priors(); math.Abs(spamPrior-0.75) > epsilon {
		t.Errorf("spam prior = %v, expected 0.75", spamPrior)
	}
}

func TestTrainRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		set  TrainingSet
	}{
		{"empty", TrainingSet{}},
		{"no spam", TrainingSet{HamWhole: []string{"a"}, HamBody: []string{"a"}}},
		{"no ham", TrainingSet{SpamWhole: []string{"a"}, SpamBody: []string{"a"}}},
		{"more spam documents than bodies", TrainingSet{
			SpamWhole: []string{"a", "b"}, SpamBody: []string{"a"},
			HamWhole: []string{"c"}, HamBody: []string{"c"},
		}},
		{"more ham documents than bodies", TrainingSet{
			SpamWhole: []string{"a"}, SpamBody: []string{"a"},
			HamWhole: []string{"c", "d"}, HamBody: []string{"c"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Train(tt.set)
			if err == nil {
				t.Fatalf("expected error, got model %+v", m)
			}
			var invalid *InvalidTrainingDataError
			if !errors.As(err, &invalid) {
				t.Errorf("expected InvalidTrainingDataError, got %T: %v", err, err)
			}
		})
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
