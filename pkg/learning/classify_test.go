package learning

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestClassifySpam(t *testing.T) {
	m := trainSample(t)

	res, err := m.Classify("buy cheap now")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != Spam {
		t.Errorf("label = %s, expected spam", res.Label)
	}
	if res.SpamScore <= res.HamScore {
		t.Errorf("spam score %.3f not above ham score %.3f", res.SpamScore, res.HamScore)
	}
	if res.MatchedFeatures != 3 {
		t.Errorf("matched features = %d, expected 3", res.MatchedFeatures)
	}

	// 5 tokens at 1/2 and 6 tokens at 3/4, prior included.
	wantSpam := 5*math.Log(0.5) + 6*math.Log(0.75)
	wantHam := 11*math.Log(0.5) + 2*math.Log(0.75)
	if math.Abs(res.SpamScore-wantSpam) > epsilon {
		t.Errorf("spam score = %v, expected %v", res.SpamScore, wantSpam)
	}
	if math.Abs(res.HamScore-wantHam) > epsilon {
		t.Errorf("ham score = %v, expected %v", res.HamScore, wantHam)
	}
}

func TestClassifyHam(t *testing.T) {
	m := trainSample(t)

	res, err := m.Classify("project meeting at noon")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != Ham {
		t.Errorf("label = %s, expected ham", res.Label)
	}
}

func TestClassifyEmptyDocumentUsesAbsenceEvidence(t *testing.T) {
	m := trainSample(t)

	res, err := m.Classify("")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.MatchedFeatures != 0 {
		t.Errorf("matched features = %d, expected 0", res.MatchedFeatures)
	}

	wantSpam := 7*math.Log(0.5) + 5*math.Log(0.75)
	wantHam := 7*math.Log(0.5) + 4*math.Log(0.75)
	if math.Abs(res.SpamScore-wantSpam) > epsilon {
		t.Errorf("spam score = %v, expected %v", res.SpamScore, wantSpam)
	}
	if math.Abs(res.HamScore-wantHam) > epsilon {
		t.Errorf("ham score = %v, expected %v", res.HamScore, wantHam)
	}
	if res.Label != Ham {
		t.Errorf("label = %s, expected ham", res.Label)
	}
}

func TestClassifyIgnoresUnknownTokens(t *testing.T) {
	m := trainSample(t)

	plain, err := m.Classify("buy cheap now")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	noisy, err := m.Classify("buy cheap now zebra unicorn")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if plain != noisy {
		t.Errorf("out-of-vocabulary tokens changed the result: %+v vs %+v", plain, noisy)
	}
}

func TestClassifyRepeatedTokensCountOnce(t *testing.T) {
	m := trainSample(t)

	once, _ := m.Classify("free money")
	many, _ := m.Classify("free free free money money")
	if once != many {
		t.Errorf("repetition changed the result: %+v vs %+v", once, many)
	}
}

func TestClassifyTieResolvesToHam(t *testing.T) {
	m, err := TrainDocuments([]string{"same words"}, []string{"same words"})
	if err != nil {
		t.Fatalf("TrainDocuments failed: %v", err)
	}

	for _, doc := range []string{"", "same", "same words", "other"} {
		res, err := m.Classify(doc)
		if err != nil {
			t.Fatalf("Classify(%q) failed: %v", doc, err)
		}
		if res.SpamScore != res.HamScore {
			t.Fatalf("Classify(%q) scores differ: %v vs %v", doc, res.SpamScore, res.HamScore)
		}
		if res.Label != Ham {
			t.Errorf("Classify(%q) = %s, expected ham on a tie", doc, res.Label)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := trainSample(t)
	second := trainSample(t)

	for _, doc := range []string{"buy cheap now", "meeting update", "", "now"} {
		a, _ := first.Classify(doc)
		b, _ := first.Classify(doc)
		c, _ := second.Classify(doc)
		if a != b || a != c {
			t.Errorf("Classify(%q) not deterministic: %+v, %+v, %+v", doc, a, b, c)
		}
	}
}

func TestClassifyUntrainedModel(t *testing.T) {
	var nilModel *Model
	if _, err := nilModel.Classify("buy"); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("nil model error = %v, expected ErrEmptyModel", err)
	}
	if _, err := (&Model{}).Classify("buy"); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("zero model error = %v, expected ErrEmptyModel", err)
	}
}

func TestTopWords(t *testing.T) {
	m := trainSample(t)

	spam := m.TopWords(Spam, 3)
	if len(spam) != 3 {
		t.Fatalf("expected 3 spam words, got %d", len(spam))
	}
	// buy, cheap, free and money share the top spamminess; ties sort by word.
	if spam[0].Word != "buy" || spam[1].Word != "cheap" || spam[2].Word != "free" {
		t.Errorf("unexpected top spam words: %s %s %s", spam[0].Word, spam[1].Word, spam[2].Word)
	}

	ham := m.TopWords(Ham, 0)
	if len(ham) != m.VocabularySize() {
		t.Errorf("limit 0 returned %d words, expected %d", len(ham), m.VocabularySize())
	}
	if ham[0].Spamminess > ham[len(ham)-1].Spamminess {
		t.Error("ham words not sorted by ascending spamminess")
	}

	if m.GetWordStats("zebra") != nil {
		t.Error("expected nil stats for unknown word")
	}
}
