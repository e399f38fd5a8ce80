package learning

import (
	"sort"
	"strings"
)

// Tokenize splits a document on runs of whitespace and returns the set of
// distinct tokens it contains. A token repeated within the document appears
// once. Empty or blank documents yield an empty set.
func Tokenize(doc string) map[string]struct{} {
	fields := strings.Fields(doc)
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

// Vocabulary is the frozen set of tokens a model scores every document
// against. Tokens are kept in sorted order so that iteration, and therefore
// floating point accumulation, is reproducible between runs.
type Vocabulary struct {
	tokens []string
	index  map[string]struct{}
}

// BuildVocabulary returns the union of the distinct tokens of every spam and
// ham document.
func BuildVocabulary(spamDocs, hamDocs []string) *Vocabulary {
	index := make(map[string]struct{})
	for _, docs := range [][]string{spamDocs, hamDocs} {
		for _, doc := range docs {
			for token := range Tokenize(doc) {
				index[token] = struct{}{}
			}
		}
	}

	tokens := make([]string, 0, len(index))
	for token := range index {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	return &Vocabulary{tokens: tokens, index: index}
}

// Len returns the number of tokens in the vocabulary.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.tokens)
}

// Contains reports whether token is part of the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	if v == nil {
		return false
	}
	_, ok := v.index[token]
	return ok
}

// Tokens returns a sorted copy of the vocabulary.
func (v *Vocabulary) Tokens() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}
