// Package search implements the three retrieval strategies over a movie
// catalog: structured filtering, embedding-based semantic search, and
// TF-IDF similarity for recommendations.
package search

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tfidfTokenPattern = regexp.MustCompile(`\b\w+\b`)

// tfidfStopWords mirrors the usual English stop-word list used when fitting
// synopsis vectors. Query stop words live in core/ai; this set is wider
// because synopses are full prose.
var tfidfStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "she": true,
	"that": true, "the": true, "their": true, "them": true, "they": true,
	"this": true, "to": true, "was": true, "were": true, "when": true,
	"which": true, "who": true, "will": true, "with": true,
}

// TFIDFVectorizer converts documents into sparse TF-IDF vectors. The
// vocabulary and document frequencies are fixed at Fit time; Transform maps
// any text into the fitted space, dropping unseen terms.
type TFIDFVectorizer struct {
	vocabulary map[string]int
	idf        []float64
	fitted     bool
}

// NewTFIDFVectorizer creates an unfitted vectorizer.
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{vocabulary: make(map[string]int)}
}

// Fit learns the vocabulary and inverse document frequencies from the
// corpus and returns the corpus's own vectors, L2-normalized.
func (v *TFIDFVectorizer) Fit(documents []string) [][]float64 {
	tokenized := make([][]string, len(documents))
	df := make(map[string]int)
	for i, doc := range documents {
		tokenized[i] = tfidfTokenize(doc)
		seen := make(map[string]bool)
		for _, term := range tokenized[i] {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	// Deterministic vocabulary order so vectors are reproducible across runs.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(documents))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF; keeps terms present in every document from zeroing out.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.fitted = true

	vectors := make([][]float64, len(documents))
	for i, tokens := range tokenized {
		vectors[i] = v.vectorize(tokens)
	}
	return vectors
}

// Transform maps a single document into the fitted vector space. Terms not
// seen during Fit are ignored.
func (v *TFIDFVectorizer) Transform(document string) []float64 {
	if !v.fitted {
		return nil
	}
	return v.vectorize(tfidfTokenize(document))
}

// Dimension returns the size of the fitted vocabulary.
func (v *TFIDFVectorizer) Dimension() int {
	return len(v.vocabulary)
}

func (v *TFIDFVectorizer) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[int]float64)
	for _, term := range tokens {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	total := float64(len(tokens))
	var norm float64
	for idx, count := range counts {
		w := (count / total) * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for idx := range counts {
			vec[idx] *= inv
		}
	}
	return vec
}

func tfidfTokenize(text string) []string {
	raw := tfidfTokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if !tfidfStopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
