// Package ai provides the language-side helpers of the assistant: query
// normalization, mood classification, sentiment scoring, and the embedding
// engine contracts.
package ai

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Filler words stripped from every query before parsing.
var queryStopWords = map[string]bool{
	"a":     true,
	"the":   true,
	"movie": true,
	"film":  true,
	"find":  true,
	"show":  true,
	"watch": true,
}

// Normalize lowercases the text, extracts word tokens, drops filler words,
// and rejoins with single spaces. Empty input yields empty output.
func Normalize(text string) string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	kept := words[:0]
	for _, w := range words {
		if !queryStopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
