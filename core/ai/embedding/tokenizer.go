package embedding

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Special token labels expected in a BERT-style vocab file.
const (
	padToken = "[PAD]"
	unkToken = "[UNK]"
	clsToken = "[CLS]"
	sepToken = "[SEP]"
)

// Tokenizer converts text to BERT-style token IDs via greedy WordPiece over
// a vocab.txt file. All-MiniLM exports ship such a file next to the model.
type Tokenizer struct {
	vocab     map[string]int64
	maxLength int
	padID     int64
	unkID     int64
	clsID     int64
	sepID     int64
}

// NewTokenizer loads a WordPiece vocabulary from vocabPath.
func NewTokenizer(vocabPath string, maxLength int) (*Tokenizer, error) {
	if maxLength <= 0 {
		maxLength = 256
	}

	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocab file: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		vocab[strings.TrimSpace(scanner.Text())] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	t := &Tokenizer{vocab: vocab, maxLength: maxLength}
	for _, special := range []struct {
		label string
		dst   *int64
	}{
		{padToken, &t.padID},
		{unkToken, &t.unkID},
		{clsToken, &t.clsID},
		{sepToken, &t.sepID},
	} {
		tokID, ok := vocab[special.label]
		if !ok {
			return nil, fmt.Errorf("vocab is missing special token %s", special.label)
		}
		*special.dst = tokID
	}

	return t, nil
}

var tokenizerSpace = regexp.MustCompile(`\s+`)

// Tokenize converts text to padded token IDs plus the matching attention
// mask (1 for real tokens, 0 for padding).
func (t *Tokenizer) Tokenize(text string, maxLength int) ([]int64, []int64) {
	if maxLength <= 0 {
		maxLength = t.maxLength
	}

	words := basicTokenize(tokenizerSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " "))

	ids := make([]int64, 0, maxLength)
	ids = append(ids, t.clsID)
	for _, word := range words {
		if len(ids) >= maxLength-1 { // reserve room for [SEP]
			break
		}
		for _, piece := range t.wordpiece(word) {
			if len(ids) >= maxLength-1 {
				break
			}
			ids = append(ids, piece)
		}
	}
	ids = append(ids, t.sepID)

	mask := make([]int64, maxLength)
	for i := range ids {
		mask[i] = 1
	}
	for len(ids) < maxLength {
		ids = append(ids, t.padID)
	}

	return ids, mask
}

// TokenizeBatch tokenizes a batch of texts to a uniform length.
func (t *Tokenizer) TokenizeBatch(texts []string, maxLength int) ([][]int64, [][]int64) {
	ids := make([][]int64, len(texts))
	masks := make([][]int64, len(texts))
	for i, text := range texts {
		ids[i], masks[i] = t.Tokenize(text, maxLength)
	}
	return ids, masks
}

// wordpiece performs greedy longest-match-first subword tokenization.
func (t *Tokenizer) wordpiece(word string) []int64 {
	if id, ok := t.vocab[word]; ok {
		return []int64{id}
	}

	var pieces []int64
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := len(runes)
		var match int64 = -1
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = "##" + candidate
			}
			if id, ok := t.vocab[candidate]; ok {
				match = id
				break
			}
			end--
		}
		if match < 0 {
			return []int64{t.unkID}
		}
		pieces = append(pieces, match)
		start = end
	}
	return pieces
}

// basicTokenize splits on whitespace and breaks out punctuation as its own
// token, matching BERT's basic tokenizer.
func basicTokenize(text string) []string {
	var words []string
	var current []rune
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if len(current) > 0 {
				words = append(words, string(current))
				current = current[:0]
			}
		case unicode.IsPunct(r):
			if len(current) > 0 {
				words = append(words, string(current))
				current = current[:0]
			}
			words = append(words, string(r))
		default:
			current = append(current, r)
		}
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

// VocabSize returns the vocabulary size.
func (t *Tokenizer) VocabSize() int {
	return len(t.vocab)
}

// Close releases tokenizer resources.
func (t *Tokenizer) Close() error {
	t.vocab = nil
	return nil
}
