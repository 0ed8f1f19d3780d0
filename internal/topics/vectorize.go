package topics

import (
	"regexp"
	"slices"
	"strings"
)

const (
	minDocFreq = 2
	maxDocFrac = 0.9
)

// tokenPattern matches maximal runs of two or more Unicode letters, marks,
// digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// tokenize lower-cases doc and returns its tokens, stop words removed.
func tokenize(doc string) []string {
	var out []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(doc), -1) {
		if !stopWords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// corpus is a bag-of-words view of the documents over a pruned,
// alphabetically ordered vocabulary.
type corpus struct {
	vocab []string
	docs  [][]int // word ids per document, one entry per occurrence
}

// vectorize builds the corpus. It returns ErrNoVocabulary when no token
// survives stop-word removal and ErrTooSparse when document-frequency
// pruning leaves nothing.
func vectorize(docs []string) (*corpus, error) {
	tokenized := make([][]string, len(docs))
	docFreq := map[string]int{}
	for i, d := range docs {
		tokenized[i] = tokenize(d)
		seen := map[string]bool{}
		for _, tok := range tokenized[i] {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}
	if len(docFreq) == 0 {
		return nil, ErrNoVocabulary
	}

	maxDocs := maxDocFrac * float64(len(docs))
	if maxDocs < minDocFreq {
		return nil, ErrTooSparse
	}

	var vocab []string
	for tok, df := range docFreq {
		if df >= minDocFreq && float64(df) <= maxDocs {
			vocab = append(vocab, tok)
		}
	}
	if len(vocab) == 0 {
		return nil, ErrTooSparse
	}
	slices.Sort(vocab)

	ids := make(map[string]int, len(vocab))
	for i, w := range vocab {
		ids[w] = i
	}
	c := &corpus{vocab: vocab, docs: make([][]int, len(docs))}
	for i, toks := range tokenized {
		for _, tok := range toks {
			if id, ok := ids[tok]; ok {
				c.docs[i] = append(c.docs[i], id)
			}
		}
	}
	return c, nil
}
