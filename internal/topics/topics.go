// Package topics finds recurring themes in teacher remarks with latent
// Dirichlet allocation.
package topics

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultCount is the number of topics extracted when none is given.
	DefaultCount = 3
	// MaxCount bounds the topic count; LDA state grows with topics × vocabulary.
	MaxCount = 20
)

const wordsPerTopic = 5

var (
	ErrNoText       = errors.New("Not enough text data to generate topics.")
	ErrTooSparse    = errors.New("Text is too sparse to find topics. Need more unique words.")
	ErrNoVocabulary = errors.New("No relevant vocabulary found after filtering stop words.")

	ErrCount = fmt.Errorf("topic count must be between 1 and %d", MaxCount)
)

// CheckCount reports ErrCount when n is outside 1..MaxCount.
func CheckCount(n int) error {
	if n < 1 || n > MaxCount {
		return ErrCount
	}
	return nil
}

// Topic is one extracted theme.
type Topic struct {
	Index int      `json:"index"` // 1-based
	Words []string `json:"words"`
}

func (t Topic) String() string {
	return fmt.Sprintf("Topic %d: %s", t.Index, strings.Join(t.Words, ", "))
}

// Analyze extracts n topics from docs. A non-positive n means DefaultCount
// and n above MaxCount is clamped. The returned errors are ErrNoText,
// ErrNoVocabulary or ErrTooSparse.
func Analyze(docs []string, n int) ([]Topic, error) {
	if n < 1 {
		n = DefaultCount
	}
	n = min(n, MaxCount)
	if allBlank(docs) {
		return nil, ErrNoText
	}

	c, err := vectorize(docs)
	if err != nil {
		return nil, err
	}

	weights := fitLDA(c, n)
	out := make([]Topic, n)
	for t, row := range weights {
		ids := make([]int, len(row))
		for i := range ids {
			ids[i] = i
		}
		slices.SortStableFunc(ids, func(a, b int) int { return cmp.Compare(row[b], row[a]) })

		top := min(wordsPerTopic, len(ids))
		words := make([]string, top)
		for i := range top {
			words[i] = c.vocab[ids[i]]
		}
		out[t] = Topic{Index: t + 1, Words: words}
	}
	return out, nil
}

// Extract returns one "Topic i: w1, ..." line per topic, or a single line
// explaining why no topics could be found.
func Extract(docs []string, n int) []string {
	found, err := Analyze(docs, n)
	if err != nil {
		return []string{err.Error()}
	}
	lines := make([]string, len(found))
	for i, t := range found {
		lines[i] = t.String()
	}
	return lines
}

func allBlank(docs []string) bool {
	for _, d := range docs {
		if strings.TrimSpace(d) != "" {
			return false
		}
	}
	return true
}
