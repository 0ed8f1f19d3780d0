package topics

import "math/rand/v2"

const (
	iterations = 200
	seed       = 42
)

// fitLDA runs collapsed Gibbs sampling for k topics and returns the
// topic-word weights (counts plus the prior).
func fitLDA(c *corpus, k int) [][]float64 {
	alpha := 1 / float64(k)
	beta := 1 / float64(k)
	v := len(c.vocab)
	vBeta := float64(v) * beta

	rng := rand.New(rand.NewPCG(seed, seed))

	topicWord := make([][]int, k)
	for t := range topicWord {
		topicWord[t] = make([]int, v)
	}
	topicTotal := make([]int, k)
	docTopic := make([][]int, len(c.docs))
	assign := make([][]int, len(c.docs))

	for d, words := range c.docs {
		docTopic[d] = make([]int, k)
		assign[d] = make([]int, len(words))
		for i, w := range words {
			t := rng.IntN(k)
			assign[d][i] = t
			docTopic[d][t]++
			topicWord[t][w]++
			topicTotal[t]++
		}
	}

	p := make([]float64, k)
	for range iterations {
		for d, words := range c.docs {
			for i, w := range words {
				t := assign[d][i]
				docTopic[d][t]--
				topicWord[t][w]--
				topicTotal[t]--

				var sum float64
				for j := range k {
					p[j] = (float64(docTopic[d][j]) + alpha) *
						(float64(topicWord[j][w]) + beta) /
						(float64(topicTotal[j]) + vBeta)
					sum += p[j]
				}
				u := rng.Float64() * sum
				t = k - 1
				for j := range k {
					u -= p[j]
					if u <= 0 {
						t = j
						break
					}
				}

				assign[d][i] = t
				docTopic[d][t]++
				topicWord[t][w]++
				topicTotal[t]++
			}
		}
	}

	weights := make([][]float64, k)
	for t := range weights {
		weights[t] = make([]float64, v)
		for w := range v {
			weights[t][w] = float64(topicWord[t][w]) + beta
		}
	}
	return weights
}
