package risk

import (
	"math"
	"math/rand/v2"
)

const (
	numTrees = 100
	seed     = 42
)

// forest is a bagged ensemble of CART trees.
type forest struct {
	Trees []*node `json:"trees"`
}

// fitForest trains numTrees trees on bootstrap samples of x/y. Class
// weights are balanced over the full training set so both classes carry
// equal total weight.
func fitForest(x [][numFeatures]float64, y []bool) *forest {
	n := len(x)
	counts := map[bool]int{}
	for _, label := range y {
		counts[label]++
	}
	classWeight := map[bool]float64{}
	for label, count := range counts {
		classWeight[label] = float64(n) / float64(len(counts)*count)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	b := &treeBuilder{
		rng:         rng,
		maxFeatures: max(1, int(math.Sqrt(numFeatures))),
	}

	f := &forest{Trees: make([]*node, 0, numTrees)}
	for range numTrees {
		samples := make([]sample, n)
		for i := range samples {
			j := rng.IntN(n)
			samples[i] = sample{x: x[j], label: y[j], weight: classWeight[y[j]]}
		}
		f.Trees = append(f.Trees, b.build(samples, 0))
	}
	return f
}

// probability is the mean at-risk probability across trees.
func (f *forest) probability(x [numFeatures]float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.Trees))
}

// vote reports whether a strict majority of trees classify x as at risk.
func (f *forest) vote(x [numFeatures]float64) bool {
	var yes int
	for _, t := range f.Trees {
		if t.predict(x) > 0.5 {
			yes++
		}
	}
	return yes*2 > len(f.Trees)
}
