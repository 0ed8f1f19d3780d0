package risk

import (
	"math/rand/v2"
	"slices"
)

const maxDepth = 32

// node is a CART decision node. A node without children is a leaf.
type node struct {
	Feature   int     `json:"f,omitempty"`
	Threshold float64 `json:"t,omitempty"`
	Left      *node   `json:"l,omitempty"`
	Right     *node   `json:"r,omitempty"`
	// Prob is the weighted at-risk fraction of the training samples that
	// reached this node.
	Prob float64 `json:"p"`
}

func (n *node) leaf() bool { return n.Left == nil }

// predict walks the tree and returns the leaf probability for x.
func (n *node) predict(x [numFeatures]float64) float64 {
	for !n.leaf() {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Prob
}

type sample struct {
	x      [numFeatures]float64
	label  bool
	weight float64
}

// treeBuilder grows one fully expanded tree.
type treeBuilder struct {
	rng         *rand.Rand
	maxFeatures int
}

func (b *treeBuilder) build(samples []sample, depth int) *node {
	pos, total := weightedCounts(samples)
	n := &node{}
	if total > 0 {
		n.Prob = pos / total
	}
	if depth >= maxDepth || len(samples) < 2 || pos == 0 || pos == total {
		return n
	}

	feature, threshold, ok := b.bestSplit(samples, gini(pos, total))
	if !ok {
		return n
	}

	var left, right []sample
	for _, s := range samples {
		if s.x[feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	n.Feature = feature
	n.Threshold = threshold
	n.Left = b.build(left, depth+1)
	n.Right = b.build(right, depth+1)
	return n
}

// bestSplit evaluates maxFeatures randomly chosen features, continuing past
// that count until at least one valid split has been found.
func (b *treeBuilder) bestSplit(samples []sample, parentImpurity float64) (int, float64, bool) {
	order := b.rng.Perm(numFeatures)

	var (
		bestFeature   int
		bestThreshold float64
		bestScore     = parentImpurity + 1e-12
		found         bool
	)
	for visited, f := range order {
		if visited >= b.maxFeatures && found {
			break
		}
		threshold, score, ok := splitOn(samples, f)
		if ok && score < bestScore {
			bestFeature, bestThreshold, bestScore = f, threshold, score
			found = true
		}
	}
	return bestFeature, bestThreshold, found
}

// splitOn finds the threshold on feature f minimising the weighted Gini
// impurity of the two children.
func splitOn(samples []sample, f int) (threshold, score float64, ok bool) {
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b sample) int {
		switch {
		case a.x[f] < b.x[f]:
			return -1
		case a.x[f] > b.x[f]:
			return 1
		}
		return 0
	})

	totalPos, total := weightedCounts(sorted)
	var leftPos, leftW float64
	score = 2 // above any impurity
	for i := 0; i < len(sorted)-1; i++ {
		leftW += sorted[i].weight
		if sorted[i].label {
			leftPos += sorted[i].weight
		}
		if sorted[i].x[f] == sorted[i+1].x[f] {
			continue
		}
		rightW := total - leftW
		s := (leftW*gini(leftPos, leftW) + rightW*gini(totalPos-leftPos, rightW)) / total
		if s < score {
			score = s
			threshold = (sorted[i].x[f] + sorted[i+1].x[f]) / 2
			ok = true
		}
	}
	return threshold, score, ok
}

func weightedCounts(samples []sample) (pos, total float64) {
	for _, s := range samples {
		total += s.weight
		if s.label {
			pos += s.weight
		}
	}
	return pos, total
}

// gini is the impurity of a two-class node with pos of total weight positive.
func gini(pos, total float64) float64 {
	if total == 0 {
		return 0
	}
	p := pos / total
	return 2 * p * (1 - p)
}
