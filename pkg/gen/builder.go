package gen

import (
	"fmt"
	"math/rand"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Build constructs a random ordered tree with exactly size nodes.
//
// Growth is a weighted attachment process: every node starts with weight
// 1-shape, and a node's weight is set to shape as soon as it gains a child.
// With shape > 0.5 nodes that already have children keep attracting draws and
// the tree grows wide; with shape < 0.5 fresh leaves win instead and the tree
// grows deep. Labels are drawn uniformly from labels, independently per node,
// so repeats within one tree are expected.
func Build(rng *rand.Rand, size int, shape float64, labels []int) (*tree.Node, error) {
	if size <= 0 {
		return nil, fmt.Errorf("tree size must be positive, got %d", size)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("label alphabet is empty")
	}

	root := tree.New(labels[rng.Intn(len(labels))])
	nodes := []*tree.Node{root}
	weights := []float64{1 - shape}
	total := 1 - shape

	for i := 1; i < size; i++ {
		at := weightedIndex(rng, weights, total)
		parent := nodes[at]
		total += shape - weights[at]
		weights[at] = shape

		child := tree.New(labels[rng.Intn(len(labels))])
		parent.AddChild(child)
		nodes = append(nodes, child)
		weights = append(weights, 1-shape)
		total += 1 - shape
	}
	return root, nil
}

// weightedIndex draws an index proportionally to weights. total must be the
// current sum of weights.
func weightedIndex(rng *rand.Rand, weights []float64, total float64) int {
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	// Float rounding can leave r marginally above the last boundary.
	return len(weights) - 1
}
