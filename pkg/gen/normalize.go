package gen

import (
	"fmt"
	"math/rand"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Normalize prunes root in place until its node count falls to a target drawn
// uniformly from [minSize, maxSize]. Trees already at or below the target are
// left alone. Pruning deletes randomly chosen non-root nodes and promotes
// their children to the deleted node's parent, so the tree stays connected.
//
// A drawn leaf is never spliced directly; its parent is the meaningful join
// point and becomes the deletion target instead. The one exception is a leaf
// hanging directly off the root: the root cannot be deleted, so the leaf
// itself goes, which keeps pruning star-shaped trees possible.
func Normalize(rng *rand.Rand, root *tree.Node, minSize, maxSize int) error {
	if minSize <= 0 || minSize > maxSize {
		return fmt.Errorf("invalid size range [%d,%d]", minSize, maxSize)
	}

	target := minSize + rng.Intn(maxSize-minSize+1)
	excess := root.Size() - target
	if excess <= 0 {
		return nil
	}

	candidates := root.Nodes()[1:]
	for deleted := 0; deleted < excess && len(candidates) > 0; deleted++ {
		victim := candidates[rng.Intn(len(candidates))]
		if len(victim.Children) == 0 && victim.Parent.Parent != nil {
			victim = victim.Parent
		}
		if err := victim.Parent.Splice(victim); err != nil {
			return err
		}
		candidates = remove(candidates, victim)
	}
	return nil
}

func remove(nodes []*tree.Node, victim *tree.Node) []*tree.Node {
	for i, n := range nodes {
		if n == victim {
			nodes[i] = nodes[len(nodes)-1]
			return nodes[:len(nodes)-1]
		}
	}
	return nodes
}
