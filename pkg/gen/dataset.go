package gen

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Generate produces the dataset described by cfg, sorted by node count
// ascending. The policy is flat derivation unless cfg selects generational
// derivation (see Config.Generational). Any failure while building a base or
// deriving a descendant aborts the whole run: a missing tree would break the
// size and ordering guarantees of the batch.
func Generate(cfg Config) ([]*tree.Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var trees []*tree.Node
	var err error
	if cfg.Generational() {
		trees, err = generateGenerational(rng, cfg)
	} else {
		trees, err = generateFlat(rng, cfg)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(trees, func(i, j int) bool {
		return trees[i].Size() < trees[j].Size()
	})
	return trees, nil
}

// generateFlat builds cfg.BaseTreeCount independent base trees and derives
// floor((T-B)/B) descendants from each, every descendant starting from a
// fresh copy of its base. Bases and their descendant families are
// independent, so each family is produced by its own worker with its own
// seeded RNG.
func generateFlat(rng *rand.Rand, cfg Config) ([]*tree.Node, error) {
	baseCount := cfg.baseTreeCount()
	derivedPerBase := (cfg.TreeCount - baseCount) / baseCount
	labels := cfg.Labels()

	// Draw per-family seeds up front so the run is reproducible regardless
	// of worker scheduling.
	seeds := make([]int64, baseCount)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	families := make([][]*tree.Node, baseCount)
	errs := make([]error, baseCount)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < cfg.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				families[i], errs[i] = buildFamily(rand.New(rand.NewSource(seeds[i])), cfg, labels, derivedPerBase)
			}
		}()
	}
	for i := 0; i < baseCount; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	trees := make([]*tree.Node, 0, baseCount*(derivedPerBase+1))
	for i, family := range families {
		if errs[i] != nil {
			return nil, fmt.Errorf("base %d: %w", i, errs[i])
		}
		trees = append(trees, family...)
	}
	return trees, nil
}

// buildFamily builds one base tree and its derived descendants.
func buildFamily(rng *rand.Rand, cfg Config, labels []int, derived int) ([]*tree.Node, error) {
	size := cfg.MinTreeSize + rng.Intn(cfg.MaxTreeSize-cfg.MinTreeSize+1)
	base, err := Build(rng, size, cfg.ShapeModifier, treeLabels(rng, cfg, labels))
	if err != nil {
		return nil, err
	}

	family := []*tree.Node{base}
	for i := 0; i < derived; i++ {
		d, _, err := Derive(rng, base, cfg.similarity(), treeLabels(rng, cfg, labels), cfg.maxEdits(), cfg.editWeights())
		if err != nil {
			return nil, fmt.Errorf("derivation %d: %w", i, err)
		}
		family = append(family, d)
	}
	return family, nil
}

// treeLabels resolves the label alphabet for one tree: the full alphabet, or
// a random subset of a size drawn from the configured per-tree range.
func treeLabels(rng *rand.Rand, cfg Config, labels []int) []int {
	if cfg.LabelsPerTreeMin <= 0 {
		return labels
	}
	k := cfg.LabelsPerTreeMin + rng.Intn(cfg.LabelsPerTreeMax-cfg.LabelsPerTreeMin+1)
	if k >= len(labels) {
		return labels
	}
	subset := make([]int, k)
	for i, at := range rng.Perm(len(labels))[:k] {
		subset[i] = labels[at]
	}
	return subset
}

// generateGenerational grows a lineage from a single seed tree in small
// generations of at most two trees. Each new tree derives from a random
// member of the immediately preceding generation, and every generation
// extends its label alphabet by at most GenerationMaxNewNodes fresh labels
// from the global pool, so long lineages see the whole alphabet. Derived
// trees falling outside the size bounds are pruned back into range.
func generateGenerational(rng *rand.Rand, cfg Config) ([]*tree.Node, error) {
	pool := cfg.Labels()
	alphabet := pool[:initialAlphabetSize(rng, cfg)]

	size := cfg.MinTreeSize + rng.Intn(cfg.MaxTreeSize-cfg.MinTreeSize+1)
	seed, err := Build(rng, size, cfg.ShapeModifier, alphabet)
	if err != nil {
		return nil, err
	}

	population := []*tree.Node{seed}
	previous := []*tree.Node{seed}
	for len(population) < cfg.TreeCount {
		if len(alphabet) < len(pool) {
			grow := min(cfg.GenerationMaxNewNodes, len(pool)-len(alphabet))
			alphabet = pool[:len(alphabet)+grow]
		}

		generation := make([]*tree.Node, 0, nextGenerationSize(len(previous)))
		for len(generation) < cap(generation) && len(population) < cfg.TreeCount {
			parent := previous[rng.Intn(len(previous))]
			d, _, err := Derive(rng, parent, cfg.similarity(), alphabet, cfg.maxEdits(), cfg.editWeights())
			if err != nil {
				return nil, fmt.Errorf("generation %d: %w", len(generation), err)
			}
			if s := d.Size(); s < cfg.MinTreeSize || s > cfg.MaxTreeSize {
				if err := Normalize(rng, d, cfg.MinTreeSize, cfg.MaxTreeSize); err != nil {
					return nil, err
				}
			}
			generation = append(generation, d)
			population = append(population, d)
		}
		previous = generation
	}
	return population, nil
}

// nextGenerationSize doubles the cohort, capped at two trees per step.
func nextGenerationSize(previous int) int {
	return min(previous*2, 2)
}

func initialAlphabetSize(rng *rand.Rand, cfg Config) int {
	if cfg.LabelsPerTreeMin <= 0 {
		return cfg.DistinctLabels
	}
	k := cfg.LabelsPerTreeMin + rng.Intn(cfg.LabelsPerTreeMax-cfg.LabelsPerTreeMin+1)
	return min(k, cfg.DistinctLabels)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
