package gen

import (
	"fmt"
	"math"
)

// EditWeights sets the relative probability of each mutation edit. The
// historical tooling shipped two variants (with and without delete-promote),
// so the weighting is explicit configuration rather than a constant.
type EditWeights struct {
	Relabel       int
	InsertLeaf    int
	DeletePromote int
}

// DefaultEditWeights picks relabel twice as often as either structural edit.
var DefaultEditWeights = EditWeights{Relabel: 2, InsertLeaf: 1, DeletePromote: 1}

func (w EditWeights) total() int {
	return w.Relabel + w.InsertLeaf + w.DeletePromote
}

const (
	// DefaultSimilarity applies to flat derivation.
	DefaultSimilarity = 0.5
	// DefaultGenerationalSimilarity applies to generational derivation, which
	// compounds edits across generations and therefore mutates more gently.
	DefaultGenerationalSimilarity = 0.8
)

// Config holds every knob of a dataset generation run. The zero value is not
// usable; fill the required fields and call Validate before Generate.
type Config struct {
	// TreeCount is the total number of trees in the output dataset.
	TreeCount int
	// DistinctLabels sets the global label alphabet to 1..DistinctLabels.
	DistinctLabels int
	// ShapeModifier in (0,1) biases tree shape: >0.5 wider, <0.5 deeper.
	ShapeModifier float64
	// MinTreeSize and MaxTreeSize bound base tree sizes and the
	// post-mutation normalization target.
	MinTreeSize int
	MaxTreeSize int

	// BaseTreeCount is the number of base trees for flat derivation.
	// Zero means TreeCount/10*2.
	BaseTreeCount int
	// MaxEdits caps the total edits per derived tree. Negative or zero means
	// unbounded.
	MaxEdits int
	// Similarity in [0,1] controls how close derived trees stay to their
	// base. Negative means the policy default.
	Similarity float64
	// LabelsPerTreeMin and LabelsPerTreeMax, when both positive, give each
	// tree its own label subset of a size drawn from this range.
	LabelsPerTreeMin int
	LabelsPerTreeMax int
	// GenerationMaxNewNodes selects the generational policy when positive:
	// each generation's alphabet grows by at most this many fresh labels.
	GenerationMaxNewNodes int

	// EditWeights defaults to DefaultEditWeights when left zero.
	EditWeights EditWeights
	// Seed makes the run reproducible.
	Seed int64
	// Workers bounds the parallel builders; zero means runtime.NumCPU().
	Workers int
}

// Generational reports whether the generational derivation policy is selected.
func (c Config) Generational() bool {
	return c.GenerationMaxNewNodes > 0
}

func (c Config) baseTreeCount() int {
	if c.BaseTreeCount > 0 {
		return c.BaseTreeCount
	}
	return c.TreeCount / 10 * 2
}

func (c Config) maxEdits() int {
	if c.MaxEdits <= 0 {
		return math.MaxInt
	}
	return c.MaxEdits
}

func (c Config) similarity() float64 {
	if c.Similarity >= 0 {
		return c.Similarity
	}
	if c.Generational() {
		return DefaultGenerationalSimilarity
	}
	return DefaultSimilarity
}

func (c Config) editWeights() EditWeights {
	if c.EditWeights.total() <= 0 {
		return DefaultEditWeights
	}
	return c.EditWeights
}

// Validate fails fast on configuration errors, naming the offending
// parameter, before any tree is built.
func (c Config) Validate() error {
	if c.TreeCount <= 0 {
		return fmt.Errorf("tree count must be positive, got %d", c.TreeCount)
	}
	if c.DistinctLabels <= 0 {
		return fmt.Errorf("distinct labels must be positive, got %d", c.DistinctLabels)
	}
	if c.ShapeModifier <= 0 || c.ShapeModifier >= 1 {
		return fmt.Errorf("shape modifier must be in (0,1), got %g", c.ShapeModifier)
	}
	if c.MinTreeSize <= 0 {
		return fmt.Errorf("min tree size must be positive, got %d", c.MinTreeSize)
	}
	if c.MinTreeSize > c.MaxTreeSize {
		return fmt.Errorf("min tree size %d exceeds max tree size %d", c.MinTreeSize, c.MaxTreeSize)
	}
	if c.Similarity > 1 {
		return fmt.Errorf("similarity must be in [0,1], got %g", c.Similarity)
	}
	if !c.Generational() {
		b := c.baseTreeCount()
		if b <= 0 {
			return fmt.Errorf("base tree count must be positive, got %d (tree count %d is too small for the default)", b, c.TreeCount)
		}
		if b > c.TreeCount {
			return fmt.Errorf("base tree count %d exceeds tree count %d", b, c.TreeCount)
		}
	}
	if c.LabelsPerTreeMin > 0 || c.LabelsPerTreeMax > 0 {
		if c.LabelsPerTreeMin <= 0 || c.LabelsPerTreeMax < c.LabelsPerTreeMin {
			return fmt.Errorf("labels per tree range %d,%d is invalid", c.LabelsPerTreeMin, c.LabelsPerTreeMax)
		}
		if c.LabelsPerTreeMax > c.DistinctLabels {
			return fmt.Errorf("labels per tree max %d exceeds distinct labels %d", c.LabelsPerTreeMax, c.DistinctLabels)
		}
	}
	return nil
}

// Labels returns the global label alphabet 1..DistinctLabels.
func (c Config) Labels() []int {
	labels := make([]int, c.DistinctLabels)
	for i := range labels {
		labels[i] = i + 1
	}
	return labels
}
