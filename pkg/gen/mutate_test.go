package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LukMRVC/treegen/pkg/tree"
)

func buildBase(t *testing.T, size int) *tree.Node {
	t.Helper()
	base, err := Build(rand.New(rand.NewSource(11)), size, 0.5, []int{1, 2, 3})
	require.NoError(t, err)
	return base
}

func Test_Derive_FullSimilarityIsIdentity(t *testing.T) {
	base := buildBase(t, 40)
	rng := rand.New(rand.NewSource(2))

	derived, edits, err := Derive(rng, base, 1.0, []int{1, 2, 3}, 1000, DefaultEditWeights)
	require.NoError(t, err)
	require.Equal(t, 0, edits)
	require.True(t, base.Equal(derived))
}

func Test_Derive_DoesNotTouchBase(t *testing.T) {
	base := buildBase(t, 40)
	before := tree.Serialize(base)

	_, _, err := Derive(rand.New(rand.NewSource(5)), base, 0.0, []int{1, 2, 3}, 1000, DefaultEditWeights)
	require.NoError(t, err)
	require.Equal(t, before, tree.Serialize(base))
}

func Test_Derive_RespectsEditBudget(t *testing.T) {
	base := buildBase(t, 40)

	for _, budget := range []int{0, 1, 5, 20} {
		derived, edits, err := Derive(rand.New(rand.NewSource(9)), base, 0.0, []int{1, 2, 3}, budget, DefaultEditWeights)
		require.NoError(t, err)
		require.LessOrEqual(t, edits, budget)
		require.NoError(t, derived.Validate())
		if budget > 0 {
			require.Greater(t, edits, 0, "zero similarity must edit")
		}
	}
}

func Test_Derive_ZeroBudgetIsIdentity(t *testing.T) {
	base := buildBase(t, 20)

	derived, edits, err := Derive(rand.New(rand.NewSource(4)), base, 0.0, []int{1, 2, 3}, 0, DefaultEditWeights)
	require.NoError(t, err)
	require.Equal(t, 0, edits)
	require.True(t, base.Equal(derived))
}

func Test_Derive_RelabelOnlyKeepsShape(t *testing.T) {
	base := buildBase(t, 30)
	weights := EditWeights{Relabel: 1}

	derived, edits, err := Derive(rand.New(rand.NewSource(6)), base, 0.0, []int{7, 8, 9}, 1000, weights)
	require.NoError(t, err)
	require.Greater(t, edits, 0)
	require.Equal(t, base.Size(), derived.Size())
	require.NoError(t, derived.Validate())
}

func Test_Derive_InsertOnlyGrows(t *testing.T) {
	base := buildBase(t, 10)
	weights := EditWeights{InsertLeaf: 1}

	derived, edits, err := Derive(rand.New(rand.NewSource(6)), base, 0.0, []int{1}, 5, weights)
	require.NoError(t, err)
	require.Equal(t, 5, edits)
	require.Equal(t, base.Size()+5, derived.Size())
}

func Test_Derive_DeleteOnSingleNodeConsumesBudget(t *testing.T) {
	base := tree.New(1)
	weights := EditWeights{DeletePromote: 1}

	derived, edits, err := Derive(rand.New(rand.NewSource(1)), base, 0.0, []int{1}, 10, weights)
	require.NoError(t, err)
	require.Greater(t, edits, 0, "a drawn delete counts even when nothing can be removed")
	require.Equal(t, 1, derived.Size())
}

func Test_Derive_ZeroSimilarityExhaustsSmallBudget(t *testing.T) {
	// With similarity 0 every node triggers at least one edit, so a budget of
	// one is always spent, even on a childless root where a drawn delete has
	// no structural effect.
	for seed := int64(0); seed < 200; seed++ {
		_, edits, err := Derive(rand.New(rand.NewSource(seed)), tree.New(1), 0.0, []int{1, 2}, 1, DefaultEditWeights)
		require.NoError(t, err)
		require.Equal(t, 1, edits, "seed %d", seed)
	}
}

func Test_Derive_ZeroSimilarityExhaustsBudgetOnLargeTree(t *testing.T) {
	base := buildBase(t, 40)

	for seed := int64(0); seed < 20; seed++ {
		_, edits, err := Derive(rand.New(rand.NewSource(seed)), base, 0.0, []int{1, 2, 3}, 15, DefaultEditWeights)
		require.NoError(t, err)
		require.Equal(t, 15, edits, "seed %d", seed)
	}
}

func Test_Derive_InvalidArguments(t *testing.T) {
	base := tree.New(1)
	rng := rand.New(rand.NewSource(1))

	_, _, err := Derive(rng, base, -0.1, []int{1}, 1, DefaultEditWeights)
	require.Error(t, err)

	_, _, err = Derive(rng, base, 1.1, []int{1}, 1, DefaultEditWeights)
	require.Error(t, err)

	_, _, err = Derive(rng, base, 0.5, nil, 1, DefaultEditWeights)
	require.Error(t, err)

	_, _, err = Derive(rng, base, 0.5, []int{1}, -1, DefaultEditWeights)
	require.Error(t, err)

	_, _, err = Derive(rng, base, 0.5, []int{1}, 1, EditWeights{})
	require.Error(t, err)
}
