package queries

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const dataset = `{1{2}{3}{4}}
{1{2{3}{4}{5}}{6}}
{1{2}}
`

func Test_Dissimilarity(t *testing.T) {
	result, err := Dissimilarity(strings.NewReader(dataset))
	require.NoError(t, err)
	require.Len(t, result, 3)

	// thresholds are half the node counts: 4/2, 6/2, 2/2
	require.Equal(t, 2, result[0].Threshold)
	require.Equal(t, 3, result[1].Threshold)
	require.Equal(t, 1, result[2].Threshold)
	require.Equal(t, "{1{2}{3}{4}}", result[0].Tree)
}

func Test_WriteCSV(t *testing.T) {
	var b strings.Builder
	err := WriteCSV(&b, []Query{
		{Threshold: 2, Tree: "{1{2}}"},
		{Threshold: 5, Tree: "{3}"},
	})
	require.NoError(t, err)
	require.Equal(t, "2;{1{2}}\n5;{3}\n", b.String())
}

func Test_Sample_PicksQueriesWithinResultBounds(t *testing.T) {
	// tree 0 has two close neighbors, tree 1 has one, tree 2 has none
	distances := `0,1,1
0,2,2
1,2,8
`
	rng := rand.New(rand.NewSource(3))
	result, err := Sample(rng, strings.NewReader(distances), strings.NewReader(dataset), SampleOptions{
		MinThreshold: 1,
		MaxThreshold: 2,
		MinResults:   2,
		MaxResults:   10,
		MaxQueries:   5,
	})
	require.NoError(t, err)

	// only tree 0 reaches two results under threshold 2, and 2 < 4/2 fails,
	// so nothing qualifies at k=2; at k=1 it has a single result
	require.Empty(t, result)
}

func Test_Sample_SelectsSignificantTree(t *testing.T) {
	distances := `0,1,1
0,2,1
`
	rng := rand.New(rand.NewSource(3))
	result, err := Sample(rng, strings.NewReader(distances), strings.NewReader(dataset), SampleOptions{
		MinThreshold: 1,
		MaxThreshold: 1,
		MinResults:   2,
		MaxResults:   10,
		MaxQueries:   5,
	})
	require.NoError(t, err)

	// tree 0 (size 4) has two results under k=1 and 1 < 4/2
	require.Len(t, result, 1)
	require.Equal(t, 1, result[0].Threshold)
	require.Equal(t, "{1{2}{3}{4}}", result[0].Tree)
}

func Test_Sample_UsesTreeOnlyOnce(t *testing.T) {
	distances := `0,1,1
0,2,1
`
	rng := rand.New(rand.NewSource(3))
	result, err := Sample(rng, strings.NewReader(distances), strings.NewReader(dataset), SampleOptions{
		MinThreshold: 1,
		MaxThreshold: 3,
		MinResults:   1,
		MaxResults:   10,
		MaxQueries:   10,
	})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, q := range result {
		require.False(t, seen[q.Tree], "tree sampled twice")
		seen[q.Tree] = true
	}
}

func Test_Sample_RejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Sample(rng, strings.NewReader("0,9,1\n"), strings.NewReader(dataset), SampleOptions{MinThreshold: 1, MaxThreshold: 2})
	require.Error(t, err, "tree id out of range")

	_, err = Sample(rng, strings.NewReader("0,1\n"), strings.NewReader(dataset), SampleOptions{MinThreshold: 1, MaxThreshold: 2})
	require.Error(t, err, "wrong column count")

	_, err = Sample(rng, strings.NewReader(""), strings.NewReader(dataset), SampleOptions{MinThreshold: 5, MaxThreshold: 1})
	require.Error(t, err, "inverted thresholds")
}
