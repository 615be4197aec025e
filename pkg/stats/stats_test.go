package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `{1}
{1{2}{3}}
{1{2{3}{4}}{5}}
`

func Test_Read(t *testing.T) {
	trees, err := Read(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, trees, 3)
	require.Equal(t, 1, trees[0].Size())
	require.Equal(t, 3, trees[1].Size())
	require.Equal(t, 5, trees[2].Size())
}

func Test_Read_SkipsBlankLines(t *testing.T) {
	trees, err := Read(strings.NewReader("{1}\n\n{2}\n"))
	require.NoError(t, err)
	require.Len(t, trees, 2)
}

func Test_Read_ReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("{1}\n{oops}\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func Test_Summarize(t *testing.T) {
	trees, err := Read(strings.NewReader(fixture))
	require.NoError(t, err)

	summary, err := Summarize(trees)
	require.NoError(t, err)

	require.Equal(t, 3, summary.Count)
	require.Equal(t, 1, summary.MinSize)
	require.Equal(t, 5, summary.MaxSize)
	require.InDelta(t, 3.0, summary.MeanSize, 1e-9)
	// root degrees are 0, 2 and 2
	require.InDelta(t, 4.0/3.0, summary.MeanRootDegree, 1e-9)
	require.Greater(t, summary.StdDev, 0.0)
}

func Test_Summarize_EmptyDataset(t *testing.T) {
	_, err := Summarize(nil)
	require.Error(t, err)
}
