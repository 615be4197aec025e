// Package stats summarizes bracket-notation tree datasets: size
// distribution and branching shape, the numbers used to pick benchmark
// workloads.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Summary describes the size distribution of a dataset.
type Summary struct {
	Count          int     `json:"count"`
	MinSize        int     `json:"min_size"`
	MaxSize        int     `json:"max_size"`
	MeanSize       float64 `json:"mean_size"`
	StdDev         float64 `json:"std_dev"`
	Median         float64 `json:"median"`
	Q1             float64 `json:"q1"`
	Q3             float64 `json:"q3"`
	MeanRootDegree float64 `json:"mean_root_degree"`
}

// Summarize computes the size and shape summary of a dataset.
func Summarize(trees []*tree.Node) (Summary, error) {
	if len(trees) == 0 {
		return Summary{}, fmt.Errorf("empty dataset")
	}

	sizes := make([]float64, len(trees))
	degrees := make([]float64, len(trees))
	for i, t := range trees {
		sizes[i] = float64(t.Size())
		degrees[i] = float64(len(t.Children))
	}
	sort.Float64s(sizes)

	s := Summary{
		Count:          len(trees),
		MinSize:        int(sizes[0]),
		MaxSize:        int(sizes[len(sizes)-1]),
		MeanSize:       stat.Mean(sizes, nil),
		Median:         stat.Quantile(0.5, stat.Empirical, sizes, nil),
		Q1:             stat.Quantile(0.25, stat.Empirical, sizes, nil),
		Q3:             stat.Quantile(0.75, stat.Empirical, sizes, nil),
		MeanRootDegree: stat.Mean(degrees, nil),
	}
	if len(sizes) > 1 {
		s.StdDev = stat.StdDev(sizes, nil)
	}
	return s, nil
}

// Read parses a bracket dataset, one tree per line. Blank lines are skipped.
func Read(r io.Reader) ([]*tree.Node, error) {
	var trees []*tree.Node
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) == 0 {
			continue
		}
		t, err := tree.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trees = append(trees, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trees, nil
}
