// Package queries selects query samples from bracket tree datasets for
// similarity benchmarks. A query is a distance threshold paired with a tree;
// downstream engines run the tree against the dataset and expect the number
// of matches under the threshold to be neither trivial nor overwhelming.
package queries

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Query is one benchmark query: a serialized tree and its distance threshold.
type Query struct {
	Threshold int
	Tree      string
}

// Dissimilarity derives one query per dataset tree with the threshold set to
// half the tree's size, producing queries most of the dataset will not match.
func Dissimilarity(r io.Reader) ([]Query, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	queries := make([]Query, len(lines))
	for i, line := range lines {
		queries[i] = Query{Threshold: tree.CountNodes(line) / 2, Tree: line}
	}
	return queries, nil
}

// WriteCSV writes queries as "threshold;tree" lines, the format the
// benchmark harness consumes.
func WriteCSV(w io.Writer, queries []Query) error {
	bw := bufio.NewWriter(w)
	for _, q := range queries {
		if _, err := fmt.Fprintf(bw, "%d;%s\n", q.Threshold, q.Tree); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SampleOptions tunes query sample selection.
type SampleOptions struct {
	// MinThreshold and MaxThreshold bound the candidate thresholds.
	MinThreshold int
	MaxThreshold int
	// MinResults and MaxResults bound how many dataset trees a query may
	// match. Zero values default to 0.5% and 3% of the dataset size.
	MinResults int
	MaxResults int
	// MaxQueries caps the sample size; zero means 200.
	MaxQueries int
	// SignificanceDivisor rejects a threshold k for a tree of size s unless
	// k < s/divisor, so thresholds stay meaningful relative to the tree.
	// Zero means 2.
	SignificanceDivisor int
}

func (o SampleOptions) withDefaults(datasetSize int) SampleOptions {
	onePercent := datasetSize / 100
	if o.MinResults == 0 {
		o.MinResults = onePercent / 2
	}
	if o.MaxResults == 0 {
		o.MaxResults = onePercent * 3
	}
	if o.MaxQueries == 0 {
		o.MaxQueries = 200
	}
	if o.SignificanceDivisor == 0 {
		o.SignificanceDivisor = 2
	}
	return o
}

type distanceRecord struct {
	from, to, dist int
}

// Sample picks up to MaxQueries queries from a dataset using a precomputed
// pairwise distance file (CSV rows "t1,t2,dist", tree ids are line indexes
// into the dataset). For each threshold k in ascending order, trees whose
// neighborhood under k has an acceptable result count are drawn in random
// order; a tree is used at most once across all thresholds.
func Sample(rng *rand.Rand, distances io.Reader, dataset io.Reader, opts SampleOptions) ([]Query, error) {
	lines, err := readLines(dataset)
	if err != nil {
		return nil, err
	}
	records, err := readDistances(distances, len(lines))
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults(len(lines))
	if opts.MinThreshold > opts.MaxThreshold {
		return nil, fmt.Errorf("min threshold %d exceeds max threshold %d", opts.MinThreshold, opts.MaxThreshold)
	}

	sizes := make([]int, len(lines))
	for i, line := range lines {
		sizes[i] = tree.CountNodes(line)
	}

	var queries []Query
	used := make(map[int]bool)
	for k := opts.MinThreshold; k <= opts.MaxThreshold && len(queries) < opts.MaxQueries; k++ {
		counts := make(map[int]int)
		for _, rec := range records {
			if rec.dist <= k {
				counts[rec.from]++
				counts[rec.to]++
			}
		}

		candidates := make([]int, 0, len(counts))
		for tid, cnt := range counts {
			if cnt >= opts.MinResults && cnt < opts.MaxResults {
				candidates = append(candidates, tid)
			}
		}
		for _, at := range rng.Perm(len(candidates)) {
			tid := candidates[at]
			if used[tid] || k >= sizes[tid]/opts.SignificanceDivisor {
				continue
			}
			used[tid] = true
			queries = append(queries, Query{Threshold: k, Tree: lines[tid]})
			if len(queries) >= opts.MaxQueries {
				break
			}
		}
	}
	return queries, nil
}

func readDistances(r io.Reader, datasetSize int) ([]distanceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.ReuseRecord = true

	var records []distanceRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("distances: %w", err)
		}
		var rec distanceRecord
		for i, dst := range []*int{&rec.from, &rec.to, &rec.dist} {
			v, err := strconv.Atoi(row[i])
			if err != nil {
				return nil, fmt.Errorf("distances: column %d: %w", i+1, err)
			}
			*dst = v
		}
		if rec.from < 0 || rec.from >= datasetSize || rec.to < 0 || rec.to >= datasetSize {
			return nil, fmt.Errorf("distances: tree id out of range in %d,%d for dataset of %d trees", rec.from, rec.to, datasetSize)
		}
		if rec.from != rec.to {
			records = append(records, rec)
		}
	}
	return records, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		if text := scanner.Text(); len(text) > 0 {
			lines = append(lines, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
