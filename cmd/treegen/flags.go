package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/LukMRVC/treegen/pkg/gen"
)

func getGenerateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "tree-count",
			Aliases:  []string{"T"},
			Usage:    "Tree count in resulting dataset",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "distinct-labels",
			Aliases:  []string{"D"},
			Usage:    "Number of distinct labels in the collection",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     "shape-modifier",
			Aliases:  []string{"S"},
			Usage:    "Tree shape in (0,1): >0.5 for more width, <0.5 for more depth",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "min-max-tree-size",
			Aliases:  []string{"M"},
			Usage:    "Min and max tree size, delimited by comma, e.g. 10,50",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "base-tree-count",
			Usage: "Number of base trees for flat derivation (default: tree-count/10*2)",
		},
		&cli.IntFlag{
			Name:  "max-edits",
			Usage: "Cap on mutation edits per derived tree (default: unbounded)",
		},
		&cli.Float64Flag{
			Name:  "similarity",
			Value: -1,
			Usage: "Structural similarity of derived trees in [0,1] (default: 0.5 flat, 0.8 generational)",
		},
		&cli.StringFlag{
			Name:  "distinct-labels-per-tree",
			Usage: "Per-tree label subset size range, delimited by comma, e.g. 3,8",
		},
		&cli.IntFlag{
			Name:  "generation-max-new-nodes",
			Usage: "Labels added to the alphabet per generation; selects generational derivation",
		},
		&cli.StringFlag{
			Name:  "edit-weights",
			Value: "2,1,1",
			Usage: "Relative weights of relabel, insert-leaf and delete-promote edits",
		},
		getSeedFlag(),
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Parallel tree builders (default: number of CPUs)",
		},
		getOutputFlag(),
	}
}

func getSeedFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "seed",
		Usage: "Random seed for reproducible runs (default: current time)",
	}
}

func getOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file (default: stdout)",
	}
}

type generateParameters struct {
	config gen.Config
	output string
}

func getAndValidateGenerateParams(cmd *cli.Command) (generateParameters, error) {
	params := generateParameters{output: cmd.String("output")}

	minSize, maxSize, err := parseIntPair(cmd.String("min-max-tree-size"))
	if err != nil {
		return params, fmt.Errorf("min-max-tree-size: %w", err)
	}

	weights, err := parseEditWeights(cmd.String("edit-weights"))
	if err != nil {
		return params, fmt.Errorf("edit-weights: %w", err)
	}

	params.config = gen.Config{
		TreeCount:             int(cmd.Int("tree-count")),
		DistinctLabels:        int(cmd.Int("distinct-labels")),
		ShapeModifier:         cmd.Float64("shape-modifier"),
		MinTreeSize:           minSize,
		MaxTreeSize:           maxSize,
		BaseTreeCount:         int(cmd.Int("base-tree-count")),
		MaxEdits:              int(cmd.Int("max-edits")),
		Similarity:            cmd.Float64("similarity"),
		GenerationMaxNewNodes: int(cmd.Int("generation-max-new-nodes")),
		EditWeights:           weights,
		Seed:                  seedOrNow(cmd),
		Workers:               int(cmd.Int("workers")),
	}

	if pair := cmd.String("distinct-labels-per-tree"); pair != "" {
		lo, hi, err := parseIntPair(pair)
		if err != nil {
			return params, fmt.Errorf("distinct-labels-per-tree: %w", err)
		}
		params.config.LabelsPerTreeMin = lo
		params.config.LabelsPerTreeMax = hi
	}

	return params, params.config.Validate()
}

func seedOrNow(cmd *cli.Command) int64 {
	if cmd.IsSet("seed") {
		return int64(cmd.Int("seed"))
	}
	return time.Now().UnixNano()
}

// parseIntPair parses "10,50" style comma pairs.
func parseIntPair(raw string) (int, int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("must contain exactly 2 comma-separated values, e.g. 10,50, got %q", raw)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first value %q", parts[0])
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid second value %q", parts[1])
	}
	return lo, hi, nil
}

func parseEditWeights(raw string) (gen.EditWeights, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return gen.EditWeights{}, fmt.Errorf("must contain exactly 3 comma-separated weights, got %q", raw)
	}
	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 {
			return gen.EditWeights{}, fmt.Errorf("invalid weight %q", part)
		}
		values[i] = v
	}
	return gen.EditWeights{Relabel: values[0], InsertLeaf: values[1], DeletePromote: values[2]}, nil
}
