package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/LukMRVC/treegen/pkg/gen"
	"github.com/LukMRVC/treegen/pkg/mcp"
	"github.com/LukMRVC/treegen/pkg/queries"
	"github.com/LukMRVC/treegen/pkg/stats"
)

func getCommands() []*cli.Command {
	return []*cli.Command{
		getGenerateCommand(),
		getStatsCommand(),
		getQueriesCommand(),
		getMcpCommand(),
		getVersionCommand(),
	}
}

func getGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a synthetic tree dataset",
		UsageText: "treegen generate -T <count> -D <labels> -S <shape> -M <min,max> [options]",
		Flags:     getGenerateFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params, err := getAndValidateGenerateParams(cmd)
			if err != nil {
				return err
			}

			slog.Info("generating dataset",
				"trees", params.config.TreeCount,
				"generational", params.config.Generational(),
				"seed", params.config.Seed)

			trees, err := gen.Generate(params.config)
			if err != nil {
				return fmt.Errorf("cannot generate dataset: %w", err)
			}

			return withOutput(params.output, func(w io.Writer) error {
				return writeTrees(w, trees)
			})
		},
	}
}

func getStatsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Summarize a bracket dataset: size distribution and branching",
		UsageText: "treegen stats <dataset>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "dataset",
				UsageText: "Bracket dataset file, one tree per line",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := os.Open(cmd.StringArg("dataset"))
			if err != nil {
				return fmt.Errorf("cannot open dataset: %w", err)
			}
			defer f.Close()

			trees, err := stats.Read(f)
			if err != nil {
				return fmt.Errorf("cannot read dataset: %w", err)
			}
			summary, err := stats.Summarize(trees)
			if err != nil {
				return err
			}
			printJSON(summary)
			return nil
		},
	}
}

func getQueriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "queries",
		Usage:     "Select query samples from an existing dataset",
		UsageText: "treegen queries <subcommand> [options]",
		Commands: []*cli.Command{
			getDissimilarityQueriesCommand(),
			getSampleQueriesCommand(),
		},
	}
}

func getDissimilarityQueriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "dissimilarity",
		Usage:     "Emit one query per tree with threshold = size/2",
		UsageText: "treegen queries dissimilarity <dataset> [options]",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "dataset",
				UsageText: "Bracket dataset file, one tree per line",
			},
		},
		Flags: []cli.Flag{getOutputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := os.Open(cmd.StringArg("dataset"))
			if err != nil {
				return fmt.Errorf("cannot open dataset: %w", err)
			}
			defer f.Close()

			result, err := queries.Dissimilarity(f)
			if err != nil {
				return err
			}
			return withOutput(cmd.String("output"), func(w io.Writer) error {
				return queries.WriteCSV(w, result)
			})
		},
	}
}

func getSampleQueriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     "Pick queries from precomputed pairwise distances",
		UsageText: "treegen queries sample <distances.csv> <dataset> [options]",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "distances",
				UsageText: "CSV of pairwise distances: t1,t2,dist",
			},
			&cli.StringArg{
				Name:      "dataset",
				UsageText: "Bracket dataset file, one tree per line",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-threshold",
				Value: 1,
				Usage: "Smallest distance threshold to try",
			},
			&cli.IntFlag{
				Name:  "max-threshold",
				Value: 9999,
				Usage: "Largest distance threshold to try",
			},
			&cli.IntFlag{
				Name:  "min-results",
				Usage: "Minimum matches a query must have (default: 0.5% of dataset)",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Maximum matches a query may have (default: 3% of dataset)",
			},
			&cli.IntFlag{
				Name:  "max-queries",
				Value: 200,
				Usage: "Maximum sample size",
			},
			&cli.IntFlag{
				Name:  "significance-divisor",
				Value: 2,
				Usage: "Reject threshold k for a tree of size s unless k < s/divisor",
			},
			getSeedFlag(),
			getOutputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			distances, err := os.Open(cmd.StringArg("distances"))
			if err != nil {
				return fmt.Errorf("cannot open distances: %w", err)
			}
			defer distances.Close()

			dataset, err := os.Open(cmd.StringArg("dataset"))
			if err != nil {
				return fmt.Errorf("cannot open dataset: %w", err)
			}
			defer dataset.Close()

			rng := rand.New(rand.NewSource(seedOrNow(cmd)))
			result, err := queries.Sample(rng, distances, dataset, queries.SampleOptions{
				MinThreshold:        int(cmd.Int("min-threshold")),
				MaxThreshold:        int(cmd.Int("max-threshold")),
				MinResults:          int(cmd.Int("min-results")),
				MaxResults:          int(cmd.Int("max-results")),
				MaxQueries:          int(cmd.Int("max-queries")),
				SignificanceDivisor: int(cmd.Int("significance-divisor")),
			})
			if err != nil {
				return err
			}
			slog.Info("selected query sample", "queries", len(result))
			return withOutput(cmd.String("output"), func(w io.Writer) error {
				return queries.WriteCSV(w, result)
			})
		},
	}
}

func getMcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Run as MCP server (stdio transport)",
		UsageText: "treegen mcp",
		Description: `Start the treegen MCP server for integration with AI assistants.

The server communicates via stdio using the Model Context Protocol (MCP)
and exposes dataset generation, statistics and query sampling as tools.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return mcp.RunServer(ctx, mcp.Config{Version: version})
		},
	}
}

func getVersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "treegen version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("treegen version %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", date)
			return nil
		},
	}
}
