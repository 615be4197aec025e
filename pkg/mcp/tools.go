package mcp

import (
	"context"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/LukMRVC/treegen/pkg/gen"
	"github.com/LukMRVC/treegen/pkg/queries"
	"github.com/LukMRVC/treegen/pkg/stats"
	"github.com/LukMRVC/treegen/pkg/tree"
)

const (
	ToolGenerate      = "treegen_generate"
	ToolStats         = "treegen_stats"
	ToolDissimilarity = "treegen_queries_dissimilarity"
)

// BuildTools assembles the treegen MCP tool set.
func BuildTools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		buildGenerateTool(),
		buildStatsTool(),
		buildDissimilarityTool(),
	}
}

func buildGenerateTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolGenerate,
			mcptypes.WithDescription("Generate a synthetic labeled tree dataset in bracket notation, one tree per line, sorted by node count"),
			mcptypes.WithNumber("tree_count",
				mcptypes.Description("Total number of trees"),
				mcptypes.Required(),
			),
			mcptypes.WithNumber("distinct_labels",
				mcptypes.Description("Size of the label alphabet (labels are 1..N)"),
				mcptypes.Required(),
			),
			mcptypes.WithNumber("shape_modifier",
				mcptypes.Description("Shape bias in (0,1): >0.5 wider, <0.5 deeper"),
				mcptypes.Required(),
			),
			mcptypes.WithNumber("min_tree_size",
				mcptypes.Description("Minimum base tree size"),
				mcptypes.Required(),
			),
			mcptypes.WithNumber("max_tree_size",
				mcptypes.Description("Maximum base tree size"),
				mcptypes.Required(),
			),
			mcptypes.WithNumber("similarity",
				mcptypes.Description("Similarity of derived trees in [0,1] (default: policy-specific)"),
				mcptypes.DefaultNumber(-1),
			),
			mcptypes.WithNumber("generation_max_new_nodes",
				mcptypes.Description("Fresh labels per generation; a positive value selects generational derivation"),
				mcptypes.DefaultNumber(0),
			),
			mcptypes.WithNumber("seed",
				mcptypes.Description("Random seed for reproducible output"),
				mcptypes.DefaultNumber(0),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			cfg := gen.Config{
				TreeCount:             req.GetInt("tree_count", 0),
				DistinctLabels:        req.GetInt("distinct_labels", 0),
				ShapeModifier:         req.GetFloat("shape_modifier", 0),
				MinTreeSize:           req.GetInt("min_tree_size", 0),
				MaxTreeSize:           req.GetInt("max_tree_size", 0),
				Similarity:            req.GetFloat("similarity", -1),
				GenerationMaxNewNodes: req.GetInt("generation_max_new_nodes", 0),
				Seed:                  int64(req.GetInt("seed", 0)),
			}

			trees, err := gen.Generate(cfg)
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot generate dataset", err), nil
			}

			var b strings.Builder
			for _, t := range trees {
				b.WriteString(tree.Serialize(t))
				b.WriteByte('\n')
			}
			return mcptypes.NewToolResultText(b.String()), nil
		},
	}
}

func buildStatsTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolStats,
			mcptypes.WithDescription("Summarize a bracket dataset: tree count, size distribution and mean root branching"),
			mcptypes.WithString("dataset",
				mcptypes.Description("Bracket dataset, one tree per line"),
				mcptypes.Required(),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			trees, err := stats.Read(strings.NewReader(req.GetString("dataset", "")))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot read dataset", err), nil
			}
			summary, err := stats.Summarize(trees)
			if err != nil {
				return mcptypes.NewToolResultError(err.Error()), nil
			}
			return mcptypes.NewToolResultJSON(summary)
		},
	}
}

func buildDissimilarityTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolDissimilarity,
			mcptypes.WithDescription("Build dissimilarity queries (threshold = size/2) from a bracket dataset, as threshold;tree CSV lines"),
			mcptypes.WithString("dataset",
				mcptypes.Description("Bracket dataset, one tree per line"),
				mcptypes.Required(),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			result, err := queries.Dissimilarity(strings.NewReader(req.GetString("dataset", "")))
			if err != nil {
				return mcptypes.NewToolResultErrorFromErr("cannot build queries", err), nil
			}
			var b strings.Builder
			if err := queries.WriteCSV(&b, result); err != nil {
				return mcptypes.NewToolResultError(err.Error()), nil
			}
			return mcptypes.NewToolResultText(b.String()), nil
		},
	}
}
