package mcp

import (
	"context"
	"strings"
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTools_Names(t *testing.T) {
	tools := BuildTools()
	require.Len(t, tools, 3)

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Tool.Name
	}
	assert.Contains(t, names, ToolGenerate)
	assert.Contains(t, names, ToolStats)
	assert.Contains(t, names, ToolDissimilarity)
}

func TestGenerateTool_ShapeModifierDescription(t *testing.T) {
	tool := buildGenerateTool()

	prop, ok := tool.Tool.InputSchema.Properties["shape_modifier"].(map[string]any)
	require.True(t, ok)
	desc, ok := prop["description"].(string)
	require.True(t, ok)

	// Direction must match the builder: high values widen, low values deepen.
	assert.Contains(t, desc, ">0.5 wider")
	assert.Contains(t, desc, "<0.5 deeper")
}

func TestGenerateTool_ProducesSortedDataset(t *testing.T) {
	tool := buildGenerateTool()

	req := mcptypes.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"tree_count":      10.0,
		"distinct_labels": 5.0,
		"shape_modifier":  0.5,
		"min_tree_size":   3.0,
		"max_tree_size":   8.0,
		"seed":            1.0,
	}

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text, ok := result.Content[0].(mcptypes.TextContent)
	require.True(t, ok)
	lines := strings.Split(strings.TrimSpace(text.Text), "\n")
	assert.Len(t, lines, 10)

	previous := 0
	for _, line := range lines {
		size := strings.Count(line, "{")
		assert.GreaterOrEqual(t, size, previous)
		previous = size
	}
}

func TestGenerateTool_ReportsConfigError(t *testing.T) {
	tool := buildGenerateTool()

	req := mcptypes.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"tree_count":      10.0,
		"distinct_labels": 5.0,
		"shape_modifier":  2.0,
		"min_tree_size":   3.0,
		"max_tree_size":   8.0,
	}

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestStatsTool(t *testing.T) {
	tool := buildStatsTool()

	req := mcptypes.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"dataset": "{1}\n{1{2}{3}}\n",
	}

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)
}
