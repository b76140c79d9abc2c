package tools

import (
	"context"
	"fmt"

	"github.com/nexxia-ai/aigentic/ai"
)

// ToAgentTool exposes a Tool to the agent framework. Tool failures are
// reported back to the model as an error result rather than aborting the
// agent run: the model can read the message and adjust its next call.
func ToAgentTool(ctx context.Context, t Tool) ai.Tool {
	return ai.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: t.Parameters(),
		Execute: func(args map[string]interface{}) (*ai.ToolResult, error) {
			out, err := t.Execute(ctx, args)
			if err != nil {
				return &ai.ToolResult{
					Content: []ai.ToolContent{{Type: "text", Content: fmt.Sprintf("Error: %v", err)}},
					Error:   true,
				}, nil
			}
			return &ai.ToolResult{
				Content: []ai.ToolContent{{Type: "text", Content: out}},
			}, nil
		},
	}
}

// ToAgentTools converts every registered tool, in name order.
func (r *Registry) ToAgentTools(ctx context.Context) []ai.Tool {
	names := r.List()
	agentTools := make([]ai.Tool, 0, len(names))
	for _, name := range names {
		agentTools = append(agentTools, ToAgentTool(ctx, r.Get(name)))
	}
	return agentTools
}
