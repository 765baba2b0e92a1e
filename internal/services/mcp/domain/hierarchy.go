package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
)

// HierarchyToolName is the ancestry tool.
const HierarchyToolName = "get_hierarchy"

// ValidateToolName is the code validation tool.
const ValidateToolName = "validate_code"

// HierarchyTool defines the ancestry tool.
func HierarchyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        HierarchyToolName,
		Description: "Returns the full administrative ancestry of a 9-digit PSGC code, from island group down to the code itself",
	}
}

// HierarchyHandler resolves the ancestry of a code.
func HierarchyHandler(resolver *hierarchy.Resolver) mcp.ToolHandlerFor[CodeInput, hierarchy.Hierarchy] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, hierarchy.Hierarchy, error) {
		code, err := trimCode(input.Code)
		if err != nil {
			return nil, hierarchy.Hierarchy{}, err
		}
		h, err := resolver.Resolve(ctx, code)
		if err != nil {
			return nil, hierarchy.Hierarchy{}, fmt.Errorf("resolve hierarchy of %s: %w", code, err)
		}
		return nil, h, nil
	}
}

// ValidateTool defines the code validation tool.
func ValidateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ValidateToolName,
		Description: "Checks whether a 9-digit PSGC code exists and reports its administrative level",
	}
}

// ValidateHandler validates a code. Malformed and unknown codes are
// reported as invalid rather than as tool errors.
func ValidateHandler(validator *hierarchy.Validator) mcp.ToolHandlerFor[CodeInput, hierarchy.Validation] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, hierarchy.Validation, error) {
		return nil, validator.Validate(ctx, input.Code), nil
	}
}
