package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	apperrors "github.com/louisbranch/psgc-mcp/internal/platform/errors"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// ListInput is the input of a list tool; it takes no arguments.
type ListInput struct{}

// CodeInput selects one entity by code.
type CodeInput struct {
	Code string `json:"code" jsonschema:"PSGC code, e.g. 012801001 (island groups use luzon, visayas or mindanao)"`
}

// ListResult wraps a listing.
type ListResult[T any] struct {
	Items []T `json:"items" jsonschema:"matching entities"`
	Count int `json:"count" jsonschema:"number of entities returned"`
}

func newListResult[T any](items []T) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items, Count: len(items)}
}

// snake converts a level tag or plural segment to its tool-name form.
func snake(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// humanize turns a level tag or plural segment into words.
func humanize(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}

// ListToolName returns get_<plural>.
func ListToolName(level geocode.Level) string {
	return "get_" + snake(level.Plural())
}

// GetToolName returns get_<singular>.
func GetToolName(level geocode.Level) string {
	return "get_" + snake(string(level))
}

// ChildrenToolName returns get_<parent singular>_<child plural>.
func ChildrenToolName(parent, child geocode.Level) string {
	return "get_" + snake(string(parent)) + "_" + snake(child.Plural())
}

// ListTool defines the listing tool for level.
func ListTool(level geocode.Level) *mcp.Tool {
	return &mcp.Tool{
		Name:        ListToolName(level),
		Description: fmt.Sprintf("Lists every %s in the Philippine Standard Geographic Code dataset", humanize(string(level))),
	}
}

// ListHandler lists every entity of level.
func ListHandler[T any](client *psgc.Client, level geocode.Level) mcp.ToolHandlerFor[ListInput, ListResult[T]] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListResult[T], error) {
		items, err := psgc.List[T](ctx, client, level)
		if err != nil {
			return nil, ListResult[T]{}, fmt.Errorf("list %s: %w", humanize(level.Plural()), err)
		}
		return nil, newListResult(items), nil
	}
}

// GetTool defines the lookup tool for level.
func GetTool(level geocode.Level) *mcp.Tool {
	return &mcp.Tool{
		Name:        GetToolName(level),
		Description: fmt.Sprintf("Gets one %s by PSGC code", humanize(string(level))),
	}
}

// GetHandler fetches one entity of level.
func GetHandler[T any](client *psgc.Client, level geocode.Level) mcp.ToolHandlerFor[CodeInput, T] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, T, error) {
		var zero T
		code, err := requireCode(level, input.Code)
		if err != nil {
			return nil, zero, err
		}
		entity, err := psgc.Get[T](ctx, client, level, code)
		if err != nil {
			return nil, zero, fmt.Errorf("get %s %s: %w", humanize(string(level)), code, err)
		}
		return nil, entity, nil
	}
}

// ChildrenTool defines the scoped listing tool of child under parent.
func ChildrenTool(parent, child geocode.Level) *mcp.Tool {
	return &mcp.Tool{
		Name:        ChildrenToolName(parent, child),
		Description: fmt.Sprintf("Lists the %s of a %s", humanize(child.Plural()), humanize(string(parent))),
	}
}

// ChildrenHandler lists the child entities under a parent code.
func ChildrenHandler[T any](client *psgc.Client, parent, child geocode.Level) mcp.ToolHandlerFor[CodeInput, ListResult[T]] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, ListResult[T], error) {
		code, err := requireCode(parent, input.Code)
		if err != nil {
			return nil, ListResult[T]{}, err
		}
		items, err := psgc.Children[T](ctx, client, parent, code, child)
		if err != nil {
			return nil, ListResult[T]{}, fmt.Errorf("list %s of %s %s: %w", humanize(child.Plural()), humanize(string(parent)), code, err)
		}
		return nil, newListResult(items), nil
	}
}

// IslandGroupCodes are the only codes the island-group level accepts.
var IslandGroupCodes = []string{"luzon", "visayas", "mindanao"}

// trimCode trims code and rejects an empty one.
func trimCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("code is required")
	}
	return code, nil
}

// requireCode trims code and checks its shape for level before any fetch.
func requireCode(level geocode.Level, code string) (string, error) {
	code, err := trimCode(code)
	if err != nil {
		return "", err
	}
	if level == geocode.LevelIslandGroup {
		if !slices.Contains(IslandGroupCodes, code) {
			return "", apperrors.WithMetadata(apperrors.CodeInvalidFormat,
				fmt.Sprintf("island group must be one of %s", strings.Join(IslandGroupCodes, ", ")),
				map[string]string{"code": code})
		}
		return code, nil
	}
	if !geocode.WellFormed(code) {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidFormat,
			fmt.Sprintf("%s code must be exactly %d digits", humanize(string(level)), geocode.CodeLength),
			map[string]string{"code": code})
	}
	return code, nil
}
