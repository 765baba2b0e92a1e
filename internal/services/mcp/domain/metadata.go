package domain

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/platform/id"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
)

// InvocationIDMetaKey is the result metadata key carrying the invocation ID.
const InvocationIDMetaKey = "x-invocation-id"

// toolCallTimeout caps a single tool call, including every fetch and retry
// the call triggers.
const toolCallTimeout = 2 * time.Minute

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	InvocationID string
}

const invocationIDPrefix = "inv"

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.New(invocationIDPrefix)
}

// resolveInvocationID reuses a well-formed identifier supplied in the request
// metadata and mints one otherwise.
func resolveInvocationID(req *mcp.CallToolRequest) (string, error) {
	if req != nil && req.Params != nil {
		if supplied, ok := req.Params.Meta[InvocationIDMetaKey].(string); ok && id.Valid(supplied, invocationIDPrefix) {
			return supplied, nil
		}
	}
	return NewInvocationID()
}

// CallToolResultWithMetadata attaches correlation metadata to result,
// allocating one when result is nil.
func CallToolResultWithMetadata(result *mcp.CallToolResult, meta ToolCallMetadata) *mcp.CallToolResult {
	if result == nil {
		result = &mcp.CallToolResult{}
	}
	if meta.InvocationID == "" {
		return result
	}
	if result.Meta == nil {
		result.Meta = map[string]any{}
	}
	result.Meta[InvocationIDMetaKey] = meta.InvocationID
	return result
}

// Observer records tool call outcomes.
type Observer struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Instrument wraps handler with an invocation ID, a call timeout, a log
// line and a metrics sample.
func Instrument[I, O any](name string, obs Observer, handler mcp.ToolHandlerFor[I, O]) mcp.ToolHandlerFor[I, O] {
	logger := logging.OrNop(obs.Logger)
	return func(ctx context.Context, req *mcp.CallToolRequest, input I) (*mcp.CallToolResult, O, error) {
		invocationID, err := resolveInvocationID(req)
		if err != nil {
			var zero O
			return nil, zero, err
		}

		runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
		defer cancel()

		start := time.Now()
		result, output, err := handler(runCtx, req, input)
		obs.Metrics.ToolCall(name, err != nil)

		fields := []zap.Field{
			zap.String("tool", name),
			zap.String("invocation_id", invocationID),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Debug("tool call canceled", fields...)
			} else {
				logger.Warn("tool call failed", append(fields, zap.Error(err))...)
			}
			var zero O
			return nil, zero, err
		}
		logger.Debug("tool call", fields...)
		return CallToolResultWithMetadata(result, ToolCallMetadata{InvocationID: invocationID}), output, nil
	}
}
