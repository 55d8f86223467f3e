package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const backendHealthName = "backend_health"

// HealthChecker reports the analysis backend status
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// BackendHealthParams is empty; the tool takes no arguments
type BackendHealthParams struct{}

// BackendHealthResult is the structured response of backend_health
type BackendHealthResult struct {
	Status string `json:"status,omitempty" jsonschema:"Status reported by the backend"`
	Error  string `json:"error,omitempty" jsonschema:"Connection error when the backend is unreachable"`
}

type backendHealthTool struct {
	checker HealthChecker
	logger  *logging.Logger
}

// WithBackendHealth registers the backend_health tool
func WithBackendHealth(checker HealthChecker) Option {
	return func(reg *registry) {
		handler := backendHealthTool{checker: checker, logger: reg.logger.Named(backendHealthName)}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        backendHealthName,
			Description: "Check whether the job analysis backend is reachable",
		}, handler.handle)
		reg.add(backendHealthName)
	}
}

func (t backendHealthTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, _ BackendHealthParams) (*sdkmcp.CallToolResult, any, error) {
	status, err := t.checker.Health(ctx)
	if err != nil {
		t.logger.Warn("backend unreachable", "err", err)
		result := BackendHealthResult{Error: err.Error()}
		return errorResult("[backend_health] " + result.Error), result, nil
	}

	return textResult("[backend_health] status: " + status), BackendHealthResult{Status: status}, nil
}
