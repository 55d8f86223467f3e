//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/occupation-insights/internal/config"
	"github.com/honeycarbs/occupation-insights/pkg/gateway"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Analysis backend
		provideGatewayConfig,
		gateway.NewClient,
		provideAnalyzer,

		// Results handoff
		provideHandoffStore,

		// Precomputed dataset
		provideDatasetSource,

		// Export
		provideSheetsClient,

		newResources,
	)

	return nil, nil, nil
}
