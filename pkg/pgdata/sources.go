package pgdata

import (
	"context"

	"github.com/raterudder/pgdata/pkg/types"
)

// GetIrradiationSources lists the keys accepted by the irradiation series.
func (c *Client) GetIrradiationSources(ctx context.Context) ([]types.Source, error) {
	return fetch[types.Source](ctx, c, query{endpoint: "api/irradiation-source"})
}

// GetPVOutSources lists the forecast models accepted by the pvout series.
func (c *Client) GetPVOutSources(ctx context.Context) ([]types.Source, error) {
	return fetch[types.Source](ctx, c, query{endpoint: "api/pvout-source"})
}

// GetWindSources lists the keys accepted by GetWindHourly.
func (c *Client) GetWindSources(ctx context.Context) ([]types.Source, error) {
	return fetch[types.Source](ctx, c, query{endpoint: "api/wind-source"})
}

// GetTemperatureSources lists the keys accepted by GetTemperatureHourly.
func (c *Client) GetTemperatureSources(ctx context.Context) ([]types.Source, error) {
	return fetch[types.Source](ctx, c, query{endpoint: "api/temperature-source"})
}

// GetUtilityFootprints returns the utility regions systems can belong to.
func (c *Client) GetUtilityFootprints(ctx context.Context) ([]types.UtilityFootprint, error) {
	return fetch[types.UtilityFootprint](ctx, c, query{endpoint: "api/utility-footprint"})
}
