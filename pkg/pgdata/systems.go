package pgdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/raterudder/pgdata/pkg/types"
)

// GetSystems returns every system visible to the account.
func (c *Client) GetSystems(ctx context.Context) ([]types.System, error) {
	return fetch[types.System](ctx, c, query{endpoint: "api/systems"})
}

// GetSystem returns ErrNotFound if no system has the given ID.
func (c *Client) GetSystem(ctx context.Context, systemID string) (types.System, error) {
	if err := requireID(paramSystemID, systemID); err != nil {
		return types.System{}, err
	}
	systems, err := fetch[types.System](ctx, c, query{
		endpoint: "api/systems",
		params:   url.Values{paramSystemID: {systemID}},
		idParams: []string{paramSystemID},
	})
	if err != nil {
		return types.System{}, err
	}
	for _, s := range systems {
		if s.SystemID == systemID {
			return s, nil
		}
	}
	return types.System{}, fmt.Errorf("%w: system %s", ErrNotFound, systemID)
}

// SearchSystems returns systems whose ID, canonical name or group name
// match term.
func (c *Client) SearchSystems(ctx context.Context, term string) ([]types.System, error) {
	if err := requireID(paramSearch, term); err != nil {
		return nil, err
	}
	return fetch[types.System](ctx, c, query{
		endpoint: "api/systems",
		params:   url.Values{paramSearch: {term}},
	})
}

// GetLocations returns every location.
func (c *Client) GetLocations(ctx context.Context) ([]types.Location, error) {
	return fetch[types.Location](ctx, c, query{endpoint: "api/locations"})
}

// GetGrossDailyKWh returns daily gross generation in kWh for systemID, one
// row per day from start to end inclusive.
func (c *Client) GetGrossDailyKWh(ctx context.Context, systemID string, start, end time.Time) ([]types.Measurement, error) {
	if err := requireID(paramSystemID, systemID); err != nil {
		return nil, err
	}
	rng, err := dailyRange(start, end)
	if err != nil {
		return nil, err
	}
	rng.Set(paramSystemID, systemID)
	return fetch[types.Measurement](ctx, c, query{
		endpoint: "api/gross-kwh-daily",
		params:   rng,
		idParams: []string{paramSystemID},
	})
}
