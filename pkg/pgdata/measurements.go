package pgdata

import (
	"context"
	"net/url"
	"time"

	"github.com/raterudder/pgdata/pkg/types"
)

func (c *Client) sourceSeries(ctx context.Context, endpoint, source string, rng url.Values, rngErr error) ([]types.Measurement, error) {
	if rngErr != nil {
		return nil, rngErr
	}
	q, err := sourceRangeQuery(endpoint, source, rng)
	if err != nil {
		return nil, err
	}
	return fetch[types.Measurement](ctx, c, q)
}

// GetPVOutDaily returns daily generation forecasts in kWh from source.
func (c *Client) GetPVOutDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	rng, err := dailyRange(start, end)
	return c.sourceSeries(ctx, "api/pvout-daily", source, rng, err)
}

// GetPVOutHourly returns hourly generation forecasts in kWh from source.
func (c *Client) GetPVOutHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	rng, err := hourlyRange(start, end)
	return c.sourceSeries(ctx, "api/pvout-hourly", source, rng, err)
}

// GetIrradiationDaily returns daily irradiation in kWh/m^2 from source,
// with the long-term average where the source has one.
func (c *Client) GetIrradiationDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	rng, err := dailyRange(start, end)
	return c.sourceSeries(ctx, "api/irradiation-daily", source, rng, err)
}

// GetIrradiationHourly returns hourly irradiation in kWh/m^2 from source.
func (c *Client) GetIrradiationHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	rng, err := hourlyRange(start, end)
	return c.sourceSeries(ctx, "api/irradiation-hourly", source, rng, err)
}

// GetTemperatureHourly returns hourly temperature in degrees Celsius.
func (c *Client) GetTemperatureHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	rng, err := hourlyRange(start, end)
	return c.sourceSeries(ctx, "api/temperature-hourly", source, rng, err)
}

// GetWindHourly returns hourly wind speed and direction from source.
func (c *Client) GetWindHourly(ctx context.Context, source string, start, end time.Time) ([]types.WindMeasurement, error) {
	rng, err := hourlyRange(start, end)
	if err != nil {
		return nil, err
	}
	q, err := sourceRangeQuery("api/wind-hourly", source, rng)
	if err != nil {
		return nil, err
	}
	return fetch[types.WindMeasurement](ctx, c, q)
}
