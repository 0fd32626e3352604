package pgdatamock

import (
	"context"
	"time"

	"github.com/raterudder/pgdata/pkg/pgdata"
	"github.com/raterudder/pgdata/pkg/types"
	"github.com/stretchr/testify/mock"
)

// Client is a testify mock of pgdata.API.
type Client struct {
	mock.Mock
}

var _ pgdata.API = (*Client)(nil)

// slice unpacks a Return(rows, err). Return(nil, err) yields nil rows; rows of
// the wrong type panic.
func slice[T any](args mock.Arguments) ([]T, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *Client) GetSystems(ctx context.Context) ([]types.System, error) {
	return slice[types.System](m.Called(ctx))
}

func (m *Client) GetSystem(ctx context.Context, systemID string) (types.System, error) {
	args := m.Called(ctx, systemID)
	if len(args) > 0 {
		return args.Get(0).(types.System), args.Error(1)
	}
	return types.System{}, nil
}

func (m *Client) SearchSystems(ctx context.Context, term string) ([]types.System, error) {
	return slice[types.System](m.Called(ctx, term))
}

func (m *Client) GetLocations(ctx context.Context) ([]types.Location, error) {
	return slice[types.Location](m.Called(ctx))
}

func (m *Client) GetGrossDailyKWh(ctx context.Context, systemID string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, systemID, start, end))
}

func (m *Client) GetPVOutDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetPVOutHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetIrradiationDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetIrradiationHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetWindHourly(ctx context.Context, source string, start, end time.Time) ([]types.WindMeasurement, error) {
	return slice[types.WindMeasurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetTemperatureHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error) {
	return slice[types.Measurement](m.Called(ctx, source, start, end))
}

func (m *Client) GetIrradiationSources(ctx context.Context) ([]types.Source, error) {
	return slice[types.Source](m.Called(ctx))
}

func (m *Client) GetPVOutSources(ctx context.Context) ([]types.Source, error) {
	return slice[types.Source](m.Called(ctx))
}

func (m *Client) GetWindSources(ctx context.Context) ([]types.Source, error) {
	return slice[types.Source](m.Called(ctx))
}

func (m *Client) GetTemperatureSources(ctx context.Context) ([]types.Source, error) {
	return slice[types.Source](m.Called(ctx))
}

func (m *Client) GetUtilityFootprints(ctx context.Context) ([]types.UtilityFootprint, error) {
	return slice[types.UtilityFootprint](m.Called(ctx))
}

func (m *Client) GetUtilityRevenues(ctx context.Context, systemID string, period pgdata.StatementPeriod) ([]types.UtilityStatement, error) {
	return slice[types.UtilityStatement](m.Called(ctx, systemID, period))
}

func (m *Client) GetUtilityExpenses(ctx context.Context, systemID string, period pgdata.StatementPeriod) ([]types.UtilityStatement, error) {
	return slice[types.UtilityStatement](m.Called(ctx, systemID, period))
}
