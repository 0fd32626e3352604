package pgdata

import (
	"context"
	"time"

	"github.com/raterudder/pgdata/pkg/types"
)

// API is the set of data calls a Client makes once its session is open.
// Code that only reads data should depend on API so it can be tested with
// pgdatamock.
type API interface {
	// GetSystems returns every system visible to the account.
	GetSystems(ctx context.Context) ([]types.System, error)

	// GetSystem returns a single system by ID.
	GetSystem(ctx context.Context, systemID string) (types.System, error)

	// SearchSystems returns systems whose ID, canonical name or group name
	// match term.
	SearchSystems(ctx context.Context, term string) ([]types.System, error)

	// GetLocations returns every location.
	GetLocations(ctx context.Context) ([]types.Location, error)

	// GetGrossDailyKWh returns daily gross generation in kWh measured at the
	// inverter for the inclusive date range.
	GetGrossDailyKWh(ctx context.Context, systemID string, start, end time.Time) ([]types.Measurement, error)

	// GetPVOutDaily returns daily generation forecasts in kWh from source.
	GetPVOutDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error)

	// GetPVOutHourly returns hourly generation forecasts in kWh from source.
	GetPVOutHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error)

	// GetIrradiationDaily returns daily irradiation in kWh/m^2 from source.
	GetIrradiationDaily(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error)

	// GetIrradiationHourly returns hourly irradiation in kWh/m^2 from source.
	GetIrradiationHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error)

	// GetWindHourly returns hourly wind speed and direction from source.
	GetWindHourly(ctx context.Context, source string, start, end time.Time) ([]types.WindMeasurement, error)

	// GetTemperatureHourly returns hourly temperature in degrees Celsius from
	// source.
	GetTemperatureHourly(ctx context.Context, source string, start, end time.Time) ([]types.Measurement, error)

	GetIrradiationSources(ctx context.Context) ([]types.Source, error)
	GetPVOutSources(ctx context.Context) ([]types.Source, error)
	GetWindSources(ctx context.Context) ([]types.Source, error)
	GetTemperatureSources(ctx context.Context) ([]types.Source, error)

	// GetUtilityFootprints returns the utility regions systems can belong to.
	GetUtilityFootprints(ctx context.Context) ([]types.UtilityFootprint, error)

	// GetUtilityRevenues returns statements for energy the utility bought
	// from the system.
	GetUtilityRevenues(ctx context.Context, systemID string, period StatementPeriod) ([]types.UtilityStatement, error)

	// GetUtilityExpenses returns statements for energy the system bought from
	// the utility.
	GetUtilityExpenses(ctx context.Context, systemID string, period StatementPeriod) ([]types.UtilityStatement, error)
}
