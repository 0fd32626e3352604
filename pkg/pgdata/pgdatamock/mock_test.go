package pgdatamock

import (
	"context"
	"testing"
	"time"

	"github.com/raterudder/pgdata/pkg/pgdata"
	"github.com/raterudder/pgdata/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// totalKWh is the kind of caller code the mock exists for.
func totalKWh(ctx context.Context, api pgdata.API, systemID string, start, end time.Time) (float64, error) {
	rows, err := api.GetGrossDailyKWh(ctx, systemID, start, end)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, r := range rows {
		sum += r.Value
	}
	return sum, nil
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 3, 0, 0, 0, 0, time.UTC)

	m := &Client{}
	m.On("GetGrossDailyKWh", mock.Anything, "PV001", start, end).Return([]types.Measurement{
		{TS: start, Value: 1},
		{TS: start.AddDate(0, 0, 1), Value: 2},
		{TS: end, Value: 3.5},
	}, nil)
	m.On("GetGrossDailyKWh", mock.Anything, "MISSING", start, end).Return(nil, pgdata.ErrNotFound)

	sum, err := totalKWh(ctx, m, "PV001", start, end)
	require.NoError(t, err)
	assert.Equal(t, 6.5, sum)

	_, err = totalKWh(ctx, m, "MISSING", start, end)
	assert.ErrorIs(t, err, pgdata.ErrNotFound)

	m.AssertExpectations(t)
}

func TestClientSystem(t *testing.T) {
	m := &Client{}
	m.On("GetSystem", mock.Anything, "PV001").Return(types.System{SystemID: "PV001"}, nil)
	m.On("GetUtilityRevenues", mock.Anything, "PV001", pgdata.StatementPeriod{Year: 2021}).
		Return([]types.UtilityStatement{{SystemID: "PV001", PeriodYear: 2021}}, nil)

	sys, err := m.GetSystem(context.Background(), "PV001")
	require.NoError(t, err)
	assert.Equal(t, "PV001", sys.SystemID)

	stmts, err := m.GetUtilityRevenues(context.Background(), "PV001", pgdata.StatementPeriod{Year: 2021})
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, 2021, stmts[0].PeriodYear)

	m.AssertExpectations(t)
}

func TestClientWrongReturnType(t *testing.T) {
	m := &Client{}
	m.On("GetSystems", mock.Anything).Return([]types.Location{{ID: "LOC1"}}, nil)

	assert.Panics(t, func() {
		_, _ = m.GetSystems(context.Background())
	})
}
