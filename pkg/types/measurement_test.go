package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementUnmarshal(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		var m Measurement
		require.NoError(t, json.Unmarshal([]byte(`{"system_id":"PV001","ts":"2021-12-01","value":12.5}`), &m))
		assert.Equal(t, "PV001", m.SystemID)
		assert.Equal(t, time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC), m.TS)
		assert.Equal(t, 12.5, m.Value)
		assert.Nil(t, m.LTA)
	})

	t.Run("hourly with offset and lta", func(t *testing.T) {
		var m Measurement
		require.NoError(t, json.Unmarshal([]byte(`{"source":"pyr-1","ts":"2021-12-01T10:00:00+09:00","value":0.4,"lta":0.35,"memo":null}`), &m))
		assert.Equal(t, "pyr-1", m.Source)
		assert.True(t, m.TS.Equal(time.Date(2021, 12, 1, 1, 0, 0, 0, time.UTC)))
		require.NotNil(t, m.LTA)
		assert.Equal(t, 0.35, *m.LTA)
		assert.Empty(t, m.Memo)
	})

	t.Run("naive datetime", func(t *testing.T) {
		var m Measurement
		require.NoError(t, json.Unmarshal([]byte(`{"ts":"2021-12-01T10:00:00","value":1}`), &m))
		assert.Equal(t, time.Date(2021, 12, 1, 10, 0, 0, 0, time.UTC), m.TS)
	})

	t.Run("missing value", func(t *testing.T) {
		var m Measurement
		err := json.Unmarshal([]byte(`{"ts":"2021-12-01"}`), &m)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("null value", func(t *testing.T) {
		var m Measurement
		err := json.Unmarshal([]byte(`{"ts":"2021-12-01","value":null}`), &m)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("missing ts", func(t *testing.T) {
		var m Measurement
		err := json.Unmarshal([]byte(`{"value":3}`), &m)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("bad ts", func(t *testing.T) {
		var m Measurement
		err := json.Unmarshal([]byte(`{"ts":"yesterday","value":3}`), &m)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrMissingField)
	})

	t.Run("string value", func(t *testing.T) {
		var m Measurement
		assert.Error(t, json.Unmarshal([]byte(`{"ts":"2021-12-01","value":"3"}`), &m))
	})
}

func TestMeasurementRoundTrip(t *testing.T) {
	lta := 2.0
	in := Measurement{Source: "s", TS: time.Date(2022, 1, 2, 3, 0, 0, 0, time.UTC), Value: 1.5, LTA: &lta}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Measurement
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestWindMeasurementUnmarshal(t *testing.T) {
	var w WindMeasurement
	require.NoError(t, json.Unmarshal([]byte(`{"source":"w1","ts":"2021-12-01T00:00:00Z","wind_speed":3.2,"wind_direction":null}`), &w))
	require.NotNil(t, w.WindSpeed)
	assert.Equal(t, 3.2, *w.WindSpeed)
	assert.Nil(t, w.WindDirection)

	err := json.Unmarshal([]byte(`{"ts":"2021-12-01T00:00:00Z"}`), &w)
	assert.ErrorIs(t, err, ErrMissingField)
}
