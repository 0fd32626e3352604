package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemUnmarshal(t *testing.T) {
	var s System
	require.NoError(t, json.Unmarshal([]byte(`{
		"system_id": "PV001",
		"canonical_name": "Hokkaido 1",
		"capacity_dc": 1500.5,
		"capacity_ac": 1200,
		"interconnection": "2019-04-01",
		"group_name": "north",
		"location": "LOC1",
		"utility": "HEPCO"
	}`), &s))
	assert.Equal(t, System{
		SystemID:        "PV001",
		CanonicalName:   "Hokkaido 1",
		CapacityDC:      1500.5,
		CapacityAC:      1200,
		Interconnection: Date{Year: 2019, Month: time.April, Day: 1},
		GroupName:       "north",
		Location:        "LOC1",
		Utility:         "HEPCO",
	}, s)

	var empty System
	err := json.Unmarshal([]byte(`{"canonical_name":"x"}`), &empty)
	assert.ErrorIs(t, err, ErrMissingField)

	var nullDate System
	require.NoError(t, json.Unmarshal([]byte(`{"system_id":"PV002","interconnection":null}`), &nullDate))
	assert.True(t, nullDate.Interconnection.IsZero())
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		dest any
		body string
	}{
		{"location", &Location{}, `{"prefecture":"Hokkaido"}`},
		{"source", &Source{}, `{"description":"pyranometer"}`},
		{"footprint", &UtilityFootprint{}, `{}`},
		{"statement", &UtilityStatement{}, `{"amt_kwh":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, json.Unmarshal([]byte(tt.body), tt.dest), ErrMissingField)
		})
	}
}

func TestSourceWithoutCoordinates(t *testing.T) {
	var s Source
	require.NoError(t, json.Unmarshal([]byte(`{"key":"model-a","description":"forecast"}`), &s))
	assert.Equal(t, "model-a", s.Key)
	assert.Nil(t, s.Latitude)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2021-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2021-12-31", d.String())
	assert.True(t, Date{2021, time.December, 1}.Before(d))
	assert.False(t, d.Before(d))

	jst := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, Date{2022, time.January, 1}, DateOf(time.Date(2022, 1, 1, 2, 0, 0, 0, jst)))

	b, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	_, err = ParseDate("2021-13-01")
	assert.Error(t, err)
}
