package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Measurement is one bucket of a time series. Daily series carry a date in
// TS (midnight UTC), hourly series the start of the hour.
type Measurement struct {
	SystemID string    `json:"system_id,omitempty"`
	Source   string    `json:"source,omitempty"`
	TS       time.Time `json:"ts"`
	Value    float64   `json:"value"`
	// LTA is the long-term average for the same calendar slot, only reported
	// for irradiation.
	LTA  *float64 `json:"lta,omitempty"`
	Memo string   `json:"memo,omitempty"`
}

func (m *Measurement) UnmarshalJSON(b []byte) error {
	var raw struct {
		SystemID string   `json:"system_id"`
		Source   string   `json:"source"`
		TS       *string  `json:"ts"`
		Value    *float64 `json:"value"`
		LTA      *float64 `json:"lta"`
		Memo     *string  `json:"memo"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.TS == nil {
		return missingField("ts")
	}
	if raw.Value == nil {
		return missingField("value")
	}
	ts, err := ParseTimestamp(*raw.TS)
	if err != nil {
		return fmt.Errorf("invalid ts: %w", err)
	}
	*m = Measurement{
		SystemID: raw.SystemID,
		Source:   raw.Source,
		TS:       ts,
		Value:    *raw.Value,
		LTA:      raw.LTA,
	}
	if raw.Memo != nil {
		m.Memo = *raw.Memo
	}
	return nil
}

// WindMeasurement is one hour of wind data. Either reading may be absent but
// not both.
type WindMeasurement struct {
	Source        string    `json:"source,omitempty"`
	TS            time.Time `json:"ts"`
	WindSpeed     *float64  `json:"wind_speed"`
	WindDirection *float64  `json:"wind_direction"`
	Memo          string    `json:"memo,omitempty"`
}

func (w *WindMeasurement) UnmarshalJSON(b []byte) error {
	var raw struct {
		Source        string   `json:"source"`
		TS            *string  `json:"ts"`
		WindSpeed     *float64 `json:"wind_speed"`
		WindDirection *float64 `json:"wind_direction"`
		Memo          *string  `json:"memo"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.TS == nil {
		return missingField("ts")
	}
	if raw.WindSpeed == nil && raw.WindDirection == nil {
		return missingField("wind_speed or wind_direction")
	}
	ts, err := ParseTimestamp(*raw.TS)
	if err != nil {
		return fmt.Errorf("invalid ts: %w", err)
	}
	*w = WindMeasurement{
		Source:        raw.Source,
		TS:            ts,
		WindSpeed:     raw.WindSpeed,
		WindDirection: raw.WindDirection,
	}
	if raw.Memo != nil {
		w.Memo = *raw.Memo
	}
	return nil
}
