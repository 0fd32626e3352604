package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when decoding a record that lacks a field the
// record cannot exist without.
var ErrMissingField = errors.New("missing required field")

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// System is a monitored installation, typically a PV plant.
type System struct {
	SystemID        string  `json:"system_id"`
	CanonicalName   string  `json:"canonical_name,omitempty"`
	CapacityDC      float64 `json:"capacity_dc,omitempty"`
	CapacityAC      float64 `json:"capacity_ac,omitempty"`
	Interconnection Date    `json:"interconnection"`
	GroupName       string  `json:"group_name,omitempty"`
	// Location is the ID of a Location.
	Location string `json:"location,omitempty"`
	// Utility is the name of a UtilityFootprint.
	Utility string `json:"utility,omitempty"`
}

func (s *System) UnmarshalJSON(b []byte) error {
	type alias System
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.SystemID == "" {
		return missingField("system_id")
	}
	*s = System(a)
	return nil
}

// Location is the physical site a system or data source belongs to.
type Location struct {
	ID         string  `json:"id"`
	Prefecture string  `json:"prefecture,omitempty"`
	Address    string  `json:"address,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Altitude   float64 `json:"altitude"`
}

func (l *Location) UnmarshalJSON(b []byte) error {
	type alias Location
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.ID == "" {
		return missingField("id")
	}
	*l = Location(a)
	return nil
}

// Source describes a data source such as a pyranometer or a forecast model.
// Forecast sources have no coordinates.
type Source struct {
	Key         string   `json:"key"`
	Description string   `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Altitude    *float64 `json:"altitude,omitempty"`
}

func (s *Source) UnmarshalJSON(b []byte) error {
	type alias Source
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Key == "" {
		return missingField("key")
	}
	*s = Source(a)
	return nil
}

// UtilityFootprint is the service region of an energy utility.
type UtilityFootprint struct {
	Name string `json:"name"`
}

func (u *UtilityFootprint) UnmarshalJSON(b []byte) error {
	type alias UtilityFootprint
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Name == "" {
		return missingField("name")
	}
	*u = UtilityFootprint(a)
	return nil
}
