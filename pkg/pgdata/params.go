package pgdata

import (
	"fmt"
	"net/url"
	"time"

	"github.com/raterudder/pgdata/pkg/types"
)

const (
	paramSystemID = "system_id"
	paramSource   = "source"
	paramSearch   = "search"
	paramTSGTE    = "ts__gte"
	paramTSLTE    = "ts__lte"
)

func requireID(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return nil
}

// dailyRange formats an inclusive range of calendar days. Each bound is
// taken as the day it falls on in its own location.
func dailyRange(start, end time.Time) (url.Values, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidArgument)
	}
	s, e := types.DateOf(start), types.DateOf(end)
	if e.Before(s) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidArgument, s, e)
	}
	v := url.Values{}
	v.Set(paramTSGTE, s.String())
	v.Set(paramTSLTE, e.String())
	return v, nil
}

// hourlyRange formats an inclusive range of instants.
func hourlyRange(start, end time.Time) (url.Values, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end times are required", ErrInvalidArgument)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidArgument, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	v := url.Values{}
	v.Set(paramTSGTE, start.Format(time.RFC3339))
	v.Set(paramTSLTE, end.Format(time.RFC3339))
	return v, nil
}

// sourceRangeQuery builds the query shared by every per-source time series.
func sourceRangeQuery(endpoint, source string, rng url.Values) (query, error) {
	if err := requireID(paramSource, source); err != nil {
		return query{}, err
	}
	rng.Set(paramSource, source)
	return query{
		endpoint: endpoint,
		params:   rng,
		idParams: []string{paramSource},
	}, nil
}
