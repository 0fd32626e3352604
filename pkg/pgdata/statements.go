package pgdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/raterudder/pgdata/pkg/types"
)

// StatementPeriod narrows utility statements to a billing year and/or month.
// Zero fields are not filtered on.
type StatementPeriod struct {
	Year  int
	Month int
}

func (p StatementPeriod) params(systemID string) (url.Values, error) {
	if err := requireID(paramSystemID, systemID); err != nil {
		return nil, err
	}
	if p.Year < 0 {
		return nil, fmt.Errorf("%w: invalid period year %d", ErrInvalidArgument, p.Year)
	}
	if p.Month < 0 || p.Month > 12 {
		return nil, fmt.Errorf("%w: invalid period month %d", ErrInvalidArgument, p.Month)
	}
	v := url.Values{}
	v.Set(paramSystemID, systemID)
	if p.Year != 0 {
		v.Set("period_year", strconv.Itoa(p.Year))
	}
	if p.Month != 0 {
		v.Set("period_month", strconv.Itoa(p.Month))
	}
	return v, nil
}

// GetUtilityRevenues returns statements for energy the utility bought from
// systemID, optionally narrowed to period.
func (c *Client) GetUtilityRevenues(ctx context.Context, systemID string, period StatementPeriod) ([]types.UtilityStatement, error) {
	return c.statements(ctx, "api/utility-revenue", systemID, period)
}

// GetUtilityExpenses returns statements for energy systemID bought from the
// utility.
func (c *Client) GetUtilityExpenses(ctx context.Context, systemID string, period StatementPeriod) ([]types.UtilityStatement, error) {
	return c.statements(ctx, "api/utility-expense", systemID, period)
}

func (c *Client) statements(ctx context.Context, endpoint, systemID string, period StatementPeriod) ([]types.UtilityStatement, error) {
	params, err := period.params(systemID)
	if err != nil {
		return nil, err
	}
	return fetch[types.UtilityStatement](ctx, c, query{
		endpoint: endpoint,
		params:   params,
		idParams: []string{paramSystemID},
	})
}
