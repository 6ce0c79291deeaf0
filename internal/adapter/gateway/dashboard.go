package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

func rangeValues(rng string) url.Values {
	query := url.Values{}
	if rng != "" {
		query.Set("range", rng)
	}
	return query
}

// DashboardSummary fetches aggregate counts for a range ("today",
// "week", "month"; server default when empty).
func (c *Client) DashboardSummary(ctx context.Context, rng string) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", rangeValues(rng), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardStaffLoad fetches the per-staff load report.
func (c *Client) DashboardStaffLoad(ctx context.Context, rng string) ([]domain.StaffLoadEntry, error) {
	var out []domain.StaffLoadEntry
	if err := c.do(ctx, http.MethodGet, "/dashboard/staff-load", rangeValues(rng), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivityLogs fetches recent audit entries. limit <= 0 leaves the
// count to the server.
func (c *Client) ActivityLogs(ctx context.Context, rng string, limit int) ([]domain.ActivityLog, error) {
	query := rangeValues(rng)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []domain.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/dashboard/activity-logs", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
