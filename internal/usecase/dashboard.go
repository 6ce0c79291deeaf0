package usecase

import (
	"context"

	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// DashboardSummary fetches aggregate counts for a range.
func (r *Resources) DashboardSummary(ctx context.Context, rng string) (*domain.DashboardSummary, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /dashboard/summary", rng), func(ctx context.Context) (*domain.DashboardSummary, domain.TagSet, error) {
		item, err := r.gw.DashboardSummary(ctx, rng)
		if err != nil {
			return nil, nil, err
		}
		return item, domain.NewTagSet(domain.ListTag(domain.TagDashboard)), nil
	})
}

// DashboardStaffLoad fetches the per-staff load report.
func (r *Resources) DashboardStaffLoad(ctx context.Context, rng string) ([]domain.StaffLoadEntry, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /dashboard/staff-load", rng), func(ctx context.Context) ([]domain.StaffLoadEntry, domain.TagSet, error) {
		items, err := r.gw.DashboardStaffLoad(ctx, rng)
		if err != nil {
			return nil, nil, err
		}
		return items, domain.NewTagSet(domain.ListTag(domain.TagDashboard), domain.ListTag(domain.TagStaff)), nil
	})
}

// ActivityLogs fetches recent audit entries.
func (r *Resources) ActivityLogs(ctx context.Context, rng string, limit int) ([]domain.ActivityLog, error) {
	args := struct {
		Range string `json:"range"`
		Limit int    `json:"limit"`
	}{rng, limit}
	return runQuery(ctx, r.qc, cache.Key("GET /dashboard/activity-logs", args), func(ctx context.Context) ([]domain.ActivityLog, domain.TagSet, error) {
		items, err := r.gw.ActivityLogs(ctx, rng, limit)
		if err != nil {
			return nil, nil, err
		}
		return items, domain.NewTagSet(domain.ListTag(domain.TagDashboard)), nil
	})
}
