package usecase

import (
	"context"

	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// ListStaff fetches all staff members through the cache.
func (r *Resources) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return runQuery(ctx, r.qc, "GET /staff", func(ctx context.Context) ([]domain.Staff, domain.TagSet, error) {
		items, err := r.gw.ListStaff(ctx)
		if err != nil {
			return nil, nil, err
		}
		return items, listProvides(domain.TagStaff, items, func(s domain.Staff) string { return s.ID }), nil
	})
}

// GetStaff fetches one staff member, providing only its entity tag.
func (r *Resources) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /staff/:id", id), func(ctx context.Context) (*domain.Staff, domain.TagSet, error) {
		item, err := r.gw.GetStaff(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return item, domain.NewTagSet(domain.EntityTag(domain.TagStaff, item.ID)), nil
	})
}

// StaffLoad fetches staff with server-computed load for a date. The
// result reflects appointment state, so it provides staff and queue
// tags and is staled by appointment writes.
func (r *Resources) StaffLoad(ctx context.Context, date string) ([]domain.StaffWithLoad, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /staff/load/with-appointments", date), func(ctx context.Context) ([]domain.StaffWithLoad, domain.TagSet, error) {
		items, err := r.gw.StaffLoad(ctx, date)
		if err != nil {
			return nil, nil, err
		}
		provides := listProvides(domain.TagStaff, items, func(s domain.StaffWithLoad) string { return s.ID })
		provides.Add(domain.ListTag(domain.TagQueue))
		return items, provides, nil
	})
}

// CreateStaff creates a staff member.
func (r *Resources) CreateStaff(ctx context.Context, p domain.CreateStaffPayload) (*domain.Staff, error) {
	return runMutation(ctx, r.qc, "staff.create", staffWriteTags(), func(ctx context.Context) (*domain.Staff, error) {
		return r.gw.CreateStaff(ctx, p)
	})
}

// UpdateStaff patches a staff member.
func (r *Resources) UpdateStaff(ctx context.Context, id string, p domain.UpdateStaffPayload) (*domain.Staff, error) {
	return runMutation(ctx, r.qc, "staff.update", staffWriteTags(id), func(ctx context.Context) (*domain.Staff, error) {
		return r.gw.UpdateStaff(ctx, id, p)
	})
}

// DeleteStaff removes a staff member.
func (r *Resources) DeleteStaff(ctx context.Context, id string) error {
	_, err := runMutation(ctx, r.qc, "staff.delete", staffWriteTags(id), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.gw.DeleteStaff(ctx, id)
	})
	return err
}
