package usecase

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// ListServices fetches all services through the cache.
func (r *Resources) ListServices(ctx context.Context) ([]domain.Service, error) {
	return runQuery(ctx, r.qc, "GET /services", func(ctx context.Context) ([]domain.Service, domain.TagSet, error) {
		items, err := r.gw.ListServices(ctx)
		if err != nil {
			return nil, nil, err
		}
		return items, listProvides(domain.TagService, items, func(s domain.Service) string { return s.ID }), nil
	})
}

// GetService resolves one service from the cached listing. The API has
// no single-service endpoint, so a miss there is a miss here.
func (r *Resources) GetService(ctx context.Context, id string) (*domain.Service, error) {
	items, err := r.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			s := items[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("service %s: %w", id, domain.ErrNotFound)
}

// CreateService creates a service and stales the service list plus the
// partitions derived from it.
func (r *Resources) CreateService(ctx context.Context, p domain.CreateServicePayload) (*domain.Service, error) {
	return runMutation(ctx, r.qc, "services.create", serviceWriteTags(), func(ctx context.Context) (*domain.Service, error) {
		return r.gw.CreateService(ctx, p)
	})
}

// UpdateService patches a service.
func (r *Resources) UpdateService(ctx context.Context, id string, p domain.UpdateServicePayload) (*domain.Service, error) {
	return runMutation(ctx, r.qc, "services.update", serviceWriteTags(id), func(ctx context.Context) (*domain.Service, error) {
		return r.gw.UpdateService(ctx, id, p)
	})
}

// DeleteService removes a service.
func (r *Resources) DeleteService(ctx context.Context, id string) error {
	_, err := runMutation(ctx, r.qc, "services.delete", serviceWriteTags(id), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.gw.DeleteService(ctx, id)
	})
	return err
}
