package gateway

import (
	"context"
	"net/http"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// ListServices fetches all services.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.do(ctx, http.MethodGet, "/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateService creates a service.
func (c *Client) CreateService(ctx context.Context, p domain.CreateServicePayload) (*domain.Service, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Service
	if err := c.do(ctx, http.MethodPost, "/services", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateService patches a service.
func (c *Client) UpdateService(ctx context.Context, id string, p domain.UpdateServicePayload) (*domain.Service, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Service
	if err := c.do(ctx, http.MethodPatch, "/services/"+id, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/services/"+id, nil, nil, nil)
}
