package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// ListStaff fetches all staff members.
func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	if err := c.do(ctx, http.MethodGet, "/staff", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStaff fetches a single staff member.
func (c *Client) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	var out domain.Staff
	if err := c.do(ctx, http.MethodGet, "/staff/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStaff creates a staff member.
func (c *Client) CreateStaff(ctx context.Context, p domain.CreateStaffPayload) (*domain.Staff, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Staff
	if err := c.do(ctx, http.MethodPost, "/staff", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStaff patches a staff member.
func (c *Client) UpdateStaff(ctx context.Context, id string, p domain.UpdateStaffPayload) (*domain.Staff, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Staff
	if err := c.do(ctx, http.MethodPatch, "/staff/"+id, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStaff removes a staff member.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/staff/"+id, nil, nil, nil)
}

// StaffLoad fetches staff annotated with server-computed load for a
// date. An empty date means today, server-side.
func (c *Client) StaffLoad(ctx context.Context, date string) ([]domain.StaffWithLoad, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var out []domain.StaffWithLoad
	if err := c.do(ctx, http.MethodGet, "/staff/load/with-appointments", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
