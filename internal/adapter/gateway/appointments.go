package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// AppointmentFilter narrows an appointment listing. Zero values are
// omitted from the query string.
type AppointmentFilter struct {
	Date    string `json:"date,omitempty"`
	StaffID string `json:"staffId,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (f AppointmentFilter) values() url.Values {
	query := url.Values{}
	if f.Date != "" {
		query.Set("date", f.Date)
	}
	if f.StaffID != "" {
		query.Set("staffId", f.StaffID)
	}
	if f.Status != "" {
		query.Set("status", f.Status)
	}
	return query
}

// ListAppointments fetches appointments matching the filter.
func (c *Client) ListAppointments(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", f.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAppointmentsWithDetails fetches appointments joined with their
// service and staff records.
func (c *Client) ListAppointmentsWithDetails(ctx context.Context) ([]domain.AppointmentWithDetails, error) {
	var out []domain.AppointmentWithDetails
	if err := c.do(ctx, http.MethodGet, "/appointments/list/with-details", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppointment fetches a single appointment.
func (c *Client) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAppointmentDetails fetches one appointment with its joins.
func (c *Client) GetAppointmentDetails(ctx context.Context, id string) (*domain.AppointmentWithDetails, error) {
	var out domain.AppointmentWithDetails
	if err := c.do(ctx, http.MethodGet, "/appointments/"+id+"/details", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, p domain.CreateAppointmentPayload) (*domain.Appointment, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppointment patches an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id string, p domain.UpdateAppointmentPayload) (*domain.Appointment, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+id, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment transitions an appointment to cancelled.
func (c *Client) CancelAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return c.transition(ctx, id, "cancel")
}

// CompleteAppointment transitions an appointment to completed.
func (c *Client) CompleteAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return c.transition(ctx, id, "complete")
}

// NoShowAppointment marks an appointment as a no-show.
func (c *Client) NoShowAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return c.transition(ctx, id, "no-show")
}

func (c *Client) transition(ctx context.Context, id, action string) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+id+"/"+action, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableStaff fetches staff able to take a service on a date.
func (c *Client) AvailableStaff(ctx context.Context, serviceID, date string) ([]domain.Staff, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var out []domain.Staff
	if err := c.do(ctx, http.MethodGet, "/appointments/available-staff/"+serviceID, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
