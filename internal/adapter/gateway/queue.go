package gateway

import (
	"context"
	"net/http"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// WaitingQueue fetches the waiting queue in server order.
func (c *Client) WaitingQueue(ctx context.Context) ([]domain.WaitingAppointment, error) {
	var out []domain.WaitingAppointment
	if err := c.do(ctx, http.MethodGet, "/queue/waiting", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignFromQueue assigns the earliest waiting appointment to a staff
// member. The pick is a server decision; the client only names the
// staff member.
func (c *Client) AssignFromQueue(ctx context.Context, p domain.AssignQueuePayload) (*domain.WaitingAppointment, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}
	var out domain.WaitingAppointment
	if err := c.do(ctx, http.MethodPost, "/queue/assign", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
