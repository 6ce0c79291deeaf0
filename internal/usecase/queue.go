package usecase

import (
	"context"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// WaitingQueue fetches the waiting queue in server order.
func (r *Resources) WaitingQueue(ctx context.Context) ([]domain.WaitingAppointment, error) {
	return runQuery(ctx, r.qc, "GET /queue/waiting", func(ctx context.Context) ([]domain.WaitingAppointment, domain.TagSet, error) {
		items, err := r.gw.WaitingQueue(ctx)
		if err != nil {
			return nil, nil, err
		}
		provides := domain.NewTagSet(domain.ListTag(domain.TagQueue))
		for _, item := range items {
			provides.Add(domain.EntityTag(domain.TagAppointment, item.ID))
		}
		return items, provides, nil
	})
}

// AssignFromQueue hands the earliest waiting appointment to a staff
// member and stales every partition the assignment touches.
func (r *Resources) AssignFromQueue(ctx context.Context, p domain.AssignQueuePayload) (*domain.WaitingAppointment, error) {
	return runMutation(ctx, r.qc, "queue.assign", queueAssignTags(), func(ctx context.Context) (*domain.WaitingAppointment, error) {
		return r.gw.AssignFromQueue(ctx, p)
	})
}
