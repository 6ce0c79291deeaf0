package usecase

import (
	"context"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// ListAppointments fetches appointments matching the filter. Distinct
// filters get distinct cache entries.
func (r *Resources) ListAppointments(ctx context.Context, f gateway.AppointmentFilter) ([]domain.Appointment, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /appointments", f), func(ctx context.Context) ([]domain.Appointment, domain.TagSet, error) {
		items, err := r.gw.ListAppointments(ctx, f)
		if err != nil {
			return nil, nil, err
		}
		return items, listProvides(domain.TagAppointment, items, func(a domain.Appointment) string { return a.ID }), nil
	})
}

// ListAppointmentsWithDetails fetches appointments joined with service
// and staff rows, so the entry also carries those partitions' tags.
func (r *Resources) ListAppointmentsWithDetails(ctx context.Context) ([]domain.AppointmentWithDetails, error) {
	return runQuery(ctx, r.qc, "GET /appointments/list/with-details", func(ctx context.Context) ([]domain.AppointmentWithDetails, domain.TagSet, error) {
		items, err := r.gw.ListAppointmentsWithDetails(ctx)
		if err != nil {
			return nil, nil, err
		}
		provides := listProvides(domain.TagAppointment, items, func(a domain.AppointmentWithDetails) string { return a.ID })
		provides.Add(domain.ListTag(domain.TagService), domain.ListTag(domain.TagStaff))
		return items, provides, nil
	})
}

// GetAppointment fetches one appointment.
func (r *Resources) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /appointments/:id", id), func(ctx context.Context) (*domain.Appointment, domain.TagSet, error) {
		item, err := r.gw.GetAppointment(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return item, domain.NewTagSet(domain.EntityTag(domain.TagAppointment, item.ID)), nil
	})
}

// GetAppointmentDetails fetches one appointment with its joins.
func (r *Resources) GetAppointmentDetails(ctx context.Context, id string) (*domain.AppointmentWithDetails, error) {
	return runQuery(ctx, r.qc, cache.Key("GET /appointments/:id/details", id), func(ctx context.Context) (*domain.AppointmentWithDetails, domain.TagSet, error) {
		item, err := r.gw.GetAppointmentDetails(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return item, domain.NewTagSet(domain.EntityTag(domain.TagAppointment, item.ID)), nil
	})
}

// AvailableStaff fetches staff able to take a service on a date.
func (r *Resources) AvailableStaff(ctx context.Context, serviceID, date string) ([]domain.Staff, error) {
	args := struct {
		ServiceID string `json:"serviceId"`
		Date      string `json:"date"`
	}{serviceID, date}
	return runQuery(ctx, r.qc, cache.Key("GET /appointments/available-staff", args), func(ctx context.Context) ([]domain.Staff, domain.TagSet, error) {
		items, err := r.gw.AvailableStaff(ctx, serviceID, date)
		if err != nil {
			return nil, nil, err
		}
		provides := listProvides(domain.TagStaff, items, func(s domain.Staff) string { return s.ID })
		provides.Add(domain.EntityTag(domain.TagService, serviceID))
		return items, provides, nil
	})
}

// CreateAppointment books an appointment. No entity id exists yet, so
// only the list tag and the cross-cutting partitions are staled.
func (r *Resources) CreateAppointment(ctx context.Context, p domain.CreateAppointmentPayload) (*domain.Appointment, error) {
	return runMutation(ctx, r.qc, "appointments.create", appointmentWriteTags(), func(ctx context.Context) (*domain.Appointment, error) {
		return r.gw.CreateAppointment(ctx, p)
	})
}

// UpdateAppointment patches an appointment.
func (r *Resources) UpdateAppointment(ctx context.Context, id string, p domain.UpdateAppointmentPayload) (*domain.Appointment, error) {
	return runMutation(ctx, r.qc, "appointments.update", appointmentWriteTags(id), func(ctx context.Context) (*domain.Appointment, error) {
		return r.gw.UpdateAppointment(ctx, id, p)
	})
}

// CancelAppointment cancels an appointment.
func (r *Resources) CancelAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return runMutation(ctx, r.qc, "appointments.cancel", appointmentWriteTags(id), func(ctx context.Context) (*domain.Appointment, error) {
		return r.gw.CancelAppointment(ctx, id)
	})
}

// CompleteAppointment completes an appointment.
func (r *Resources) CompleteAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return runMutation(ctx, r.qc, "appointments.complete", appointmentWriteTags(id), func(ctx context.Context) (*domain.Appointment, error) {
		return r.gw.CompleteAppointment(ctx, id)
	})
}

// NoShowAppointment marks an appointment as a no-show.
func (r *Resources) NoShowAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return runMutation(ctx, r.qc, "appointments.no-show", appointmentWriteTags(id), func(ctx context.Context) (*domain.Appointment, error) {
		return r.gw.NoShowAppointment(ctx, id)
	})
}
