package usecase

import "github.com/clinicdesk/clinicctl/internal/domain"

// Cross-cutting invalidation tables. Appointments, staff load, queue
// occupancy, and dashboard aggregates are all derived server-side from
// overlapping state, so a write to one partition stales the others.

// appointmentWriteTags covers create/update/cancel/complete/no-show.
// The entity id is included when known (never on create).
func appointmentWriteTags(ids ...string) domain.TagSet {
	s := domain.NewTagSet(
		domain.ListTag(domain.TagAppointment),
		domain.TypeTag(domain.TagQueue),
		domain.TypeTag(domain.TagStaff),
		domain.TypeTag(domain.TagDashboard),
	)
	for _, id := range ids {
		s.Add(domain.EntityTag(domain.TagAppointment, id))
	}
	return s
}

// queueAssignTags covers the assign-from-queue mutation. The server
// mutates an appointment whose id the client does not know beforehand,
// so the whole appointment partition is staled.
func queueAssignTags() domain.TagSet {
	return domain.NewTagSet(
		domain.TypeTag(domain.TagQueue),
		domain.TypeTag(domain.TagAppointment),
		domain.TypeTag(domain.TagStaff),
		domain.TypeTag(domain.TagDashboard),
	)
}

// serviceWriteTags covers service create/update/delete.
func serviceWriteTags(ids ...string) domain.TagSet {
	s := domain.NewTagSet(
		domain.ListTag(domain.TagService),
		domain.TypeTag(domain.TagAppointment),
		domain.TypeTag(domain.TagQueue),
		domain.TypeTag(domain.TagDashboard),
	)
	for _, id := range ids {
		s.Add(domain.EntityTag(domain.TagService, id))
	}
	return s
}

// staffWriteTags covers staff create/update/delete.
func staffWriteTags(ids ...string) domain.TagSet {
	s := domain.NewTagSet(
		domain.ListTag(domain.TagStaff),
		domain.TypeTag(domain.TagAppointment),
		domain.TypeTag(domain.TagQueue),
		domain.TypeTag(domain.TagDashboard),
	)
	for _, id := range ids {
		s.Add(domain.EntityTag(domain.TagStaff, id))
	}
	return s
}

// allTags stales every partition; used on logout so the next session
// never reads another user's data.
func allTags() domain.TagSet {
	return domain.NewTagSet(
		domain.TypeTag(domain.TagAppointment),
		domain.TypeTag(domain.TagService),
		domain.TypeTag(domain.TagStaff),
		domain.TypeTag(domain.TagQueue),
		domain.TypeTag(domain.TagDashboard),
		domain.TypeTag(domain.TagUser),
	)
}
