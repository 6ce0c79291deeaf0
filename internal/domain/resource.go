package domain

import "time"

// Appointment lifecycle statuses as reported by the server.
const (
	StatusScheduled = "scheduled"
	StatusWaiting   = "waiting"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Service is a bookable service offered by the clinic.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// Staff is a staff member who can be assigned appointments.
type Staff struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	MaxCapacity int       `json:"maxCapacity"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// StaffWithLoad is a staff member annotated with server-computed load
// figures for a given date.
type StaffWithLoad struct {
	Staff
	CurrentLoad  int           `json:"currentLoad"`
	IsAtCapacity bool          `json:"isAtCapacity"`
	Appointments []Appointment `json:"appointments,omitempty"`
}

// Appointment is a customer booking.
type Appointment struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	ServiceID     string    `json:"serviceId"`
	StaffID       string    `json:"staffId,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime,omitempty"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// AppointmentWithDetails joins an appointment with its service and
// assigned staff member.
type AppointmentWithDetails struct {
	Appointment
	Service *Service `json:"service,omitempty"`
	Staff   *Staff   `json:"staff,omitempty"`
}

// WaitingAppointment is a queued appointment with its server-computed
// position in the waiting queue.
type WaitingAppointment struct {
	Appointment
	QueuePosition int `json:"queuePosition"`
}

// DashboardSummary holds aggregate counts for a date range.
type DashboardSummary struct {
	TotalAppointments int `json:"totalAppointments"`
	Completed         int `json:"completed"`
	Scheduled         int `json:"scheduled"`
	Pending           int `json:"pending"`
	WaitingQueueCount int `json:"waitingQueueCount"`
}

// StaffLoadEntry is one row of the dashboard staff-load report.
type StaffLoadEntry struct {
	StaffID     string `json:"staffId"`
	StaffName   string `json:"staffName"`
	Assigned    int    `json:"assigned"`
	Completed   int    `json:"completed"`
	CurrentLoad int    `json:"currentLoad"`
}

// ActivityLog is one audit entry shown on the dashboard.
type ActivityLog struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityId,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
