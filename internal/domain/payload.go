package domain

// Mutation payloads. Validation tags are enforced client-side before a
// request is issued; server-side validation errors still surface as
// ErrValidation with the server's message.

// RegisterPayload starts account registration; the server replies with
// the email an OTP was sent to.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyOTPPayload confirms the one-time code sent at registration.
type VerifyOTPPayload struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ResendOTPPayload requests a fresh one-time code.
type ResendOTPPayload struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginPayload authenticates with email and password.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateServicePayload creates a bookable service.
type CreateServicePayload struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// UpdateServicePayload patches a service; nil fields are left untouched.
type UpdateServicePayload struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// CreateStaffPayload creates a staff member.
type CreateStaffPayload struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Specialty   string `json:"specialty,omitempty"`
	MaxCapacity int    `json:"maxCapacity" validate:"required,gt=0"`
}

// UpdateStaffPayload patches a staff member; nil fields are left untouched.
type UpdateStaffPayload struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Specialty   *string `json:"specialty,omitempty"`
	MaxCapacity *int    `json:"maxCapacity,omitempty" validate:"omitempty,gt=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateAppointmentPayload books an appointment. StaffID is optional;
// without one the appointment enters the waiting queue.
type CreateAppointmentPayload struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	ServiceID     string `json:"serviceId" validate:"required"`
	StaffID       string `json:"staffId,omitempty"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"startTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateAppointmentPayload patches an appointment; nil fields are left
// untouched.
type UpdateAppointmentPayload struct {
	CustomerName  *string `json:"customerName,omitempty" validate:"omitempty,min=1"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	ServiceID     *string `json:"serviceId,omitempty"`
	StaffID       *string `json:"staffId,omitempty"`
	Date          *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string `json:"startTime,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// AssignQueuePayload assigns the earliest waiting appointment to a
// staff member. Which appointment that is stays a server decision.
type AssignQueuePayload struct {
	StaffID string `json:"staffId" validate:"required"`
}
