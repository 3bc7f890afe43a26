package requests

// CreateAppointment books a pending appointment ahead of payment.
type CreateAppointment struct {
	UserID         string `json:"userId" validate:"required"`
	ProfessionalID string `json:"professionalId" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required"`
}
