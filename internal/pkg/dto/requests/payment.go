package requests

// StartPayment is the payload for POST /payments/start-payment. Amount is in
// the minor currency unit. The booking metadata rides to the gateway and comes
// back on the webhook.
type StartPayment struct {
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"full_name" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
	ProfessionalID string `json:"professionalId" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required"`
}

// ConfirmAppointmentPayment is the payload for POST /payments/{appointmentId}/confirm.
type ConfirmAppointmentPayment struct {
	Reference string `json:"reference" validate:"required"`
}
