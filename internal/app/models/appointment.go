package models

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is mutated exclusively through the payment usecase once a
// payment event exists; paymentReference is write-once.
type Appointment struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	UserID           string            `json:"userId" bson:"userId"`
	ProfessionalID   string            `json:"professionalId" bson:"professionalId"`
	Date             string            `json:"date" bson:"date"`
	Time             string            `json:"time" bson:"time"`
	Status           AppointmentStatus `json:"status" bson:"status"`
	PaymentReference string            `json:"paymentReference,omitempty" bson:"paymentReference,omitempty"`
	TimeModel        `bson:",inline"`
}
