package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

// PaymentUsecase is the activation coordinator: the only path by which a
// payment event turns into a confirmed appointment.
type PaymentUsecase interface {
	StartPayment(ctx context.Context, request *requests.StartPayment) (*responses.StartPayment, error)
	CreatePaymentAfterCheckout(ctx context.Context, reference string) (*models.Payment, error)
	GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error)
	HandleChargeEvent(ctx context.Context, event *requests.PaystackWebhookEvent) error
	ConfirmAppointmentPayment(ctx context.Context, appointmentID, reference string) (*models.Appointment, error)
}

// PaymentRepository is the durable ledger, keyed by gateway reference.
type PaymentRepository interface {
	// RecordIfAbsent inserts the payment unless a document with the same
	// reference already exists. It must be a single atomic check-and-insert
	// backed by the unique index, never a read followed by a write.
	RecordIfAbsent(ctx context.Context, payment *models.Payment) (created bool, record *models.Payment, err error)
	// MarkSuccessIfPending promotes a non-terminal record to success in one
	// guarded update. A nil document means no pending record matched, either
	// because the reference is unknown or the record is already terminal.
	MarkSuccessIfPending(ctx context.Context, reference string) (*models.Payment, error)
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	EnsureIndexes(ctx context.Context) error
}
