package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindByProfessionalID(ctx context.Context, professionalID string) ([]models.Appointment, error)
	// ConfirmPending flips a pending appointment to confirmed and stamps the
	// payment reference in one findOneAndUpdate. It returns nil (no error)
	// when no pending document matched, which callers treat as "lost the
	// race or already terminal".
	ConfirmPending(ctx context.Context, appointmentID, paymentReference string) (*models.Appointment, error)
	// CancelPending flips a pending appointment to cancelled; same matching
	// contract as ConfirmPending.
	CancelPending(ctx context.Context, appointmentID string) (*models.Appointment, error)
	CountByProfessional(ctx context.Context, professionalID string, status models.AppointmentStatus) (int, error)
}
