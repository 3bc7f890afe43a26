package appointments

import (
	"context"
	"fmt"
	"sync"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	ProfessionalRepository contracts.ProfessionalRepository
	Log                    *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	professionalRepository contracts.ProfessionalRepository,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository:  appointmentRepository,
			ProfessionalRepository: professionalRepository,
			Log:                    logger,
		}
	})
	return appointmentUsecaseInstance
}

// CreateAppointment books a pending appointment. Activation to confirmed is
// owned exclusively by the payment usecase.
func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
	)

	professional, err := uc.ProfessionalRepository.FindByID(ctx, request.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, exceptions.ErrProfessionalNotExist(fmt.Errorf("no professional with id %s", request.ProfessionalID))
	}

	appointment := &models.Appointment{
		UserID:         request.UserID,
		ProfessionalID: request.ProfessionalID,
		Date:           request.Date,
		Time:           request.Time,
		Status:         models.AppointmentPending,
	}
	created, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (uc *appointmentUsecase) GetAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(fmt.Errorf("no appointment with id %s", appointmentID))
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return uc.AppointmentRepository.FindByUserID(ctx, userID)
}

func (uc *appointmentUsecase) ListByProfessional(ctx context.Context, professionalID string) ([]models.Appointment, error) {
	return uc.AppointmentRepository.FindByProfessionalID(ctx, professionalID)
}

// CancelAppointment cancels a pending appointment. Confirmed and cancelled
// appointments are terminal for this path.
func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	cancelled, err := uc.AppointmentRepository.CancelPending(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, exceptions.ErrAppointmentNotExist(fmt.Errorf("no appointment with id %s", appointmentID))
		}
		return nil, exceptions.ErrAppointmentNotCancellable(fmt.Errorf("appointment %s is %s", appointmentID, current.Status))
	}
	return cancelled, nil
}
