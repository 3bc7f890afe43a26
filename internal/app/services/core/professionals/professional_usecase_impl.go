package professionals

import (
	"context"
	"fmt"
	"sync"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type professionalUsecase struct {
	ProfessionalRepository contracts.ProfessionalRepository
	AppointmentRepository  contracts.AppointmentRepository
	Log                    *zap.Logger
}

var (
	professionalUsecaseInstance contracts.ProfessionalUsecase
	onceProfessionalUsecase     sync.Once
)

func NewProfessionalUsecase(
	professionalRepository contracts.ProfessionalRepository,
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
) contracts.ProfessionalUsecase {
	onceProfessionalUsecase.Do(func() {
		professionalUsecaseInstance = &professionalUsecase{
			ProfessionalRepository: professionalRepository,
			AppointmentRepository:  appointmentRepository,
			Log:                    logger,
		}
	})
	return professionalUsecaseInstance
}

func (uc *professionalUsecase) CreateProfessional(ctx context.Context, request *requests.CreateProfessional) (*models.Professional, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("professionalUsecase.CreateProfessional called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
	)

	existing, err := uc.ProfessionalRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("professional email %s already registered", request.Email))
	}

	professional := &models.Professional{
		UserID:            request.UserID,
		FirstName:         request.FirstName,
		LastName:          request.LastName,
		Email:             request.Email,
		Category:          request.Category,
		ConsultationFee:   request.ConsultationFee,
		YearsOfExperience: request.YearsOfExperience,
		Certifications:    request.Certifications,
		Bio:               request.Bio,
	}
	return uc.ProfessionalRepository.CreateProfessional(ctx, professional)
}

func (uc *professionalUsecase) GetProfessionalByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	professional, err := uc.ProfessionalRepository.FindByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, exceptions.ErrProfessionalNotExist(fmt.Errorf("no professional with id %s", professionalID))
	}
	return professional, nil
}

func (uc *professionalUsecase) ListProfessionals(ctx context.Context, request *requests.ListProfessionals) ([]models.Professional, int, error) {
	return uc.ProfessionalRepository.Find(ctx, request)
}

func (uc *professionalUsecase) UpdateAvailability(ctx context.Context, professionalID string, request *requests.UpdateAvailability) (*models.Professional, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("professionalUsecase.UpdateAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfessionalIDKey, professionalID),
	)

	professional, err := uc.ProfessionalRepository.FindByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, exceptions.ErrProfessionalNotExist(fmt.Errorf("no professional with id %s", professionalID))
	}

	professional.Availability = request.Availability
	if request.Slots != nil {
		slots := make([]models.ProfessionalSlot, 0, len(request.Slots))
		for _, slot := range request.Slots {
			slots = append(slots, models.ProfessionalSlot{Day: slot.Day, Time: slot.Time})
		}
		professional.Slots = slots
	}

	if err := uc.ProfessionalRepository.UpdateProfessional(ctx, professional); err != nil {
		return nil, err
	}
	return professional, nil
}

// GetDashboardSummary aggregates appointment counts per status. Revenue is
// the confirmed count priced at the current consultation fee.
func (uc *professionalUsecase) GetDashboardSummary(ctx context.Context, professionalID string) (*responses.DashboardSummary, error) {
	professional, err := uc.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	summary := &responses.DashboardSummary{}
	for status, target := range map[models.AppointmentStatus]*int{
		models.AppointmentPending:   &summary.PendingAppointments,
		models.AppointmentConfirmed: &summary.ConfirmedAppointments,
		models.AppointmentCancelled: &summary.CancelledAppointments,
	} {
		count, err := uc.AppointmentRepository.CountByProfessional(ctx, professionalID, status)
		if err != nil {
			return nil, err
		}
		*target = count
	}
	summary.TotalRevenue = int64(summary.ConfirmedAppointments) * professional.ConsultationFee
	return summary, nil
}
