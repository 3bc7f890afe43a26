package professionals

import (
	"context"
	"fmt"
	"testing"

	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProfessionalRepo struct {
	byID    map[string]*models.Professional
	byEmail map[string]*models.Professional
	nextID  int
}

func newStubProfessionalRepo() *stubProfessionalRepo {
	return &stubProfessionalRepo{
		byID:    make(map[string]*models.Professional),
		byEmail: make(map[string]*models.Professional),
	}
}

func (r *stubProfessionalRepo) seed(professional *models.Professional) *models.Professional {
	r.nextID++
	stored := *professional
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("prof-%d", r.nextID)
	}
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return &stored
}

func (r *stubProfessionalRepo) CreateProfessional(_ context.Context, professional *models.Professional) (*models.Professional, error) {
	return r.seed(professional), nil
}

func (r *stubProfessionalRepo) FindByID(_ context.Context, id string) (*models.Professional, error) {
	return r.byID[id], nil
}

func (r *stubProfessionalRepo) FindByEmail(_ context.Context, email string) (*models.Professional, error) {
	return r.byEmail[email], nil
}

func (r *stubProfessionalRepo) Find(_ context.Context, _ *requests.ListProfessionals) ([]models.Professional, int, error) {
	var out []models.Professional
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *stubProfessionalRepo) UpdateProfessional(_ context.Context, professional *models.Professional) error {
	r.byID[professional.ID] = professional
	return nil
}

type countingAppointmentRepo struct {
	counts map[models.AppointmentStatus]int
}

func (r *countingAppointmentRepo) CreateAppointment(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	return appointment, nil
}

func (r *countingAppointmentRepo) FindByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) FindByUserID(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) FindByProfessionalID(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) ConfirmPending(context.Context, string, string) (*models.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) CancelPending(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) CountByProfessional(_ context.Context, _ string, status models.AppointmentStatus) (int, error) {
	return r.counts[status], nil
}

func TestCreateProfessional(t *testing.T) {
	ctx := context.Background()
	repo := newStubProfessionalRepo()
	usecase := &professionalUsecase{
		ProfessionalRepository: repo,
		AppointmentRepository:  &countingAppointmentRepo{},
		Log:                    zap.NewNop(),
	}

	request := &requests.CreateProfessional{
		UserID:          "user-1",
		FirstName:       "Ngozi",
		LastName:        "Eze",
		Email:           "ngozi@example.com",
		Category:        "dermatology",
		ConsultationFee: 25000,
	}

	created, err := usecase.CreateProfessional(ctx, request)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = usecase.CreateProfessional(ctx, request)
	require.Error(t, err, "second registration with the same email must fail")
}

func TestGetDashboardSummary(t *testing.T) {
	ctx := context.Background()
	repo := newStubProfessionalRepo()
	professional := repo.seed(&models.Professional{
		Email:           "ngozi@example.com",
		ConsultationFee: 25000,
	})

	usecase := &professionalUsecase{
		ProfessionalRepository: repo,
		AppointmentRepository: &countingAppointmentRepo{counts: map[models.AppointmentStatus]int{
			models.AppointmentPending:   3,
			models.AppointmentConfirmed: 4,
			models.AppointmentCancelled: 1,
		}},
		Log: zap.NewNop(),
	}

	summary, err := usecase.GetDashboardSummary(ctx, professional.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.PendingAppointments)
	assert.Equal(t, 4, summary.ConfirmedAppointments)
	assert.Equal(t, 1, summary.CancelledAppointments)
	assert.Equal(t, int64(4*25000), summary.TotalRevenue)
}

func TestUpdateAvailability(t *testing.T) {
	ctx := context.Background()
	repo := newStubProfessionalRepo()
	professional := repo.seed(&models.Professional{Email: "ngozi@example.com"})

	usecase := &professionalUsecase{
		ProfessionalRepository: repo,
		AppointmentRepository:  &countingAppointmentRepo{},
		Log:                    zap.NewNop(),
	}

	updated, err := usecase.UpdateAvailability(ctx, professional.ID, &requests.UpdateAvailability{
		Availability: true,
		Slots: []requests.AvailabilitySlot{
			{Day: "Monday", Time: "10:00"},
			{Day: "Wednesday", Time: "14:00"},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.Availability)
	require.Len(t, updated.Slots, 2)
	assert.Equal(t, "Monday", updated.Slots[0].Day)
}
