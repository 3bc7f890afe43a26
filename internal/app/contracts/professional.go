package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type ProfessionalUsecase interface {
	CreateProfessional(ctx context.Context, request *requests.CreateProfessional) (*models.Professional, error)
	GetProfessionalByID(ctx context.Context, professionalID string) (*models.Professional, error)
	ListProfessionals(ctx context.Context, request *requests.ListProfessionals) ([]models.Professional, int, error)
	UpdateAvailability(ctx context.Context, professionalID string, request *requests.UpdateAvailability) (*models.Professional, error)
	GetDashboardSummary(ctx context.Context, professionalID string) (*responses.DashboardSummary, error)
}

type ProfessionalRepository interface {
	CreateProfessional(ctx context.Context, professional *models.Professional) (*models.Professional, error)
	FindByID(ctx context.Context, professionalID string) (*models.Professional, error)
	FindByEmail(ctx context.Context, email string) (*models.Professional, error)
	Find(ctx context.Context, request *requests.ListProfessionals) ([]models.Professional, int, error)
	UpdateProfessional(ctx context.Context, professional *models.Professional) error
}
