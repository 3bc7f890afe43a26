package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
)

type SubaccountUsecase interface {
	CreateSubaccount(ctx context.Context, request *requests.CreateSubaccount) (*models.Subaccount, error)
	GetSubaccountByUserID(ctx context.Context, userID string) (*models.Subaccount, error)
}

type SubaccountRepository interface {
	CreateSubaccount(ctx context.Context, subaccount *models.Subaccount) (*models.Subaccount, error)
	FindByUserID(ctx context.Context, userID string) (*models.Subaccount, error)
}
