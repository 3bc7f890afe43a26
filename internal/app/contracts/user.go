package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"mime/multipart"
)

type UserUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error)
	VerifyEmail(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.UserProfile, error)
	UploadProfilePicture(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*responses.UploadProfilePicture, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, userModel *models.User) (userID string, err error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userModel *models.User) error
}
