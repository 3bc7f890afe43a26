package users

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	StorageService contracts.StorageService
	MailerService  contracts.MailerService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userRepository contracts.UserRepository,
	storageService contracts.StorageService,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = &userUsecase{
			UserRepository: userRepository,
			StorageService: storageService,
			MailerService:  mailerService,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return userUsecaseInstance
}

func (uc *userUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", request.Email))
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Password:  hashedPassword,
		Gender:    request.Gender,
		UserType:  models.UserType(request.UserType),
	}
	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		uc.Log.Error("userUsecase.Register error inserting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := utils.GenerateVerificationJWT(userID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.VerificationTokenExpTimeInHours)
	if err != nil {
		return nil, err
	}

	verifyURL := fmt.Sprintf("%s/verify?token=%s", uc.InternalConfig.App.FrontendDomain, token)
	email := &requests.EmailPayload{
		To:      user.Email,
		Subject: constvars.EmailVerifyAccountSubject,
		Body:    fmt.Sprintf(constvars.EmailBodyVerifyAccount, user.FullName(), verifyURL),
	}
	if err := uc.MailerService.SendEmail(ctx, email); err != nil {
		uc.Log.Warn("userUsecase.Register failed to enqueue verification email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}

	return &responses.RegisterUser{
		UserID:            userID,
		VerificationToken: token,
	}, nil
}

func (uc *userUsecase) VerifyEmail(ctx context.Context, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.VerifyEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	userID, err := utils.ParseVerificationJWT(token, uc.InternalConfig.JWT.Secret)
	if err != nil {
		return exceptions.ErrVerificationTokenInvalid(err)
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(fmt.Errorf("no user with id %s", userID))
	}
	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	return uc.UserRepository.UpdateUser(ctx, user)
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(fmt.Errorf("no user with id %s", userID))
	}
	return uc.buildProfile(ctx, user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(fmt.Errorf("no user with id %s", userID))
	}

	if request.FirstName != "" {
		user.FirstName = request.FirstName
	}
	if request.LastName != "" {
		user.LastName = request.LastName
	}
	if request.Gender != "" {
		user.Gender = request.Gender
	}
	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return uc.buildProfile(ctx, user), nil
}

func (uc *userUsecase) UploadProfilePicture(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*responses.UploadProfilePicture, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UploadProfilePicture called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(fmt.Errorf("no user with id %s", userID))
	}

	maxBytes := uc.InternalConfig.Minio.ProfilePictureMaxUploadSizeInMB * 1024 * 1024
	if header.Size > maxBytes {
		return nil, exceptions.ErrImageValidation(fmt.Errorf("file size %d exceeds limit %d", header.Size, maxBytes))
	}
	fileExtension := strings.ToLower(filepath.Ext(header.Filename))
	switch fileExtension {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, exceptions.ErrImageValidation(fmt.Errorf("unsupported extension %s", fileExtension))
	}

	objectName := utils.GenerateFileName("profile", userID, fileExtension)
	contentType := header.Header.Get(constvars.HeaderContentType)
	if err := uc.StorageService.PutObject(ctx, objectName, file, header.Size, contentType); err != nil {
		return nil, err
	}

	user.ProfileImage = objectName
	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInHours) * time.Hour
	url, err := uc.StorageService.PresignedGetURL(ctx, objectName, expiry)
	if err != nil {
		return nil, err
	}
	return &responses.UploadProfilePicture{
		ObjectName:      objectName,
		ProfileImageURL: url,
	}, nil
}

func (uc *userUsecase) buildProfile(ctx context.Context, user *models.User) *responses.UserProfile {
	profile := &responses.UserProfile{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Gender:     user.Gender,
		UserType:   string(user.UserType),
		IsVerified: user.IsVerified,
	}
	if user.ProfileImage != "" {
		expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInHours) * time.Hour
		if url, err := uc.StorageService.PresignedGetURL(ctx, user.ProfileImage, expiry); err == nil {
			profile.ProfileImageURL = url
		}
	}
	return profile
}
