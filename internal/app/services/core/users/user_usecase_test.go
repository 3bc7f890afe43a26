package users

import (
	"context"
	"fmt"
	"testing"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *models.User) (string, error) {
	r.nextID++
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return stored.ID, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.byEmail[email], nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	return r.byID[id], nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

type recordingMailer struct {
	sent    []requests.EmailPayload
	sendErr error
}

func (m *recordingMailer) SendEmail(_ context.Context, payload *requests.EmailPayload) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, *payload)
	return nil
}

func newUserFixture() (*userUsecase, *stubUserRepo, *recordingMailer) {
	repo := newStubUserRepo()
	mailer := &recordingMailer{}
	usecase := &userUsecase{
		UserRepository: repo,
		MailerService:  mailer,
		InternalConfig: &config.InternalConfig{
			App: config.App{FrontendDomain: "https://medibook.example.com"},
			JWT: config.JWT{
				Secret:                          "test-jwt-secret",
				VerificationTokenExpTimeInHours: 24,
			},
		},
		Log: zap.NewNop(),
	}
	return usecase, repo, mailer
}

func registerRequest() *requests.RegisterUser {
	return &requests.RegisterUser{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "s3cret-password",
		Gender:    "Female",
		UserType:  "client",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new registration stores a hashed password and sends verification mail", func(t *testing.T) {
		usecase, repo, mailer := newUserFixture()

		result, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, result.UserID)
		assert.NotEmpty(t, result.VerificationToken)

		stored := repo.byEmail["ada@example.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cret-password", stored.Password)
		assert.True(t, utils.CheckPasswordHash("s3cret-password", stored.Password))
		assert.False(t, stored.IsVerified)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ada@example.com", mailer.sent[0].To)
		assert.Contains(t, mailer.sent[0].Body, result.VerificationToken)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		usecase, _, _ := newUserFixture()

		_, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)

		_, err = usecase.Register(ctx, registerRequest())
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("mailer outage does not fail the registration", func(t *testing.T) {
		usecase, repo, mailer := newUserFixture()
		mailer.sendErr = fmt.Errorf("rabbitmq unavailable")

		result, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, result.UserID)
		assert.NotNil(t, repo.byEmail["ada@example.com"])
	})
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token marks the account verified", func(t *testing.T) {
		usecase, repo, _ := newUserFixture()
		result, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)

		require.NoError(t, usecase.VerifyEmail(ctx, result.VerificationToken))
		assert.True(t, repo.byID[result.UserID].IsVerified)

		// Verifying again is idempotent.
		require.NoError(t, usecase.VerifyEmail(ctx, result.VerificationToken))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		usecase, _, _ := newUserFixture()
		err := usecase.VerifyEmail(ctx, "not-a-token")
		require.Error(t, err)
	})
}
