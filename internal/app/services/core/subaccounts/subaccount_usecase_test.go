package subaccounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubaccountRepo struct {
	byUser map[string]*models.Subaccount
}

func (r *stubSubaccountRepo) CreateSubaccount(_ context.Context, subaccount *models.Subaccount) (*models.Subaccount, error) {
	stored := *subaccount
	stored.ID = "sub-1"
	r.byUser[subaccount.UserID] = &stored
	return &stored, nil
}

func (r *stubSubaccountRepo) FindByUserID(_ context.Context, userID string) (*models.Subaccount, error) {
	return r.byUser[userID], nil
}

type stubLocker struct {
	acquired    bool
	lockCalls   int
	unlockCalls int
}

func (l *stubLocker) TryLock(context.Context, string, time.Duration) (bool, string, error) {
	l.lockCalls++
	return l.acquired, "lock-token", nil
}

func (l *stubLocker) Unlock(context.Context, string, string) error {
	l.unlockCalls++
	return nil
}

type stubSubaccountGateway struct {
	createErr   error
	createCalls int
}

func (g *stubSubaccountGateway) InitializeTransaction(context.Context, *requests.PaystackInitializeTransaction) (*responses.StartPayment, error) {
	return nil, errors.New("not used")
}

func (g *stubSubaccountGateway) VerifyTransaction(context.Context, string) (*responses.VerifiedTransaction, error) {
	return nil, errors.New("not used")
}

func (g *stubSubaccountGateway) ParseWebhookEvent([]byte, string) (*requests.PaystackWebhookEvent, error) {
	return nil, errors.New("not used")
}

func (g *stubSubaccountGateway) CreateSubaccount(context.Context, *requests.PaystackCreateSubaccount) (*responses.PaystackCreateSubaccount, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	result := &responses.PaystackCreateSubaccount{Status: true}
	result.Data.SubaccountCode = "ACCT_test123"
	return result, nil
}

func subaccountRequest() *requests.CreateSubaccount {
	return &requests.CreateSubaccount{
		UserID:           "user-1",
		BusinessName:     "Ada Obi Clinic",
		AccountNumber:    "0123456789",
		SettlementBank:   "058",
		PercentageCharge: 2.5,
		Currency:         "NGN",
	}
}

func TestCreateSubaccount(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions at the gateway and stores the code", func(t *testing.T) {
		repo := &stubSubaccountRepo{byUser: make(map[string]*models.Subaccount)}
		locker := &stubLocker{acquired: true}
		gateway := &stubSubaccountGateway{}
		usecase := &subaccountUsecase{
			SubaccountRepository: repo,
			PaymentGateway:       gateway,
			LockerService:        locker,
			Log:                  zap.NewNop(),
		}

		created, err := usecase.CreateSubaccount(ctx, subaccountRequest())
		require.NoError(t, err)
		assert.Equal(t, "ACCT_test123", created.SubaccountCode)
		assert.Equal(t, 1, gateway.createCalls)
		assert.Equal(t, 1, locker.unlockCalls)
	})

	t.Run("lock contention is reported as already exists", func(t *testing.T) {
		repo := &stubSubaccountRepo{byUser: make(map[string]*models.Subaccount)}
		locker := &stubLocker{acquired: false}
		gateway := &stubSubaccountGateway{}
		usecase := &subaccountUsecase{
			SubaccountRepository: repo,
			PaymentGateway:       gateway,
			LockerService:        locker,
			Log:                  zap.NewNop(),
		}

		_, err := usecase.CreateSubaccount(ctx, subaccountRequest())
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Zero(t, gateway.createCalls)
		assert.Zero(t, locker.unlockCalls)
	})

	t.Run("existing subaccount blocks a second gateway call", func(t *testing.T) {
		repo := &stubSubaccountRepo{byUser: map[string]*models.Subaccount{
			"user-1": {UserID: "user-1", SubaccountCode: "ACCT_existing"},
		}}
		locker := &stubLocker{acquired: true}
		gateway := &stubSubaccountGateway{}
		usecase := &subaccountUsecase{
			SubaccountRepository: repo,
			PaymentGateway:       gateway,
			LockerService:        locker,
			Log:                  zap.NewNop(),
		}

		_, err := usecase.CreateSubaccount(ctx, subaccountRequest())
		require.Error(t, err)
		assert.Zero(t, gateway.createCalls)
		assert.Equal(t, 1, locker.unlockCalls)
	})

	t.Run("gateway failure releases the lock and stores nothing", func(t *testing.T) {
		repo := &stubSubaccountRepo{byUser: make(map[string]*models.Subaccount)}
		locker := &stubLocker{acquired: true}
		gateway := &stubSubaccountGateway{createErr: errors.New("paystack responded 503")}
		usecase := &subaccountUsecase{
			SubaccountRepository: repo,
			PaymentGateway:       gateway,
			LockerService:        locker,
			Log:                  zap.NewNop(),
		}

		_, err := usecase.CreateSubaccount(ctx, subaccountRequest())
		require.Error(t, err)
		assert.Empty(t, repo.byUser)
		assert.Equal(t, 1, locker.unlockCalls)
	})
}

func TestGetSubaccountByUserID(t *testing.T) {
	ctx := context.Background()
	repo := &stubSubaccountRepo{byUser: map[string]*models.Subaccount{
		"user-1": {UserID: "user-1", SubaccountCode: "ACCT_existing"},
	}}
	usecase := &subaccountUsecase{
		SubaccountRepository: repo,
		Log:                  zap.NewNop(),
	}

	found, err := usecase.GetSubaccountByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ACCT_existing", found.SubaccountCode)

	_, err = usecase.GetSubaccountByUserID(ctx, "user-2")
	require.Error(t, err)
	customErr := &exceptions.CustomError{}
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}
