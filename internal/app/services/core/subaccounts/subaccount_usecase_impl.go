package subaccounts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const subaccountLockTTL = 30 * time.Second

type subaccountUsecase struct {
	SubaccountRepository contracts.SubaccountRepository
	PaymentGateway       contracts.PaymentGatewayService
	LockerService        contracts.LockerService
	Log                  *zap.Logger
}

var (
	subaccountUsecaseInstance contracts.SubaccountUsecase
	onceSubaccountUsecase     sync.Once
)

func NewSubaccountUsecase(
	subaccountRepository contracts.SubaccountRepository,
	paymentGateway contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	logger *zap.Logger,
) contracts.SubaccountUsecase {
	onceSubaccountUsecase.Do(func() {
		subaccountUsecaseInstance = &subaccountUsecase{
			SubaccountRepository: subaccountRepository,
			PaymentGateway:       paymentGateway,
			LockerService:        lockerService,
			Log:                  logger,
		}
	})
	return subaccountUsecaseInstance
}

// CreateSubaccount provisions a payout subaccount at the gateway. The redis
// lock keeps double-submits from creating two gateway subaccounts for the
// same owner; the gateway call is not idempotent.
func (uc *subaccountUsecase) CreateSubaccount(ctx context.Context, request *requests.CreateSubaccount) (*models.Subaccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("subaccountUsecase.CreateSubaccount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeySubaccountLockFormat, request.UserID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, subaccountLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSubaccountAlreadyExist(fmt.Errorf("subaccount creation already in progress for user %s", request.UserID))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("subaccountUsecase.CreateSubaccount failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.SubaccountRepository.FindByUserID(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrSubaccountAlreadyExist(fmt.Errorf("user %s already has subaccount %s", request.UserID, existing.SubaccountCode))
	}

	gatewayRequest := &requests.PaystackCreateSubaccount{
		BusinessName:     request.BusinessName,
		SettlementBank:   request.SettlementBank,
		AccountNumber:    request.AccountNumber,
		PercentageCharge: request.PercentageCharge,
	}
	result, err := uc.PaymentGateway.CreateSubaccount(ctx, gatewayRequest)
	if err != nil {
		uc.Log.Error("subaccountUsecase.CreateSubaccount gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	subaccount := &models.Subaccount{
		UserID:           request.UserID,
		BusinessName:     request.BusinessName,
		AccountNumber:    request.AccountNumber,
		SettlementBank:   request.SettlementBank,
		PercentageCharge: request.PercentageCharge,
		Currency:         request.Currency,
		SubaccountCode:   result.Data.SubaccountCode,
	}
	return uc.SubaccountRepository.CreateSubaccount(ctx, subaccount)
}

func (uc *subaccountUsecase) GetSubaccountByUserID(ctx context.Context, userID string) (*models.Subaccount, error) {
	subaccount, err := uc.SubaccountRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subaccount == nil {
		return nil, exceptions.ErrSubaccountNotExist(fmt.Errorf("no subaccount for user %s", userID))
	}
	return subaccount, nil
}
