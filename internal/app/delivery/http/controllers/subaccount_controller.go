package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SubaccountController struct {
	Log               *zap.Logger
	SubaccountUsecase contracts.SubaccountUsecase
}

var (
	subaccountControllerInstance *SubaccountController
	onceSubaccountController     sync.Once
)

func NewSubaccountController(logger *zap.Logger, subaccountUsecase contracts.SubaccountUsecase) *SubaccountController {
	onceSubaccountController.Do(func() {
		subaccountControllerInstance = &SubaccountController{
			Log:               logger,
			SubaccountUsecase: subaccountUsecase,
		}
	})
	return subaccountControllerInstance
}

func (ctrl *SubaccountController) CreateSubaccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateSubaccount)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	subaccount, err := ctrl.SubaccountUsecase.CreateSubaccount(ctx, request)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "subaccount_created", requestID,
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSubaccountSuccessMessage, subaccount)
}

func (ctrl *SubaccountController) GetSubaccountByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	subaccount, err := ctrl.SubaccountUsecase.GetSubaccountByUserID(ctx, userID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSubaccountSuccessMessage, subaccount)
}
