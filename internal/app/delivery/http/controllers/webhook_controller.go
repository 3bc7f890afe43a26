package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/services/shared/ratelimiter"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Webhook bodies are small; anything past this is not a gateway event.
const maxWebhookBodyBytes = 1 << 20

type WebhookController struct {
	Log             *zap.Logger
	PaymentUsecase  contracts.PaymentUsecase
	PaymentGateway  contracts.PaymentGatewayService
	HookRateLimiter *ratelimiter.HookRateLimiter
}

var (
	webhookControllerInstance *WebhookController
	onceWebhookController     sync.Once
)

func NewWebhookController(
	logger *zap.Logger,
	paymentUsecase contracts.PaymentUsecase,
	paymentGateway contracts.PaymentGatewayService,
	hookRateLimiter *ratelimiter.HookRateLimiter,
) *WebhookController {
	onceWebhookController.Do(func() {
		webhookControllerInstance = &WebhookController{
			Log:             logger,
			PaymentUsecase:  paymentUsecase,
			PaymentGateway:  paymentGateway,
			HookRateLimiter: hookRateLimiter,
		}
	})
	return webhookControllerInstance
}

// PaystackWebhook authenticates, dedupes, and activates. The contract with
// the gateway: 200 acknowledges (including ignored types and duplicates),
// 401 rejects a bad signature, 5xx asks for redelivery.
func (ctrl *WebhookController) PaystackWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	utils.LogSecurityEvent(ctrl.Log, "paystack_webhook_received", requestID, "info",
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
	)

	verdict, err := ctrl.HookRateLimiter.Evaluate(r.Context(), time.Now())
	if err == nil && !verdict.Allowed {
		w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(verdict.RetryAfterSecs))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTooManyRequests(nil))
		return
	}

	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
		return
	}

	event, err := ctrl.PaymentGateway.ParseWebhookEvent(rawBody, r.Header.Get(constvars.PaystackSignatureHeader))
	if err != nil {
		utils.LogSecurityEvent(ctrl.Log, "paystack_webhook_rejected", requestID, "warn",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := ctrl.PaymentUsecase.HandleChargeEvent(ctx, event); err != nil {
		// 5xx here is deliberate: the ledger rejected the write, so a
		// redelivery still has a chance to succeed.
		ctrl.Log.Error("Failed to process paystack webhook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferenceKey, event.Data.ID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "paystack_webhook_processed", requestID,
		zap.String(constvars.LoggingEventTypeKey, event.Event),
		zap.String(constvars.LoggingReferenceKey, event.Data.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WebhookReceivedMessage, nil)
}
