package payments

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const paymentReceiptCacheTTL = 5 * time.Minute

type paymentUsecase struct {
	PaymentRepository     contracts.PaymentRepository
	AppointmentRepository contracts.AppointmentRepository
	PaymentGateway        contracts.PaymentGatewayService
	RedisRepository       contracts.RedisRepository
	ReconciliationQueue   contracts.ReconciliationQueue
	MailerService         contracts.MailerService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	redisRepository contracts.RedisRepository,
	reconciliationQueue contracts.ReconciliationQueue,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			PaymentRepository:     paymentRepository,
			AppointmentRepository: appointmentRepository,
			PaymentGateway:        paymentGateway,
			RedisRepository:       redisRepository,
			ReconciliationQueue:   reconciliationQueue,
			MailerService:         mailerService,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// StartPayment hands the checkout off to the gateway. Nothing is persisted
// here: the ledger record is born on the first verify or webhook observation
// of the reference.
func (uc *paymentUsecase) StartPayment(ctx context.Context, request *requests.StartPayment) (*responses.StartPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.StartPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("amount", request.Amount),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
	)

	initializeRequest := &requests.PaystackInitializeTransaction{
		Amount: request.Amount,
		Email:  request.Email,
		Metadata: map[string]string{
			"full_name":      request.FullName,
			"userId":         request.UserID,
			"professionalId": request.ProfessionalID,
			"date":           request.Date,
			"time":           request.Time,
			"amount":         strconv.FormatInt(request.Amount, 10),
		},
	}

	result, err := uc.PaymentGateway.InitializeTransaction(ctx, initializeRequest)
	if err != nil {
		uc.Log.Error("paymentUsecase.StartPayment error initializing transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.StartPayment checkout initialized",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, result.Reference),
	)
	return result, nil
}

// CreatePaymentAfterCheckout verifies the reference with the gateway and
// records the outcome. Safe to repeat: the second call returns the existing
// ledger entry.
func (uc *paymentUsecase) CreatePaymentAfterCheckout(ctx context.Context, reference string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePaymentAfterCheckout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	verified, err := uc.PaymentGateway.VerifyTransaction(ctx, reference)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePaymentAfterCheckout error verifying transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	payment := paymentFromVerified(verified)
	created, record, err := uc.PaymentRepository.RecordIfAbsent(ctx, payment)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("paymentUsecase.CreatePaymentAfterCheckout recorded payment",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, reference),
		zap.Bool("created", created),
		zap.String(constvars.LoggingPaymentStatusKey, string(record.Status)),
	)

	uc.cacheReceipt(ctx, record)
	return record, nil
}

func (uc *paymentUsecase) GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByReference called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	cacheKey := fmt.Sprintf(constvars.RedisKeyPaymentReceiptFormat, reference)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var payment models.Payment
		if err := json.Unmarshal([]byte(cached), &payment); err == nil {
			return &payment, nil
		}
	}

	payment, err := uc.PaymentRepository.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("no payment with reference %s", reference))
	}

	uc.cacheReceipt(ctx, payment)
	return payment, nil
}

// HandleChargeEvent is the webhook path. The ledger insert is the primary
// duplicate-delivery defense: created=false with a terminal record means an
// earlier delivery or the client flow already settled this reference, and
// the event is acknowledged without touching anything else. A non-terminal
// record is promoted first, since only the promoting observation may
// activate the appointment.
func (uc *paymentUsecase) HandleChargeEvent(ctx context.Context, event *requests.PaystackWebhookEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleChargeEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Event),
		zap.String(constvars.LoggingReferenceKey, event.Data.ID),
	)

	if event.Ignored() {
		uc.Log.Info("paymentUsecase.HandleChargeEvent ignoring event type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Event),
		)
		return nil
	}

	payment := paymentFromWebhook(event)
	created, record, err := uc.PaymentRepository.RecordIfAbsent(ctx, payment)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleChargeEvent error recording payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !created {
		if record.Status.Terminal() || payment.Status != models.PaymentSuccess {
			uc.Log.Info("paymentUsecase.HandleChargeEvent duplicate delivery, already recorded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReferenceKey, record.Reference),
			)
			return nil
		}
		// A verify-while-pending observation inserted the record before this
		// delivery arrived. Promote it and run the activation it still owes;
		// a nil document means a concurrent promotion already owns that.
		promoted, err := uc.PaymentRepository.MarkSuccessIfPending(ctx, record.Reference)
		if err != nil {
			return err
		}
		if promoted == nil {
			uc.Log.Info("paymentUsecase.HandleChargeEvent record promoted concurrently",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReferenceKey, record.Reference),
			)
			return nil
		}
		record = promoted
	}
	uc.cacheReceipt(ctx, record)

	if record.Status != models.PaymentSuccess {
		uc.Log.Info("paymentUsecase.HandleChargeEvent non-success charge recorded without activation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferenceKey, record.Reference),
			zap.String(constvars.LoggingPaymentStatusKey, string(record.Status)),
		)
		return nil
	}

	appointment, activationErr := uc.activateFromWebhook(ctx, record)
	if activationErr != nil {
		// The payment is durable but activation is not. Redelivery cannot
		// repair this: the ledger insert above now dedupes every retry. The
		// entry goes to the operator queue and the event is acknowledged.
		uc.Log.Error("paymentUsecase.HandleChargeEvent inconsistent state, payment recorded without appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferenceKey, record.Reference),
			zap.Error(activationErr),
		)
		entry := &contracts.ReconciliationEntry{
			Reference: record.Reference,
			Reason:    constvars.ErrDevInconsistentState,
			Event: map[string]interface{}{
				"event":    event.Event,
				"metadata": event.Data.Metadata,
			},
			ObservedAt: time.Now().UTC(),
		}
		if pubErr := uc.ReconciliationQueue.Publish(ctx, entry); pubErr != nil {
			uc.Log.Error("paymentUsecase.HandleChargeEvent failed to queue reconciliation entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReferenceKey, record.Reference),
				zap.Error(pubErr),
			)
		}
		return nil
	}

	uc.sendConfirmationEmail(ctx, record, appointment)
	return nil
}

// ConfirmAppointmentPayment is the client-driven path: verify with the
// gateway, record the payment, then flip the pending appointment in one
// guarded update.
func (uc *paymentUsecase) ConfirmAppointmentPayment(ctx context.Context, appointmentID, reference string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ConfirmAppointmentPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(fmt.Errorf("no appointment with id %s", appointmentID))
	}
	if appointment.Status == models.AppointmentConfirmed {
		// Retry of an already-confirmed appointment is a success, not a
		// conflict.
		return appointment, nil
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil, exceptions.ErrAppointmentNotActivatable(fmt.Errorf("appointment %s is cancelled", appointmentID))
	}

	verified, err := uc.PaymentGateway.VerifyTransaction(ctx, reference)
	if err != nil {
		uc.Log.Error("paymentUsecase.ConfirmAppointmentPayment error verifying transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if verified.Status != constvars.PaystackStatusSuccess {
		return nil, exceptions.ErrPaymentNotConfirmed(fmt.Errorf("gateway reports status %s for reference %s", verified.Status, reference))
	}

	payment := paymentFromVerified(verified)
	created, record, err := uc.PaymentRepository.RecordIfAbsent(ctx, payment)
	if err != nil {
		return nil, err
	}
	if !created && !record.Status.Terminal() {
		// An earlier verify observed the charge before it settled. The
		// gateway now reports success, so the pending record is promoted.
		promoted, err := uc.PaymentRepository.MarkSuccessIfPending(ctx, record.Reference)
		if err != nil {
			return nil, err
		}
		if promoted != nil {
			record = promoted
		}
	}
	uc.cacheReceipt(ctx, record)

	updated, err := uc.AppointmentRepository.ConfirmPending(ctx, appointmentID, reference)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost the race to the webhook or a concurrent confirm. The
		// re-read tells us which terminal state won.
		current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.Status == models.AppointmentConfirmed {
			return current, nil
		}
		return nil, exceptions.ErrAppointmentNotActivatable(fmt.Errorf("appointment %s left pending state concurrently", appointmentID))
	}

	uc.Log.Info("paymentUsecase.ConfirmAppointmentPayment appointment confirmed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingReferenceKey, reference),
	)
	uc.sendConfirmationEmail(ctx, record, updated)
	return updated, nil
}

// activateFromWebhook materializes the confirmed appointment for a freshly
// recorded payment. Booking metadata that already names an appointment
// confirms it in place; otherwise the appointment is created confirmed.
func (uc *paymentUsecase) activateFromWebhook(ctx context.Context, payment *models.Payment) (*models.Appointment, error) {
	if appointmentID := payment.MetadataString("appointmentId"); appointmentID != "" {
		updated, err := uc.AppointmentRepository.ConfirmPending(ctx, appointmentID, payment.Reference)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
			if err != nil {
				return nil, err
			}
			if current != nil && current.Status == models.AppointmentConfirmed {
				return current, nil
			}
			return nil, fmt.Errorf("appointment %s not in a confirmable state", appointmentID)
		}
		return updated, nil
	}

	appointment := &models.Appointment{
		UserID: payment.MetadataString("userId"),
		// Legacy clients still send doctorId or clinicId.
		ProfessionalID:   payment.MetadataString("professionalId", "doctorId", "clinicId"),
		Date:             payment.MetadataString("date"),
		Time:             payment.MetadataString("time"),
		Status:           models.AppointmentConfirmed,
		PaymentReference: payment.Reference,
	}
	return uc.AppointmentRepository.CreateAppointment(ctx, appointment)
}

func (uc *paymentUsecase) cacheReceipt(ctx context.Context, payment *models.Payment) {
	// Only terminal receipts are cached: a pending record can still be
	// promoted, and a stale pending answer would outlive the promotion.
	if !payment.Status.Terminal() {
		return
	}
	cacheKey := fmt.Sprintf(constvars.RedisKeyPaymentReceiptFormat, payment.Reference)
	if err := uc.RedisRepository.Set(ctx, cacheKey, payment, paymentReceiptCacheTTL); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("paymentUsecase failed to cache payment receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferenceKey, payment.Reference),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) sendConfirmationEmail(ctx context.Context, payment *models.Payment, appointment *models.Appointment) {
	if payment.Email == "" || appointment == nil {
		return
	}
	email := &requests.EmailPayload{
		To:      payment.Email,
		Subject: constvars.EmailAppointmentConfirmedSubject,
		Body:    fmt.Sprintf(constvars.EmailBodyAppointmentConfirmed, payment.FullName, appointment.Date, appointment.Time, payment.Reference),
	}
	if err := uc.MailerService.SendEmail(ctx, email); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("paymentUsecase failed to enqueue confirmation email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferenceKey, payment.Reference),
			zap.Error(err),
		)
	}
}

func paymentFromVerified(verified *responses.VerifiedTransaction) *models.Payment {
	return &models.Payment{
		Reference: verified.Reference,
		Amount:    verified.Amount,
		Email:     verified.Email,
		Status:    paymentStatusFromGateway(verified.Status),
		Metadata:  verified.Metadata,
		FullName:  metadataString(verified.Metadata, "full_name"),
	}
}

func paymentFromWebhook(event *requests.PaystackWebhookEvent) *models.Payment {
	return &models.Payment{
		Reference: event.Data.ID,
		Amount:    event.Data.MetadataAmount(),
		Email:     event.Data.Email,
		Status:    paymentStatusFromGateway(event.Data.Status),
		Metadata:  event.Data.Metadata,
		FullName:  metadataString(event.Data.Metadata, "full_name"),
	}
}

func paymentStatusFromGateway(status string) models.PaymentStatus {
	switch status {
	case constvars.PaystackStatusSuccess:
		return models.PaymentSuccess
	case constvars.PaystackStatusFailed, constvars.PaystackStatusAbandoned:
		return models.PaymentFailed
	default:
		return models.PaymentPending
	}
}

func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
