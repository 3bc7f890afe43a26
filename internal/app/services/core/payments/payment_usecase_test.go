package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentRepo struct {
	mu        sync.Mutex
	payments  map[string]*models.Payment
	insertErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepo) RecordIfAbsent(_ context.Context, payment *models.Payment) (bool, *models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return false, nil, r.insertErr
	}
	if existing, found := r.payments[payment.Reference]; found {
		return false, existing, nil
	}
	stored := *payment
	stored.ID = fmt.Sprintf("pay-%d", len(r.payments)+1)
	r.payments[payment.Reference] = &stored
	return true, &stored, nil
}

func (r *fakePaymentRepo) MarkSuccessIfPending(_ context.Context, reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, found := r.payments[reference]
	if !found || payment.Status.Terminal() {
		return nil, nil
	}
	payment.Status = models.PaymentSuccess
	promoted := *payment
	return &promoted, nil
}

func (r *fakePaymentRepo) FindByReference(_ context.Context, reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[reference], nil
}

func (r *fakePaymentRepo) EnsureIndexes(context.Context) error { return nil }

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	nextID       int
	confirmErr   error
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepo) seed(appointment *models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *appointment
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("appt-%d", r.nextID)
	}
	r.appointments[stored.ID] = &stored
	return &stored
}

func (r *fakeAppointmentRepo) CreateAppointment(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.seed(appointment), nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) FindByUserID(_ context.Context, userID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByProfessionalID(_ context.Context, professionalID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.ProfessionalID == professionalID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ConfirmPending(_ context.Context, id, paymentReference string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.confirmErr != nil {
		return nil, r.confirmErr
	}
	appointment, found := r.appointments[id]
	if !found || appointment.Status != models.AppointmentPending {
		return nil, nil
	}
	appointment.Status = models.AppointmentConfirmed
	appointment.PaymentReference = paymentReference
	updated := *appointment
	return &updated, nil
}

func (r *fakeAppointmentRepo) CancelPending(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, found := r.appointments[id]
	if !found || appointment.Status != models.AppointmentPending {
		return nil, nil
	}
	appointment.Status = models.AppointmentCancelled
	updated := *appointment
	return &updated, nil
}

func (r *fakeAppointmentRepo) CountByProfessional(_ context.Context, professionalID string, status models.AppointmentStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.appointments {
		if a.ProfessionalID == professionalID && a.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeGateway struct {
	verifyResult *responses.VerifiedTransaction
	verifyErr    error
	verifyCalls  int
	initResult   *responses.StartPayment
	initRequest  *requests.PaystackInitializeTransaction
}

func (g *fakeGateway) InitializeTransaction(_ context.Context, request *requests.PaystackInitializeTransaction) (*responses.StartPayment, error) {
	g.initRequest = request
	if g.initResult == nil {
		g.initResult = &responses.StartPayment{
			AuthorizationURL: "https://checkout.paystack.com/abc123",
			AccessCode:       "abc123",
			Reference:        "ref-start",
		}
	}
	return g.initResult, nil
}

func (g *fakeGateway) VerifyTransaction(_ context.Context, reference string) (*responses.VerifiedTransaction, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	result := *g.verifyResult
	result.Reference = reference
	return &result, nil
}

func (g *fakeGateway) ParseWebhookEvent([]byte, string) (*requests.PaystackWebhookEvent, error) {
	return nil, errors.New("not used in this test")
}

func (g *fakeGateway) CreateSubaccount(context.Context, *requests.PaystackCreateSubaccount) (*responses.PaystackCreateSubaccount, error) {
	return nil, errors.New("not used in this test")
}

type fakeRedis struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (r *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[key] = string(data)
	return nil
}

func (r *fakeRedis) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store[key], nil
}

func (r *fakeRedis) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, key)
	return nil
}

func (r *fakeRedis) IncrementWithTTL(context.Context, string, time.Duration) (int64, error) {
	return 1, nil
}

func (r *fakeRedis) TrySetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	return true, nil
}

type fakeReconciliationQueue struct {
	mu      sync.Mutex
	entries []contracts.ReconciliationEntry
}

func (q *fakeReconciliationQueue) Publish(_ context.Context, entry *contracts.ReconciliationEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, *entry)
	return nil
}

func (q *fakeReconciliationQueue) FetchN(context.Context, int) ([]contracts.ReconciliationEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.entries
	q.entries = nil
	return drained, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []requests.EmailPayload
}

func (m *fakeMailer) SendEmail(_ context.Context, payload *requests.EmailPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *payload)
	return nil
}

type paymentFixture struct {
	usecase      *paymentUsecase
	payments     *fakePaymentRepo
	appointments *fakeAppointmentRepo
	gateway      *fakeGateway
	redis        *fakeRedis
	queue        *fakeReconciliationQueue
	mailer       *fakeMailer
}

func newPaymentFixture() *paymentFixture {
	payments := newFakePaymentRepo()
	appointments := newFakeAppointmentRepo()
	gateway := &fakeGateway{}
	redis := newFakeRedis()
	queue := &fakeReconciliationQueue{}
	mailer := &fakeMailer{}
	usecase := &paymentUsecase{
		PaymentRepository:     payments,
		AppointmentRepository: appointments,
		PaymentGateway:        gateway,
		RedisRepository:       redis,
		ReconciliationQueue:   queue,
		MailerService:         mailer,
		InternalConfig:        &config.InternalConfig{},
		Log:                   zap.NewNop(),
	}
	return &paymentFixture{
		usecase:      usecase,
		payments:     payments,
		appointments: appointments,
		gateway:      gateway,
		redis:        redis,
		queue:        queue,
		mailer:       mailer,
	}
}

func chargeEvent(reference string, metadata map[string]interface{}) *requests.PaystackWebhookEvent {
	return &requests.PaystackWebhookEvent{
		Event: "charge.success",
		Data: requests.PaystackWebhookData{
			ID:       reference,
			Status:   constvars.PaystackStatusSuccess,
			Email:    "ada@example.com",
			Metadata: metadata,
		},
	}
}

func TestHandleChargeEvent(t *testing.T) {
	ctx := context.Background()

	bookingMetadata := map[string]interface{}{
		"full_name":      "Ada Obi",
		"userId":         "user-1",
		"professionalId": "prof-1",
		"date":           "2026-09-10",
		"time":           "10:00",
		"amount":         float64(150000),
	}

	t.Run("first delivery records payment and creates confirmed appointment", func(t *testing.T) {
		fx := newPaymentFixture()

		err := fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-1", bookingMetadata))
		require.NoError(t, err)

		payment, _ := fx.payments.FindByReference(ctx, "ref-1")
		require.NotNil(t, payment)
		assert.Equal(t, models.PaymentSuccess, payment.Status)
		assert.Equal(t, int64(150000), payment.Amount)

		appointments, _ := fx.appointments.FindByUserID(ctx, "user-1")
		require.Len(t, appointments, 1)
		assert.Equal(t, models.AppointmentConfirmed, appointments[0].Status)
		assert.Equal(t, "ref-1", appointments[0].PaymentReference)
		assert.Equal(t, "prof-1", appointments[0].ProfessionalID)

		require.Len(t, fx.mailer.sent, 1)
		assert.Equal(t, "ada@example.com", fx.mailer.sent[0].To)
	})

	t.Run("amount echoed back as a metadata string is recorded verbatim", func(t *testing.T) {
		fx := newPaymentFixture()

		metadata := map[string]interface{}{
			"full_name":      "Ada Obi",
			"userId":         "user-1",
			"professionalId": "prof-1",
			"date":           "2026-09-10",
			"time":           "10:00",
			"amount":         "150000",
		}
		err := fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-7", metadata))
		require.NoError(t, err)

		payment, _ := fx.payments.FindByReference(ctx, "ref-7")
		require.NotNil(t, payment)
		assert.Equal(t, int64(150000), payment.Amount)
	})

	t.Run("non-success charge is recorded without activating anything", func(t *testing.T) {
		fx := newPaymentFixture()

		event := chargeEvent("ref-8", bookingMetadata)
		event.Data.Status = constvars.PaystackStatusFailed
		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, event))

		payment, _ := fx.payments.FindByReference(ctx, "ref-8")
		require.NotNil(t, payment)
		assert.Equal(t, models.PaymentFailed, payment.Status)

		assert.Empty(t, fx.appointments.appointments)
		assert.Empty(t, fx.mailer.sent)
	})

	t.Run("success delivery promotes a record left pending by an early verify", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = &responses.VerifiedTransaction{
			Status: "pending",
			Amount: 150000,
			Email:  "ada@example.com",
			Metadata: map[string]interface{}{
				"full_name":      "Ada Obi",
				"userId":         "user-1",
				"professionalId": "prof-1",
				"date":           "2026-09-10",
				"time":           "10:00",
			},
		}
		record, err := fx.usecase.CreatePaymentAfterCheckout(ctx, "ref-9")
		require.NoError(t, err)
		require.Equal(t, models.PaymentPending, record.Status)

		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-9", bookingMetadata)))

		payment, _ := fx.payments.FindByReference(ctx, "ref-9")
		require.NotNil(t, payment)
		assert.Equal(t, models.PaymentSuccess, payment.Status)

		appointments, _ := fx.appointments.FindByUserID(ctx, "user-1")
		require.Len(t, appointments, 1)
		assert.Equal(t, models.AppointmentConfirmed, appointments[0].Status)
		assert.Equal(t, "ref-9", appointments[0].PaymentReference)
	})

	t.Run("duplicate delivery is acknowledged without a second activation", func(t *testing.T) {
		fx := newPaymentFixture()

		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-2", bookingMetadata)))
		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-2", bookingMetadata)))

		assert.Len(t, fx.payments.payments, 1)
		appointments, _ := fx.appointments.FindByUserID(ctx, "user-1")
		assert.Len(t, appointments, 1)
		assert.Len(t, fx.mailer.sent, 1)
	})

	t.Run("event types outside the workflow are acknowledged untouched", func(t *testing.T) {
		fx := newPaymentFixture()

		event := chargeEvent("ref-3", bookingMetadata)
		event.Event = "transfer.success"
		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, event))

		assert.Empty(t, fx.payments.payments)
		assert.Empty(t, fx.appointments.appointments)
	})

	t.Run("metadata naming an appointment confirms it in place", func(t *testing.T) {
		fx := newPaymentFixture()
		pending := fx.appointments.seed(&models.Appointment{
			UserID:         "user-1",
			ProfessionalID: "prof-1",
			Status:         models.AppointmentPending,
		})

		metadata := map[string]interface{}{
			"appointmentId": pending.ID,
			"full_name":     "Ada Obi",
			"amount":        float64(150000),
		}
		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-4", metadata)))

		confirmed, _ := fx.appointments.FindByID(ctx, pending.ID)
		assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)
		assert.Equal(t, "ref-4", confirmed.PaymentReference)
		assert.Len(t, fx.appointments.appointments, 1)
	})

	t.Run("ledger write failure is returned so the gateway redelivers", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.payments.insertErr = errors.New("mongo unavailable")

		err := fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-5", bookingMetadata))
		require.Error(t, err)
		assert.Empty(t, fx.appointments.appointments)
		assert.Empty(t, fx.queue.entries)
	})

	t.Run("activation failure after a durable payment queues reconciliation and acks", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.appointments.createErr = errors.New("mongo unavailable")

		err := fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-6", bookingMetadata))
		require.NoError(t, err)

		payment, _ := fx.payments.FindByReference(ctx, "ref-6")
		require.NotNil(t, payment)

		require.Len(t, fx.queue.entries, 1)
		assert.Equal(t, "ref-6", fx.queue.entries[0].Reference)
		assert.Empty(t, fx.mailer.sent)
	})
}

func TestConfirmAppointmentPayment(t *testing.T) {
	ctx := context.Background()

	successVerify := &responses.VerifiedTransaction{
		Status: constvars.PaystackStatusSuccess,
		Amount: 150000,
		Email:  "ada@example.com",
		Metadata: map[string]interface{}{
			"full_name": "Ada Obi",
		},
	}

	t.Run("verified payment confirms the pending appointment", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify
		pending := fx.appointments.seed(&models.Appointment{
			UserID:         "user-1",
			ProfessionalID: "prof-1",
			Status:         models.AppointmentPending,
		})

		confirmed, err := fx.usecase.ConfirmAppointmentPayment(ctx, pending.ID, "ref-10")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)
		assert.Equal(t, "ref-10", confirmed.PaymentReference)

		payment, _ := fx.payments.FindByReference(ctx, "ref-10")
		require.NotNil(t, payment)
		assert.Equal(t, models.PaymentSuccess, payment.Status)
	})

	t.Run("record left pending by an early verify is promoted on confirm", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify
		fx.payments.payments["ref-16"] = &models.Payment{
			ID:        "pay-1",
			Reference: "ref-16",
			Amount:    150000,
			Status:    models.PaymentPending,
		}
		pending := fx.appointments.seed(&models.Appointment{
			UserID: "user-1",
			Status: models.AppointmentPending,
		})

		confirmed, err := fx.usecase.ConfirmAppointmentPayment(ctx, pending.ID, "ref-16")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)

		payment, _ := fx.payments.FindByReference(ctx, "ref-16")
		require.NotNil(t, payment)
		assert.Equal(t, models.PaymentSuccess, payment.Status)
	})

	t.Run("confirming an already confirmed appointment is a no-op success", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify
		confirmed := fx.appointments.seed(&models.Appointment{
			Status:           models.AppointmentConfirmed,
			PaymentReference: "ref-11",
		})

		result, err := fx.usecase.ConfirmAppointmentPayment(ctx, confirmed.ID, "ref-11")
		require.NoError(t, err)
		assert.Equal(t, "ref-11", result.PaymentReference)
		assert.Zero(t, fx.gateway.verifyCalls)
	})

	t.Run("cancelled appointment cannot be activated", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify
		cancelled := fx.appointments.seed(&models.Appointment{Status: models.AppointmentCancelled})

		_, err := fx.usecase.ConfirmAppointmentPayment(ctx, cancelled.ID, "ref-12")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("gateway reporting a non-success status blocks activation", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = &responses.VerifiedTransaction{Status: constvars.PaystackStatusFailed}
		pending := fx.appointments.seed(&models.Appointment{Status: models.AppointmentPending})

		_, err := fx.usecase.ConfirmAppointmentPayment(ctx, pending.ID, "ref-13")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusPaymentRequired, customErr.StatusCode)

		assert.Empty(t, fx.payments.payments)
		current, _ := fx.appointments.FindByID(ctx, pending.ID)
		assert.Equal(t, models.AppointmentPending, current.Status)
	})

	t.Run("unknown appointment is a not found error", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify

		_, err := fx.usecase.ConfirmAppointmentPayment(ctx, "missing", "ref-14")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("losing the race to the webhook still returns the confirmed appointment", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.gateway.verifyResult = successVerify
		pending := fx.appointments.seed(&models.Appointment{Status: models.AppointmentPending})

		webhookMetadata := map[string]interface{}{
			"appointmentId": pending.ID,
			"amount":        float64(150000),
		}
		require.NoError(t, fx.usecase.HandleChargeEvent(ctx, chargeEvent("ref-15", webhookMetadata)))

		confirmed, err := fx.usecase.ConfirmAppointmentPayment(ctx, pending.ID, "ref-15")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)
		assert.Len(t, fx.payments.payments, 1)
	})
}

func TestStartPayment(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture()

	result, err := fx.usecase.StartPayment(ctx, &requests.StartPayment{
		Amount:         150000,
		Email:          "ada@example.com",
		FullName:       "Ada Obi",
		UserID:         "user-1",
		ProfessionalID: "prof-1",
		Date:           "2026-09-10",
		Time:           "10:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthorizationURL)
	assert.NotEmpty(t, result.Reference)

	require.NotNil(t, fx.gateway.initRequest)
	assert.Equal(t, "prof-1", fx.gateway.initRequest.Metadata["professionalId"])
	assert.Equal(t, "150000", fx.gateway.initRequest.Metadata["amount"])

	// Nothing persists until the gateway reports the outcome.
	assert.Empty(t, fx.payments.payments)
	assert.Empty(t, fx.appointments.appointments)
}

func TestGetPaymentByReference(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown reference is a not found error", func(t *testing.T) {
		fx := newPaymentFixture()

		_, err := fx.usecase.GetPaymentByReference(ctx, "ref-missing")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("pending receipts are never cached", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.payments.payments["ref-21"] = &models.Payment{
			Reference: "ref-21",
			Status:    models.PaymentPending,
			Amount:    150000,
		}

		first, err := fx.usecase.GetPaymentByReference(ctx, "ref-21")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, first.Status)
		assert.Empty(t, fx.redis.store)

		// The record settles; the next read must see the terminal status.
		fx.payments.payments["ref-21"].Status = models.PaymentSuccess

		second, err := fx.usecase.GetPaymentByReference(ctx, "ref-21")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentSuccess, second.Status)
	})

	t.Run("repeated reads are served from the receipt cache", func(t *testing.T) {
		fx := newPaymentFixture()
		fx.payments.payments["ref-20"] = &models.Payment{
			Reference: "ref-20",
			Status:    models.PaymentSuccess,
			Amount:    150000,
		}

		first, err := fx.usecase.GetPaymentByReference(ctx, "ref-20")
		require.NoError(t, err)

		// Drop the backing record; the cache should still answer.
		delete(fx.payments.payments, "ref-20")

		second, err := fx.usecase.GetPaymentByReference(ctx, "ref-20")
		require.NoError(t, err)
		assert.Equal(t, first.Reference, second.Reference)
		assert.Equal(t, first.Amount, second.Amount)
	})
}
