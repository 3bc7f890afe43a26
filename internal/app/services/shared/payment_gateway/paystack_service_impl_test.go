package payment_gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_1234567890"

func newTestService(baseURL string) *paystackService {
	return &paystackService{
		BaseUrl:       baseURL,
		SecretKey:     "sk_test_abcdef",
		WebhookSecret: testWebhookSecret,
		HTTPClient:    &http.Client{Timeout: 5 * time.Second},
		Log:           zap.NewNop(),
	}
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitializeTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("successful initialize returns the checkout handoff", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, constvars.PaystackInitializePath, r.URL.Path)
			assert.Equal(t, "Bearer sk_test_abcdef", r.Header.Get(constvars.HeaderAuthorization))

			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{
				"status": true,
				"message": "Authorization URL created",
				"data": {
					"authorization_url": "https://checkout.paystack.com/0peioxfhpn",
					"access_code": "0peioxfhpn",
					"reference": "7PVGX8MEk85tgeEpVDtD"
				}
			}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		result, err := service.InitializeTransaction(ctx, &requests.PaystackInitializeTransaction{
			Amount: 150000,
			Email:  "ada@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/0peioxfhpn", result.AuthorizationURL)
		assert.Equal(t, "7PVGX8MEk85tgeEpVDtD", result.Reference)
	})

	t.Run("declined initialize maps to a rejected error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		_, err := service.InitializeTransaction(ctx, &requests.PaystackInitializeTransaction{Amount: -1})
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("gateway 5xx maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		service := newTestService(server.URL)
		_, err := service.InitializeTransaction(ctx, &requests.PaystackInitializeTransaction{Amount: 150000})
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("unreachable gateway maps to unavailable", func(t *testing.T) {
		service := newTestService("http://127.0.0.1:1")
		_, err := service.InitializeTransaction(ctx, &requests.PaystackInitializeTransaction{Amount: 150000})
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}

func TestVerifyTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("successful verify normalizes the charge", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/transaction/verify/ref-42", r.URL.Path)

			w.Write([]byte(`{
				"status": true,
				"message": "Verification successful",
				"data": {
					"status": "success",
					"amount": 150000,
					"metadata": {"userId": "user-1"},
					"customer": {"email": "ada@example.com"}
				}
			}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		result, err := service.VerifyTransaction(ctx, "ref-42")
		require.NoError(t, err)
		assert.Equal(t, "ref-42", result.Reference)
		assert.Equal(t, constvars.PaystackStatusSuccess, result.Status)
		assert.Equal(t, int64(150000), result.Amount)
		assert.Equal(t, "ada@example.com", result.Email)
		assert.Equal(t, "user-1", result.Metadata["userId"])
	})

	t.Run("unknown reference maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		_, err := service.VerifyTransaction(ctx, "ref-unknown")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("declined verify body maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		_, err := service.VerifyTransaction(ctx, "ref-unknown")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestParseWebhookEvent(t *testing.T) {
	service := newTestService("http://unused")

	body := []byte(`{
		"event": "charge.success",
		"data": {
			"id": "ref-77",
			"status": "success",
			"email": "ada@example.com",
			"metadata": {"userId": "user-1", "amount": 150000}
		}
	}`)

	t.Run("valid signature yields the typed event", func(t *testing.T) {
		event, err := service.ParseWebhookEvent(body, sign(body))
		require.NoError(t, err)
		assert.Equal(t, "charge.success", event.Event)
		assert.Equal(t, "ref-77", event.Data.ID)
		assert.False(t, event.Ignored())
		assert.Equal(t, int64(150000), event.Data.MetadataAmount())
	})

	t.Run("missing signature header is rejected", func(t *testing.T) {
		_, err := service.ParseWebhookEvent(body, "")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("signature over different bytes is rejected", func(t *testing.T) {
		tampered := []byte(`{"event": "charge.success", "data": {"id": "ref-78", "status": "success"}}`)
		_, err := service.ParseWebhookEvent(tampered, sign(body))
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("signature from the wrong secret is rejected", func(t *testing.T) {
		mac := hmac.New(sha512.New, []byte("some-other-secret"))
		mac.Write(body)
		_, err := service.ParseWebhookEvent(body, hex.EncodeToString(mac.Sum(nil)))
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("non hex header is rejected", func(t *testing.T) {
		_, err := service.ParseWebhookEvent(body, "not-hex!!")
		require.Error(t, err)
		customErr := &exceptions.CustomError{}
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})
}
