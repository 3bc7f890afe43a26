package payment_gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type paystackService struct {
	BaseUrl       string
	SecretKey     string
	WebhookSecret string
	HTTPClient    *http.Client
	Log           *zap.Logger
}

func NewPaystackService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	return &paystackService{
		BaseUrl:       internalConfig.Paystack.BaseUrl,
		SecretKey:     internalConfig.Paystack.SecretKey,
		WebhookSecret: internalConfig.Paystack.WebhookSecret,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Paystack.RequestTimeoutInSeconds) * time.Second,
		},
		Log: logger,
	}
}

func (s *paystackService) InitializeTransaction(ctx context.Context, request *requests.PaystackInitializeTransaction) (*responses.StartPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paystackService.InitializeTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("amount", request.Amount),
	)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := s.call(ctx, constvars.MethodPost, s.BaseUrl+constvars.PaystackInitializePath, payload)
	if err != nil {
		return nil, err
	}

	var wire responses.PaystackInitializeTransaction
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, exceptions.ErrGatewayUnavailable(err)
	}
	if !wire.Status {
		return nil, exceptions.ErrGatewayRejected(fmt.Errorf("paystack initialize declined: %s", wire.Message))
	}

	return &responses.StartPayment{
		AuthorizationURL: wire.Data.AuthorizationURL,
		AccessCode:       wire.Data.AccessCode,
		Reference:        wire.Data.Reference,
	}, nil
}

func (s *paystackService) VerifyTransaction(ctx context.Context, reference string) (*responses.VerifiedTransaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paystackService.VerifyTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, reference),
	)

	url := s.BaseUrl + fmt.Sprintf(constvars.PaystackVerifyPath, reference)
	body, err := s.call(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var wire responses.PaystackVerifyTransaction
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, exceptions.ErrGatewayUnavailable(err)
	}
	if !wire.Status {
		return nil, exceptions.ErrPaymentReferenceNotFound(fmt.Errorf("paystack verify declined: %s", wire.Message))
	}

	return &responses.VerifiedTransaction{
		Reference: reference,
		Status:    wire.Data.Status,
		Amount:    wire.Data.Amount,
		Email:     wire.Data.Customer.Email,
		Metadata:  wire.Data.Metadata,
	}, nil
}

// ParseWebhookEvent authenticates the raw body before any field of it is
// trusted. The signature is HMAC-SHA512 over the exact bytes received,
// compared in constant time against the hex digest from the header.
func (s *paystackService) ParseWebhookEvent(rawBody []byte, signatureHeader string) (*requests.PaystackWebhookEvent, error) {
	if signatureHeader == "" {
		return nil, exceptions.ErrInvalidWebhookSignature(fmt.Errorf("missing %s header", constvars.PaystackSignatureHeader))
	}

	mac := hmac.New(sha512.New, []byte(s.WebhookSecret))
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	received, err := hex.DecodeString(signatureHeader)
	if err != nil {
		return nil, exceptions.ErrInvalidWebhookSignature(err)
	}
	if !hmac.Equal(expected, received) {
		return nil, exceptions.ErrInvalidWebhookSignature(fmt.Errorf("signature mismatch"))
	}

	var event requests.PaystackWebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &event, nil
}

func (s *paystackService) CreateSubaccount(ctx context.Context, request *requests.PaystackCreateSubaccount) (*responses.PaystackCreateSubaccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paystackService.CreateSubaccount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := s.call(ctx, constvars.MethodPost, s.BaseUrl+constvars.PaystackSubaccountPath, payload)
	if err != nil {
		return nil, err
	}

	var wire responses.PaystackCreateSubaccount
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, exceptions.ErrGatewayUnavailable(err)
	}
	if !wire.Status {
		return nil, exceptions.ErrGatewayRejected(fmt.Errorf("paystack subaccount declined: %s", wire.Message))
	}
	return &wire, nil
}

// call performs one authenticated round trip and classifies failures:
// transport errors and 5xx map to gateway unavailable, 404 to unknown
// reference, other 4xx to gateway rejected.
func (s *paystackService) call(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+s.SecretKey)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrGatewayUnavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrGatewayUnavailable(err)
	}

	switch {
	case resp.StatusCode >= constvars.StatusInternalServerError:
		return nil, exceptions.ErrGatewayUnavailable(fmt.Errorf("paystack responded %d", resp.StatusCode))
	case resp.StatusCode == constvars.StatusNotFound:
		return nil, exceptions.ErrPaymentReferenceNotFound(fmt.Errorf("paystack responded %d", resp.StatusCode))
	case resp.StatusCode >= constvars.StatusBadRequest:
		return nil, exceptions.ErrGatewayRejected(fmt.Errorf("paystack responded %d", resp.StatusCode))
	}
	return body, nil
}
