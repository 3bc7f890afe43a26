package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

// PaymentGatewayService isolates the Paystack wire format. Purely
// translational; no persistence behind it.
type PaymentGatewayService interface {
	InitializeTransaction(ctx context.Context, request *requests.PaystackInitializeTransaction) (*responses.StartPayment, error)
	// VerifyTransaction is read-only on the gateway side and safe to repeat.
	VerifyTransaction(ctx context.Context, reference string) (*responses.VerifiedTransaction, error)
	// ParseWebhookEvent authenticates the raw body against the shared secret
	// before returning a typed event.
	ParseWebhookEvent(rawBody []byte, signatureHeader string) (*requests.PaystackWebhookEvent, error)
	CreateSubaccount(ctx context.Context, request *requests.PaystackCreateSubaccount) (*responses.PaystackCreateSubaccount, error)
}
