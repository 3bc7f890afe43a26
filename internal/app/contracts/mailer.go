package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/requests"
)

// MailerService enqueues outbound email; a background worker drains the queue
// over SMTP so request paths never block on mail delivery.
type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}
