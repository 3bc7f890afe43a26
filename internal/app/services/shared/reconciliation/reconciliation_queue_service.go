package reconciliation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Entries that cannot be decoded when draining land on the DLQ instead of
// blocking the queue.
const DeadLetterSuffix = ".dlq"

// Service is the durable holding pen for inconsistent payment states:
// ledger entries whose appointment activation failed. Nothing consumes it
// automatically; operators drain it with the reconcile command.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	queue    string
	dlq      string
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	dlqName := queueName + DeadLetterSuffix
	for _, name := range []string{queueName, dlqName} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	// Publisher confirms so a reconciliation entry is never silently lost
	// after the caller has already decided to ACK the webhook.
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		queue:    queueName,
		dlq:      dlqName,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (s *Service) Publish(ctx context.Context, entry *contracts.ReconciliationEntry) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("reconciliation.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceKey, entry.Reference),
		zap.String(constvars.LoggingQueueKey, s.queue),
	)

	if entry.ObservedAt.IsZero() {
		entry.ObservedAt = time.Now().UTC()
	}
	body, err := json.Marshal(entry)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", s.queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queue)
	}
	return nil
}

// FetchN pulls up to max entries off the queue, acking each as it is
// returned. Undecodable payloads move to the DLQ.
func (s *Service) FetchN(ctx context.Context, max int) ([]contracts.ReconciliationEntry, error) {
	if max <= 0 {
		max = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]contracts.ReconciliationEntry, 0, max)
	for i := 0; i < max; i++ {
		delivery, ok, err := s.ch.Get(s.queue, false)
		if err != nil {
			return entries, err
		}
		if !ok {
			break
		}

		var entry contracts.ReconciliationEntry
		if err := json.Unmarshal(delivery.Body, &entry); err != nil {
			s.log.Error("reconciliation.FetchN undecodable entry moved to DLQ",
				zap.String(constvars.LoggingQueueKey, s.dlq),
				zap.Error(err),
			)
			dlqMsg := amqp.Publishing{
				ContentType:  constvars.MIMEApplicationJSON,
				Body:         delivery.Body,
				DeliveryMode: amqp.Persistent,
			}
			if pubErr := s.ch.PublishWithContext(ctx, "", s.dlq, false, false, dlqMsg); pubErr != nil {
				_ = delivery.Nack(false, true)
				return entries, exceptions.ErrRabbitMQPublishMessage(pubErr, s.dlq)
			}
			select {
			case <-s.confirms:
			case <-ctx.Done():
			}
			_ = delivery.Ack(false)
			continue
		}

		if err := delivery.Ack(false); err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
