package mailer

import (
	"fmt"

	"medibook-service/internal/app/drivers/mailer"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker drains the mailer queue and delivers each payload over SMTP.
type Worker struct {
	channel *amqp091.Channel
	client  *mailer.SMTPClient
	log     *zap.Logger
	queue   string
	done    chan struct{}
}

func NewWorker(conn *amqp091.Connection, client *mailer.SMTPClient, log *zap.Logger, queue string) (*Worker, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	if err := channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	return &Worker{
		channel: channel,
		client:  client,
		log:     log,
		queue:   queue,
		done:    make(chan struct{}),
	}, nil
}

func (w *Worker) Start() error {
	deliveries, err := w.channel.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		defer close(w.done)
		for delivery := range deliveries {
			w.handle(delivery)
		}
	}()
	return nil
}

func (w *Worker) handle(delivery amqp091.Delivery) {
	var payload requests.EmailPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		w.log.Error("mailer.Worker dropping undecodable payload",
			zap.String(constvars.LoggingQueueKey, w.queue),
			zap.Error(err),
		)
		_ = delivery.Ack(false)
		return
	}

	message := []byte(fmt.Sprintf(constvars.EmailSendBasicEmailSubjectFormat, payload.To, payload.Subject, payload.Body))
	if err := w.client.Send([]string{payload.To}, message); err != nil {
		w.log.Error("mailer.Worker failed to send email",
			zap.String(constvars.LoggingQueueKey, w.queue),
			zap.Error(err),
		)
		// Requeue once; a second failure drops the message so a dead SMTP
		// host cannot spin the consumer.
		_ = delivery.Nack(false, !delivery.Redelivered)
		return
	}
	_ = delivery.Ack(false)
}

// Stop closes the channel, ending the consume loop, and waits for the
// in-flight delivery to finish.
func (w *Worker) Stop() {
	_ = w.channel.Close()
	<-w.done
}
