package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
)

// Notifier delivers a lead-assigned message to a salesperson; the mail
// sender is the current implementation.
type Notifier interface {
	SendLeadAssigned(to, salespersonName, leadName, phone string) error
}

// Worker drains the notification queue. Delivery failures are nacked to the
// DLQ; they never affect ingestion, which already committed.
type Worker struct {
	Channel      *amqp.Channel
	Salespersons entity.SalespersonRepositoryInterface
	Notifier     Notifier
	Logger       *zap.Logger
}

func NewWorker(
	ch *amqp.Channel,
	salespersons entity.SalespersonRepositoryInterface,
	notifier Notifier,
	logger *zap.Logger,
) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Channel:      ch,
		Salespersons: salespersons,
		Notifier:     notifier,
		Logger:       logger,
	}
}

func (w *Worker) Start(queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for d := range msgs {
		var payload LeadAssignedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Logger.Warn("notification payload malformed, dropping", zap.Error(err))
			// Poison message: reject without requeue so the queue keeps moving.
			d.Nack(false, false)
			continue
		}

		if err := w.process(context.Background(), payload); err != nil {
			w.Logger.Error("lead notification failed",
				zap.String("lead_id", payload.LeadID),
				zap.String("salesperson_id", payload.SalespersonID),
				zap.Error(err))
			d.Nack(false, false)
			continue
		}
		d.Ack(false)
	}
	return nil
}

func (w *Worker) process(ctx context.Context, payload LeadAssignedPayload) error {
	sp, err := w.Salespersons.FindByID(ctx, payload.SalespersonID)
	if err != nil {
		return err
	}
	if sp.Email == "" {
		w.Logger.Debug("salesperson has no email, skipping notification",
			zap.String("salesperson_id", sp.ID))
		return nil
	}

	leadName := payload.FirstName
	if payload.LastName != "" {
		leadName += " " + payload.LastName
	}
	return w.Notifier.SendLeadAssigned(sp.Email, sp.Name, leadName, payload.Phone)
}
