package handler

import (
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/unilib/lending-service/lending/internal/model"
)

// Notifier consumes the lending topic and delivers reservation-ready
// notices to waiting borrowers. Delivery is a log line here; a mail or
// push collaborator would hang off the same hook.
type Notifier struct {
	log   *zap.Logger
	ready chan bool
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{
		log:   log.Named("notifier"),
		ready: make(chan bool),
	}
}

func (n *Notifier) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(n.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (n *Notifier) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (n *Notifier) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				n.log.Warn("message channel was closed")
				return nil
			}
			var ev model.Event
			if err := json.Unmarshal(message.Value, &ev); err != nil {
				n.log.Error("unmarshal event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if ev.Type == model.EventReservationReady && ev.Notification != nil {
				n.log.Info("copy ready for pickup",
					zap.String("item", ev.Notification.ItemTitle),
					zap.Int("borrower", ev.Notification.BorrowerID),
					zap.String("name", ev.Notification.BorrowerName))
			}

			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
