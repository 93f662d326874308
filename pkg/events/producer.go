package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
)

type EventType string

const (
	OrderCreated   EventType = "order.created"
	OrderCompleted EventType = "order.completed"
	OrderDeleted   EventType = "order.deleted"
)

// OrderEvent is the message published for every order lifecycle change.
type OrderEvent struct {
	EventID    string             `json:"event_id"`
	Type       EventType          `json:"type"`
	OrderID    int64              `json:"order_id"`
	Date       string             `json:"date"`
	CustomerID string             `json:"customer_id"`
	Amount     int64              `json:"amount"`
	Source     models.OrderSource `json:"source"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type IProducer interface {
	PublishOrderEvent(event OrderEvent) error
	Close() error
}

type saramaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      logger.ILogger
}

func New(brokers []string, topic string, log logger.ILogger) (IProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &saramaProducer{producer: prod, topic: topic, log: log}, nil
}

func (p *saramaProducer) PublishOrderEvent(event OrderEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Date),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error("failed to publish order event",
			logger.String("type", string(event.Type)), logger.Error(err))
		return err
	}
	p.log.Debug("order event published",
		logger.String("type", string(event.Type)),
		logger.Int("partition", int(partition)),
		logger.Int64("offset", offset))
	return nil
}

func (p *saramaProducer) Close() error {
	return p.producer.Close()
}

// NoopProducer is used when Kafka is disabled; the service keeps working
// without event publishing.
type NoopProducer struct{}

func (NoopProducer) PublishOrderEvent(OrderEvent) error { return nil }
func (NoopProducer) Close() error                       { return nil }
