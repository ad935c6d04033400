package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    int       `json:"order_id"`
	UserID     int64     `json:"user_id"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prev_status,omitempty"`
	Total      string    `json:"total,omitempty"`
	At         time.Time `json:"at"`
}

func New(typ string, orderID int, userID int64, status string) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    typ,
		OrderID: orderID,
		UserID:  userID,
		Status:  status,
		At:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

type Kafka struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka publisher, or Noop when no brokers are configured.
func NewPublisher(brokersCSV, topic string) Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return Noop{}
	}
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

// Publish keys messages by order id so one order's events stay ordered.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(e.OrderID)),
		Value: data,
		Time:  e.At,
	})
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
