// Package kafka publishes customer notifications and rider location updates
// to Kafka topics. Both streams are fire-and-forget: a broker failure is
// logged and dropped so it can never fail the business operation that
// produced the event.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gochop/internal/core/domain/model/kernel"

	"github.com/Shopify/sarama"
)

const (
	notificationsTopic = "gochop.notifications"
	locationsTopic     = "gochop.rider-locations"
)

// NewSyncProducer connects a sarama synchronous producer to the given brokers.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true

	return sarama.NewSyncProducer(brokers, config)
}

// Notifier sends push notifications through the notifications topic, keyed by
// recipient so one user's notifications stay ordered.
type Notifier struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewNotifier creates a Kafka-backed notifier.
func NewNotifier(producer sarama.SyncProducer, logger *slog.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		logger:   logger.With("component", "kafka_notifier"),
	}
}

type notificationEvent struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Timestamp   int64  `json:"timestamp"`
}

// Notify publishes a notification event. Failures are logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, recipientID string, title string, body string) {
	data, err := json.Marshal(notificationEvent{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
		Timestamp:   time.Now().Unix(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to encode notification", "error", err)
		return
	}

	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: notificationsTopic,
		Key:   sarama.StringEncoder(recipientID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish notification",
			"recipientId", recipientID, "error", err)
	}
}

// LocationPublisher streams rider positions for in-flight orders, keyed by
// order so each order's track stays ordered.
type LocationPublisher struct {
	producer sarama.SyncProducer
	logger   *slog.Logger
}

// NewLocationPublisher creates a Kafka-backed location publisher.
func NewLocationPublisher(producer sarama.SyncProducer, logger *slog.Logger) *LocationPublisher {
	return &LocationPublisher{
		producer: producer,
		logger:   logger.With("component", "kafka_location_publisher"),
	}
}

type locationEvent struct {
	OrderID   string  `json:"orderId"`
	RiderID   string  `json:"riderId"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Timestamp int64   `json:"timestamp"`
}

// Publish publishes a location update. Failures are logged and swallowed.
func (p *LocationPublisher) Publish(
	ctx context.Context,
	orderID kernel.UUID,
	riderID kernel.UUID,
	point kernel.GeoPoint,
) {
	data, err := json.Marshal(locationEvent{
		OrderID:   orderID.String(),
		RiderID:   riderID.String(),
		Longitude: point.Longitude(),
		Latitude:  point.Latitude(),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode location update", "error", err)
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: locationsTopic,
		Key:   sarama.StringEncoder(orderID.String()),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish location update",
			"orderId", orderID.String(), "error", err)
	}
}
