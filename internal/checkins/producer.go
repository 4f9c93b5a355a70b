package checkins

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// AdmissionEvent is published after every committed scan so downstream
// collaborators (notifications, analytics) can react without polling.
type AdmissionEvent struct {
	EventID        string    `json:"event_id"`
	TicketID       string    `json:"ticket_id"`
	BookingID      string    `json:"booking_id"`
	PersonsEntered int       `json:"persons_entered"`
	AdmittedTotal  int       `json:"admitted_total"`
	AdmittedAt     time.Time `json:"admitted_at"`
}

// EventProducer publishes admission events. Publishing is best-effort: a
// failed publish never rolls back a committed scan.
type EventProducer interface {
	PublishAdmission(ctx context.Context, event *AdmissionEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka admission producer
type KafkaProducerConfig struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	TimeoutMs    int
	RequiredAcks sarama.RequiredAcks
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "admission-events",
		RetryMax:     3,
		TimeoutMs:    10000,
		RequiredAcks: sarama.WaitForAll,
	}
}

// KafkaEventProducer publishes admission events to Kafka
type KafkaEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaEventProducer creates a new Kafka admission event producer
func NewKafkaEventProducer(config *KafkaProducerConfig) (EventProducer, error) {
	if config == nil {
		config = DefaultKafkaProducerConfig()
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash on booking ID so events of one booking stay ordered per partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaEventProducer{
		producer: producer,
		config:   config,
	}, nil
}

func (p *KafkaEventProducer) PublishAdmission(ctx context.Context, event *AdmissionEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if event.AdmittedAt.IsZero() {
		event.AdmittedAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal admission event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("admission")},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish admission event: %w", err)
	}

	return nil
}

func (p *KafkaEventProducer) Close() error {
	return p.producer.Close()
}
