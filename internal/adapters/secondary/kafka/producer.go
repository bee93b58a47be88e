package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/vosstorgg/dailybot/internal/domain"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer публикует доменные события регистрации в Kafka,
// реализует service.IEventPublisher
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

// NewProducer создаёт новый Kafka producer
func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	if cfg.SecurityProtocol == "SASL_SSL" || cfg.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if cfg.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = cfg.SASLUsername
		config.Net.SASL.Password = cfg.SASLPassword
		if cfg.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// registrationCompletedEvent событие завершения регистрации для пайплайна прогнозов
type registrationCompletedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	TelegramUserID int64     `json:"telegram_user_id"`
	Name           string    `json:"name"`
	ForecastTime   string    `json:"forecast_time"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// PublishRegistrationCompleted отправляет событие завершения регистрации
func (p *Producer) PublishRegistrationCompleted(ctx context.Context, user *domain.User) error {
	event := registrationCompletedEvent{
		EventID:        uuid.New(),
		TelegramUserID: user.TelegramUserID,
	}
	if user.Name != nil {
		event.Name = *user.Name
	}
	if user.ForecastTime != nil {
		event.ForecastTime = *user.ForecastTime
	}
	if user.RegisteredAt != nil {
		event.RegisteredAt = *user.RegisteredAt
	}

	valueBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.cfg.Topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d", user.TelegramUserID)),
		Value: sarama.ByteEncoder(valueBytes),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte("registration_completed"),
			},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.log.Debug("registration completed event published",
		"telegram_user_id", user.TelegramUserID,
		"partition", partition,
		"offset", offset,
	)

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	return p.producer.Close()
}
