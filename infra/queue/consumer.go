package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"time"

	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	minReadBackoff = 100 * time.Millisecond
	maxReadBackoff = 5 * time.Second
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	Reader      messageReader
	Handler     interfaces.ConsumerHandler
	ServiceName string
	log         *logger.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

type ConsumerConfig struct {
	Broker   string
	Topic    string
	GroupID  string
	Username string
	Password string
}

func NewKafkaConsumer(cfg ConsumerConfig, serviceName string, handler interfaces.ConsumerHandler, log *logger.Logger) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Broker},
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 10e3, //10KB
		MaxBytes: 10e6, //10MB
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: serviceName,
		log:         log,
		minBackoff:  minReadBackoff,
		maxBackoff:  maxReadBackoff,
	}
}

// Listen reads until ctx is cancelled or the reader is closed. Read errors
// back off exponentially. Handler errors are logged and the message is
// committed anyway.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	entry := kc.log.WithField("service", kc.ServiceName)
	backoff := kc.minBackoff
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return kc.Reader.Close()
			}
			if errors.Is(err, io.EOF) {
				entry.Info("reader closed")
				return nil
			}

			entry.WithError(err).WithField("retry_in", backoff).Error("read message")
			select {
			case <-ctx.Done():
				return kc.Reader.Close()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > kc.maxBackoff {
				backoff = kc.maxBackoff
			}
			continue
		}
		backoff = kc.minBackoff

		entry.WithField("key", string(msg.Key)).Debug("received message")

		if err := kc.Handler.HandleMessage(msg.Key, msg.Value); err != nil {
			entry.WithError(err).WithField("key", string(msg.Key)).Error("handle message")
		}
	}
}
