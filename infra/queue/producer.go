package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"time"

	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	publishBuffer  = 256
	publishTimeout = 5 * time.Second
)

var (
	ErrQueueFull      = errors.New("kafka publish queue is full")
	ErrProducerClosed = errors.New("kafka producer is closed")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer hands messages to a background writer so callers never wait on
// the broker.
type Producer struct {
	writer  messageWriter
	queue   chan kafka.Message
	done    chan struct{}
	timeout time.Duration
	log     *logger.Logger

	mu     sync.RWMutex
	closed bool
}

// NewProducer returns nil when no broker is configured; a nil *Producer
// drops messages.
func NewProducer(broker, topic, username, password string, log *logger.Logger) *Producer {
	if broker == "" {
		log.Warn("KAFKA_BROKER not set, mail events are disabled")
		return nil
	}

	transport := &kafka.Transport{}
	if username != "" {
		transport.SASL = plain.Mechanism{
			Username: username,
			Password: password,
		}
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		Transport:              transport,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}, log)
}

func newProducer(w messageWriter, log *logger.Logger) *Producer {
	p := &Producer{
		writer:  w,
		queue:   make(chan kafka.Message, publishBuffer),
		done:    make(chan struct{}),
		timeout: publishTimeout,
		log:     log,
	}
	go p.run()
	return p
}

func (p *Producer) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.log.WithError(err).WithField("key", string(msg.Key)).Error("kafka publish failed")
		}
	}
}

// PublishMessage queues the message and returns at once. Delivery errors are
// logged by the background writer.
func (p *Producer) PublishMessage(key, value []byte) error {
	if p == nil || p.writer == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	select {
	case p.queue <- kafka.Message{Key: key, Value: value, Time: time.Now()}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close flushes queued messages, then closes the writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
