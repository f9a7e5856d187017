package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditLog appends one line per entity event to a file.
type AuditLog struct {
	path string
	mu   sync.Mutex
}

func NewAuditLog(path string) *AuditLog { return &AuditLog{path: path} }

// ErrMalformedEvent marks a payload that can never be written. Other
// Handle errors are I/O failures worth retrying.
var ErrMalformedEvent = errors.New("malformed entity event")

// Handle decodes a delivery body and appends it to the log.
func (a *AuditLog) Handle(body []byte) error {
	var ev EntityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if ev.Entity == "" || ev.Action == "" {
		return fmt.Errorf("%w: missing entity or action", ErrMalformedEvent)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("mkdir audit dir: %w", err)
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s %s | id=%d\n", ev.OccurredAt.UTC().Format(time.RFC3339), ev.Entity, ev.Action, ev.ID)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// StartAuditConsumer consumes queueName until ctx is cancelled, writing
// every event to audit. Broker failures are retried with exponential
// backoff capped at 30s.
func StartAuditConsumer(ctx context.Context, url, queueName string, audit *AuditLog, log *slog.Logger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("audit consumer: dial failed", "err", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, queueName, audit, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("audit consumer: consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queueName string, audit *AuditLog, log *slog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("audit consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		settle(d, audit.Handle(d.Body), log)
	}
	return errors.New("deliveries channel closed")
}

// settle acks a handled delivery. Malformed payloads are dropped; any
// other failure is requeued.
func settle(d amqp.Delivery, err error, log *slog.Logger) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrMalformedEvent):
		log.Error("audit consumer: dropping malformed message", "err", err)
		_ = d.Nack(false, false)
	default:
		log.Warn("audit consumer: handle failed, requeueing", "err", err)
		_ = d.Nack(false, true)
	}
}
