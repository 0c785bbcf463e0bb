package worker

import (
	"context"
	"errors"
	"io"
	"time"

	"task-list/internal/config"
	"task-list/internal/models"
	"task-list/internal/session"
	"task-list/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const source = "kafka"

// Fetch failures back off from retryDelay, doubling up to maxRetryDelay.
var (
	retryDelay    = 200 * time.Millisecond
	maxRetryDelay = 5 * time.Second
)

// MessageReader is the part of *kafka.Reader the worker needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewReader returns a consumer-group reader for the intents topic.
func NewReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Run consumes intents until ctx is done and dispatches each one to the session.
// Messages are applied one at a time, in partition order.
func Run(ctx context.Context, r MessageReader, s *session.Session) error {
	var processed int64
	delay := retryDelay
	logger.Info(ctx, "Kafka intent consumer started")
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "Kafka intent consumer stopped", "processed", processed)
				return nil
			}
			if errors.Is(err, io.EOF) {
				logger.Info(ctx, "Kafka reader closed", "processed", processed)
				return nil
			}
			logger.Error(ctx, "Worker fetch failed", "error", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				logger.Info(ctx, "Kafka intent consumer stopped", "processed", processed)
				return nil
			case <-time.After(delay):
			}
			delay = min(delay*2, maxRetryDelay)
			continue
		}
		delay = retryDelay
		if err := handleMessage(ctx, s, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid poison pill blocking the partition
		}
		if err := r.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
		processed++
	}
}

func handleMessage(ctx context.Context, s *session.Session, payload []byte) error {
	in, err := models.DecodeIntent(payload)
	if err != nil {
		return err
	}
	res, err := s.Dispatch(ctx, source, in)
	if err != nil {
		return err
	}
	if !res.Applied {
		logger.Debug(ctx, "Intent referenced a missing task", "payload", string(payload))
	}
	return nil
}
