// Package kafkain consumes change notices published when the order document
// is rewritten out-of-band (imports, support tooling). Each notice drops the
// cached snapshot so the next read reloads from the store.
package kafkain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"orderdesk/internal/logging"
	"orderdesk/internal/ports/inbound"
)

type Consumer struct {
	reader *kafka.Reader
	uc     inbound.OrderUseCase
	log    *slog.Logger
}

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewConsumer(cfg ConsumerConfig, uc inbound.OrderUseCase) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	return &Consumer{reader: r, uc: uc, log: logging.New("kafka")}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			// Normal shutdown path
			if errors.Is(err, context.Canceled) {
				return
			}
			c.log.Error("fetch error", "err", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		notice, derr := DecodeChangeNotice(msg.Value)
		if derr != nil {
			c.log.Warn("bad notice (skip+commit)", "key", string(msg.Key), "err", derr)
			_ = c.reader.CommitMessages(ctx, msg) // commit poison pill
			continue
		}

		c.uc.InvalidateOrders()
		c.log.Info("cache invalidated by change notice", "resource", notice.Resource, "source", notice.Source)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("commit error", "err", err)
			// Redelivery only repeats an idempotent invalidation.
		}
	}
}
