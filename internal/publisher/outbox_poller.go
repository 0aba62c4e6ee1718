// Package publisher drains the outbox table into Kafka. Events are
// written in the same transaction as the state change they announce, so
// a crash between commit and publish only delays delivery.
package publisher

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"salonpos/internal/domain"
	outboxrepo "salonpos/internal/repository/outbox"
)

const batchSize = 100

type eventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OutboxPoller struct {
	tick   time.Duration
	repo   outboxrepo.Repository
	writer eventWriter
	logger *log.Logger
}

func NewOutboxPoller(repo outboxrepo.Repository, logger *log.Logger, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:   time.Second,
		repo:   repo,
		writer: w,
		logger: logger,
	}
}

// Run polls until the context is cancelled.
func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.drain(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) drain(ctx context.Context) {
	events, err := p.repo.Unprocessed(ctx, batchSize)
	if err != nil {
		p.logger.Printf("fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.logger.Printf("publish event %s: %v", event.ID, err)
			continue
		}
		if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
			// The event will be re-published next tick; consumers must
			// tolerate duplicates.
			p.logger.Printf("mark event %s processed: %v", event.ID, err)
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event domain.OutboxEvent) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: event.Topic,
		Key:   []byte(event.ID),
		Value: event.Payload,
	})
}
