// Package events consumes the catalog events topic so every replica
// invalidates its in-memory snapshots when an admin mutates the catalog
// through any other replica.
package events

import (
	"context"

	"roam/config"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/internal/domains/catalog/snapshot"
	"roam/shared/constant"
	gDto "roam/shared/dto"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Consumer struct {
	cfg      *config.Config
	kafka    kafka.Client
	snapshot *snapshot.Store
	otel     otel.Otel
}

func NewConsumer(cfg *config.Config, kafkaClient kafka.Client, store *snapshot.Store, otl otel.Otel) *Consumer {
	return &Consumer{
		cfg:      cfg,
		kafka:    kafkaClient,
		snapshot: store,
		otel:     otl,
	}
}

// Run blocks consuming catalog events until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.EventTopic, c.handle)
}

func (c *Consumer) handle(msg kafkaGo.Message) {
	_, scope := c.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".handle")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[gDto.CatalogEvent](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode catalog event")

		return
	}

	if event.Destination == constant.Empty {
		log.Warn().Str("entity", event.Entity).Str("id", event.ID).Msg("catalog event without destination, skipping")

		return
	}

	log.Info().
		Str("entity", event.Entity).
		Str("action", event.Action).
		Str("destination", event.Destination).
		Msg("catalog event received")

	c.snapshot.Invalidate(event.Destination)
}
