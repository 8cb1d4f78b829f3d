package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/launchhub/portal_end/config"
	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/utils"

	"github.com/segmentio/kafka-go"
)

// eventWriter is nil when no brokers are configured; publishing is then a
// no-op so the portal runs without Kafka.
var eventWriter *kafka.Writer

// InitEvents sets up the status-event producer.
func InitEvents(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		utils.Logger.Info().Msg("no Kafka brokers configured, status events disabled")
		return
	}
	eventWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	utils.Logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("status event producer ready")
}

// CloseEvents shuts the producer down.
func CloseEvents() error {
	if eventWriter == nil {
		return nil
	}
	return eventWriter.Close()
}

// PublishStatusEvent emits a submission status change. Event delivery is
// best effort: a broker failure is logged, never surfaced to the caller,
// because the transition has already been persisted.
func PublishStatusEvent(event models.StatusEvent) {
	if eventWriter == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to encode status event")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(event.SubmissionID),
			Value: payload,
		}
		if err := eventWriter.WriteMessages(ctx, msg); err != nil {
			utils.Logger.Error().
				Err(err).
				Str("submissionId", event.SubmissionID).
				Msg("failed to publish status event")
		}
	}()
}
