package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/catalog"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/broker"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer is the part of broker.KafkaConsumer the listener needs.
type Consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// CatalogListener drops cached catalog views whenever another instance
// reports a listing change or a placed order.
type CatalogListener struct {
	consumer Consumer
	uc       catalog.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewCatalogListener(consumer Consumer, uc catalog.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event broker.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case model.EventListingChanged, model.EventOrderPlaced:
	default:
		return
	}

	l.logger.Debug("Invalidating catalog cache",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
	)
	if err := l.uc.InvalidateCache(ctx); err != nil {
		l.logger.Error("Failed to invalidate catalog cache", zap.String("event_id", event.EventID), zap.Error(err))
	}
}
