package listener

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/broker"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumer struct {
	messages []kafka.Message
	errs     []error
}

func (c *fakeConsumer) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return kafka.Message{}, err
	}
	if len(c.messages) > 0 {
		m := c.messages[0]
		c.messages = c.messages[1:]
		return m, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

type countingCatalog struct {
	invalidated chan struct{}
}

func (c *countingCatalog) ListCatalog(context.Context) ([]model.CatalogSummary, error) {
	return nil, nil
}

func (c *countingCatalog) GetProductDetail(context.Context, string) (*model.ProductDetail, error) {
	return nil, nil
}

func (c *countingCatalog) ListTrending(context.Context) ([]model.TrendingProduct, error) {
	return nil, nil
}

func (c *countingCatalog) SearchCatalog(context.Context, *dto.SearchFilters) ([]model.CatalogSummary, error) {
	return nil, nil
}

func (c *countingCatalog) InvalidateCache(context.Context) error {
	c.invalidated <- struct{}{}
	return nil
}

func message(t *testing.T, eventType string) kafka.Message {
	t.Helper()
	e, err := broker.NewEvent(eventType, map[string]string{"id": "x"})
	require.NoError(t, err)
	value, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestCatalogListenerInvalidates(t *testing.T) {
	consumer := &fakeConsumer{
		errs: []error{errors.New("broker down")},
		messages: []kafka.Message{
			message(t, model.EventOrderPlaced),
			{Value: []byte("not json")},
			message(t, "SomethingElse"),
			message(t, model.EventListingChanged),
		},
	}
	uc := &countingCatalog{invalidated: make(chan struct{}, 4)}

	l := NewCatalogListener(consumer, uc, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-uc.invalidated:
		case <-time.After(time.Second):
			t.Fatalf("expected invalidation %d", i+1)
		}
	}

	cancel()
	<-done
	assert.Empty(t, uc.invalidated)
}
