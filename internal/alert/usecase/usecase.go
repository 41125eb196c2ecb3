package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/alert"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("florist/alert")

// maxConcurrentLookups bounds the per-name competitor queries in flight.
const maxConcurrentLookups = 8

type alertUseCase struct {
	listings listing.Repository
	acks     alert.Repository
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewAlertUseCase(listings listing.Repository, acks alert.Repository, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		listings: listings,
		acks:     acks,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *alertUseCase) ComputeAlerts(ctx context.Context, vendorID string) ([]model.AlertSnapshot, error) {
	ctx, span := tracer.Start(ctx, "alert.ComputeAlerts",
		trace.WithAttributes(attribute.String("vendor_id", vendorID)))
	defer span.End()

	own, err := uc.listings.FindByVendor(ctx, vendorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var names []string
	seen := make(map[string]struct{})
	for _, l := range own {
		if _, ok := seen[l.CanonicalName]; ok {
			continue
		}
		seen[l.CanonicalName] = struct{}{}
		names = append(names, l.CanonicalName)
	}

	results := make([][]model.Listing, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			listings, err := uc.listings.FindByCanonicalName(gctx, name)
			if err != nil {
				return err
			}
			results[i] = listings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	competitors := make(map[string][]model.Listing, len(names))
	for i, name := range names {
		competitors[name] = results[i]
	}

	alerts := EvaluateAlerts(vendorID, own, competitors)
	span.SetAttributes(attribute.Int("alerts", len(alerts)))
	return alerts, nil
}

func (uc *alertUseCase) ListVendorAlerts(ctx context.Context, vendorID string) ([]model.VendorAlert, error) {
	alerts, err := uc.ComputeAlerts(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	acks, err := uc.acks.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return MarkRead(alerts, acks), nil
}

func (uc *alertUseCase) GetUnreadAlertCount(ctx context.Context, vendorID string) (int, error) {
	alerts, err := uc.ListVendorAlerts(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, a := range alerts {
		if !a.IsRead {
			unread++
		}
	}
	return unread, nil
}

// AcknowledgeAlert records the vendor's lowest current price for the name, so
// an alert raised by a pricier duplicate listing can remain unread.
func (uc *alertUseCase) AcknowledgeAlert(ctx context.Context, vendorID, canonicalName string) error {
	name := strings.TrimSpace(canonicalName)
	if name == "" {
		return errors.Wrap(model.ErrInvalidInput, "canonicalName is required")
	}

	own, err := uc.listings.FindByVendorAndCanonicalName(ctx, vendorID, name)
	if err != nil {
		return err
	}

	lowest, found := math.Inf(1), false
	for _, l := range own {
		if finite(l.Price) {
			lowest = math.Min(lowest, l.Price)
			found = true
		}
	}
	if !found {
		return errors.Wrap(model.ErrNotFound, "vendor product not found for canonicalName")
	}

	return uc.acks.Upsert(ctx, &model.Acknowledgement{
		VendorID:      vendorID,
		CanonicalName: name,
		ReadAtPrice:   lowest,
		ReadAt:        uc.now(),
	})
}

// AcknowledgeAllAlerts records every current alert at its own YourPrice. Writes
// are independent; a failure does not stop the remaining ones.
func (uc *alertUseCase) AcknowledgeAllAlerts(ctx context.Context, vendorID string) (int, error) {
	alerts, err := uc.ComputeAlerts(ctx, vendorID)
	if err != nil {
		return 0, err
	}

	var (
		written  int
		failed   []string
		firstErr error
	)
	for _, a := range alerts {
		err := uc.acks.Upsert(ctx, &model.Acknowledgement{
			VendorID:      vendorID,
			CanonicalName: a.CanonicalName,
			ReadAtPrice:   a.YourPrice,
			ReadAt:        uc.now(),
		})
		if err != nil {
			uc.logger.Error("failed to acknowledge alert",
				zap.String("vendor_id", vendorID),
				zap.String("canonical_name", a.CanonicalName),
				zap.Error(err),
			)
			failed = append(failed, a.CanonicalName)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}

	if len(failed) > 0 {
		return written, &model.PartialAckError{Acknowledged: written, Failed: failed, Err: firstErr}
	}
	return written, nil
}
