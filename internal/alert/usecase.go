package alert

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

type UseCase interface {
	ComputeAlerts(ctx context.Context, vendorID string) ([]model.AlertSnapshot, error)
	ListVendorAlerts(ctx context.Context, vendorID string) ([]model.VendorAlert, error)
	GetUnreadAlertCount(ctx context.Context, vendorID string) (int, error)
	AcknowledgeAlert(ctx context.Context, vendorID, canonicalName string) error
	// AcknowledgeAllAlerts returns how many acknowledgements were written. On a
	// partial failure the count is still returned alongside a *model.PartialAckError.
	AcknowledgeAllAlerts(ctx context.Context, vendorID string) (int, error)
}
