package repository

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByVendor(ctx context.Context, vendorID string) ([]model.Acknowledgement, error) {
	acks := []model.Acknowledgement{}
	query := `SELECT vendor_id, canonical_name, read_at_price, read_at FROM alert_acknowledgements WHERE vendor_id = $1`
	if err := r.DB.SelectContext(ctx, &acks, query, vendorID); err != nil {
		return nil, errors.Wrap(&model.StoreError{Err: err}, "acknowledgements find by vendor")
	}
	return acks, nil
}

func (r *PGRepository) Upsert(ctx context.Context, ack *model.Acknowledgement) error {
	query := `
        INSERT INTO alert_acknowledgements (vendor_id, canonical_name, read_at_price, read_at)
        VALUES (:vendor_id, :canonical_name, :read_at_price, :read_at)
        ON CONFLICT (vendor_id, canonical_name)
        DO UPDATE SET read_at_price = EXCLUDED.read_at_price, read_at = EXCLUDED.read_at
    `
	if _, err := r.DB.NamedExecContext(ctx, query, ack); err != nil {
		return errors.Wrap(&model.StoreError{Err: err}, "acknowledgements upsert")
	}
	return nil
}
