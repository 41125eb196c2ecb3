package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const listingColumns = `id, canonical_name, vendor_id, vendor_name, price, category, color,
    stems_per_bunch, units_per_box, box_type, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func storeErr(err error, op string) error {
	return errors.Wrapf(&model.StoreError{Err: err}, "listings %s", op)
}

func (r *PGRepository) Create(ctx context.Context, l *model.Listing) error {
	query := `
        INSERT INTO listings (
            id, canonical_name, vendor_id, vendor_name, price, category, color,
            stems_per_bunch, units_per_box, box_type, created_at, updated_at
        )
        VALUES (
            :id, :canonical_name, :vendor_id, :vendor_name, :price, :category, :color,
            :stems_per_bunch, :units_per_box, :box_type, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, l); err != nil {
		return storeErr(err, "create")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	var l model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &l, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(err, "find by id")
	}
	return &l, nil
}

func (r *PGRepository) selectListings(ctx context.Context, op, query string, args ...interface{}) ([]model.Listing, error) {
	listings := []model.Listing{}
	if err := r.DB.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, storeErr(err, op)
	}
	return listings, nil
}

func (r *PGRepository) FindByCanonicalName(ctx context.Context, canonicalName string) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE canonical_name = $1 ORDER BY price ASC, created_at ASC`
	return r.selectListings(ctx, "find by canonical name", query, canonicalName)
}

func (r *PGRepository) FindByVendor(ctx context.Context, vendorID string) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE vendor_id = $1 ORDER BY canonical_name ASC, created_at ASC`
	return r.selectListings(ctx, "find by vendor", query, vendorID)
}

func (r *PGRepository) FindByVendorAndCanonicalName(ctx context.Context, vendorID, canonicalName string) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE vendor_id = $1 AND canonical_name = $2 ORDER BY created_at ASC`
	return r.selectListings(ctx, "find by vendor and canonical name", query, vendorID, canonicalName)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at ASC, id ASC`
	return r.selectListings(ctx, "scan", query)
}

func (r *PGRepository) Update(ctx context.Context, id string, f *dto.ListingFields) (*model.Listing, error) {
	sets := []string{"updated_at = NOW()"}
	args := map[string]interface{}{"id": id}

	add := func(column string, value interface{}) {
		sets = append(sets, column+" = :"+column)
		args[column] = value
	}
	if f.CanonicalName != nil {
		add("canonical_name", *f.CanonicalName)
	}
	if f.Price != nil {
		add("price", *f.Price)
	}
	if f.Category != nil {
		add("category", *f.Category)
	}
	if f.Color != nil {
		add("color", *f.Color)
	}
	if f.StemsPerBunch != nil {
		add("stems_per_bunch", *f.StemsPerBunch)
	}
	if f.UnitsPerBox != nil {
		add("units_per_box", *f.UnitsPerBox)
	}
	if f.BoxType != nil {
		add("box_type", *f.BoxType)
	}

	query := `UPDATE listings SET ` + strings.Join(sets, ", ") + ` WHERE id = :id RETURNING ` + listingColumns
	rows, err := r.DB.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, storeErr(err, "update")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storeErr(err, "update")
		}
		return nil, nil
	}
	var l model.Listing
	if err := rows.StructScan(&l); err != nil {
		return nil, storeErr(err, "update")
	}
	return &l, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id); err != nil {
		return storeErr(err, "delete")
	}
	return nil
}
