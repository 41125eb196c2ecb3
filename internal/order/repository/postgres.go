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

func storeErr(err error, op string) error {
	return errors.Wrapf(&model.StoreError{Err: err}, "orders %s", op)
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr(err, "begin")
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (id, buyer_id, buyer_name, status, total, created_at)
        VALUES (:id, :buyer_id, :buyer_name, :status, :total, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
		return storeErr(err, "create")
	}

	itemQuery := `
        INSERT INTO order_items (
            order_id, position, listing_id, vendor_id, vendor_name, canonical_name, price, quantity
        )
        VALUES (
            :order_id, :position, :listing_id, :vendor_id, :vendor_name, :canonical_name, :price, :quantity
        )
    `
	for i := range o.Items {
		item := o.Items[i]
		item.OrderID = o.ID
		item.Position = i
		if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
			return storeErr(err, "create item")
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr(err, "commit")
	}
	return nil
}

func (r *PGRepository) FindByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	query := `SELECT id, buyer_id, buyer_name, status, total, created_at FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`
	return r.load(ctx, "find by buyer", query, buyerID)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT id, buyer_id, buyer_name, status, total, created_at FROM orders ORDER BY created_at ASC`
	return r.load(ctx, "scan", query)
}

// load reads the order rows and then their items in one query.
func (r *PGRepository) load(ctx context.Context, op, query string, args ...interface{}) ([]model.Order, error) {
	orders := []model.Order{}
	if err := r.DB.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, storeErr(err, op)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	itemQuery, itemArgs, err := sqlx.In(`
        SELECT order_id, position, listing_id, vendor_id, vendor_name, canonical_name, price, quantity
        FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, storeErr(err, op)
	}

	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(itemQuery), itemArgs...); err != nil {
		return nil, storeErr(err, op)
	}
	for _, item := range items {
		o := &orders[index[item.OrderID]]
		o.Items = append(o.Items, item)
	}
	return orders, nil
}
