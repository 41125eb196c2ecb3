package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	orders []model.Order
}

func NewMemoryRepository(seed ...model.Order) *MemoryRepository {
	r := &MemoryRepository{}
	for _, o := range seed {
		r.orders = append(r.orders, clone(o))
	}
	return r
}

func clone(o model.Order) model.Order {
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return o
}

func (r *MemoryRepository) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, clone(*o))
	return nil
}

func (r *MemoryRepository) FindByBuyer(_ context.Context, buyerID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			out = append(out, clone(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, clone(o))
	}
	return out, nil
}
