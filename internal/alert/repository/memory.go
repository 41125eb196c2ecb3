package repository

import (
	"context"
	"sync"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

type key struct {
	vendorID      string
	canonicalName string
}

type MemoryRepository struct {
	mu   sync.RWMutex
	acks map[key]model.Acknowledgement
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{acks: make(map[key]model.Acknowledgement)}
}

func (r *MemoryRepository) FindByVendor(_ context.Context, vendorID string) ([]model.Acknowledgement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Acknowledgement{}
	for k, a := range r.acks {
		if k.vendorID == vendorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, ack *model.Acknowledgement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acks[key{ack.VendorID, ack.CanonicalName}] = *ack
	return nil
}
