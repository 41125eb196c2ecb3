package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
)

// MemoryRepository keeps listings in process, in insertion order.
// Used by the memory store driver and by tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings []model.Listing
}

func NewMemoryRepository(seed ...model.Listing) *MemoryRepository {
	r := &MemoryRepository{}
	r.listings = append(r.listings, seed...)
	return r
}

func (r *MemoryRepository) Create(_ context.Context, l *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append(r.listings, *l)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) filter(keep func(*model.Listing) bool) []model.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Listing{}
	for i := range r.listings {
		if keep(&r.listings[i]) {
			out = append(out, r.listings[i])
		}
	}
	return out
}

func (r *MemoryRepository) FindByCanonicalName(_ context.Context, canonicalName string) ([]model.Listing, error) {
	out := r.filter(func(l *model.Listing) bool { return l.CanonicalName == canonicalName })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *MemoryRepository) FindByVendor(_ context.Context, vendorID string) ([]model.Listing, error) {
	out := r.filter(func(l *model.Listing) bool { return l.VendorID == vendorID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CanonicalName < out[j].CanonicalName })
	return out, nil
}

func (r *MemoryRepository) FindByVendorAndCanonicalName(_ context.Context, vendorID, canonicalName string) ([]model.Listing, error) {
	return r.filter(func(l *model.Listing) bool {
		return l.VendorID == vendorID && l.CanonicalName == canonicalName
	}), nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.Listing, error) {
	return r.filter(func(*model.Listing) bool { return true }), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, f *dto.ListingFields) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		l := &r.listings[i]
		if l.ID != id {
			continue
		}
		if f.CanonicalName != nil {
			l.CanonicalName = *f.CanonicalName
		}
		if f.Price != nil {
			l.Price = *f.Price
		}
		if f.Category != nil {
			l.Category = *f.Category
		}
		if f.Color != nil {
			l.Color = *f.Color
		}
		if f.StemsPerBunch != nil {
			l.StemsPerBunch = *f.StemsPerBunch
		}
		if f.UnitsPerBox != nil {
			l.UnitsPerBox = *f.UnitsPerBox
		}
		if f.BoxType != nil {
			l.BoxType = *f.BoxType
		}
		l.UpdatedAt = time.Now().UTC()
		updated := *l
		return &updated, nil
	}
	return nil, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		if r.listings[i].ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return nil
}
