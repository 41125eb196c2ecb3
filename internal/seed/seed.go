// Package seed loads the demo marketplace: six vendors, one buyer and a
// catalog of sixteen products listed across them.
package seed

import (
	"context"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/google/uuid"
)

var (
	FloraExpress  = auth.User{UserID: "vendor-1", Email: "flora@express.com", Role: auth.RoleVendor, Name: "Flora Express"}
	BloomDirect   = auth.User{UserID: "vendor-2", Email: "bloom@direct.com", Role: auth.RoleVendor, Name: "Bloom Direct"}
	PetalParadise = auth.User{UserID: "vendor-3", Email: "petal@paradise.com", Role: auth.RoleVendor, Name: "Petal Paradise"}
	GardenGrove   = auth.User{UserID: "vendor-4", Email: "info@gardengrove.com", Role: auth.RoleVendor, Name: "Garden Grove"}
	RoseAndStem   = auth.User{UserID: "vendor-5", Email: "hello@rosestem.com", Role: auth.RoleVendor, Name: "Rose & Stem"}
	Wildflower    = auth.User{UserID: "vendor-6", Email: "orders@wildflower.co", Role: auth.RoleVendor, Name: "Wildflower Co"}
	JaneBuyer     = auth.User{UserID: "buyer-1", Email: "jane@buyer.com", Role: auth.RoleBuyer, Name: "Jane Buyer"}
)

func Users() []auth.User {
	return []auth.User{FloraExpress, BloomDirect, PetalParadise, GardenGrove, RoseAndStem, Wildflower, JaneBuyer}
}

type offer struct {
	vendor auth.User
	price  float64
}

type product struct {
	name     string
	category string
	color    string
	stems    int
	units    int
	boxType  string
	offers   []offer
}

var products = []product{
	{"Red Roses - 1 Dozen", "Roses", "Red", 12, 4, "FB", []offer{{FloraExpress, 45}, {BloomDirect, 38}, {PetalParadise, 41}, {RoseAndStem, 39}}},
	{"Assorted Hydrangea", "Hydrangea", "Assorted", 10, 5, "QB", []offer{{FloraExpress, 62}, {BloomDirect, 70}, {PetalParadise, 65}, {RoseAndStem, 60}}},
	{"Bright Yellow Sunflower", "Sunflower", "Bright Yellow", 5, 8, "EB", []offer{{FloraExpress, 28}, {BloomDirect, 25}, {GardenGrove, 24}, {Wildflower, 26}}},
	{"Blue Alstroemeria", "Alstroemeria", "Blue", 10, 10, "EB", []offer{{FloraExpress, 32}, {BloomDirect, 35}, {PetalParadise, 31}, {Wildflower, 30}}},
	{"Green 50cm Gerbera", "Gerbera", "Green", 4, 25, "QB", []offer{{FloraExpress, 40}, {BloomDirect, 42}, {GardenGrove, 39}, {Wildflower, 41}}},
	{"20cm Agapanthus", "Agapanthus", "Purple", 4, 11, "QB", []offer{{FloraExpress, 22}, {BloomDirect, 18}, {GardenGrove, 20}}},
	{"Burgundy Alstroemeria", "Alstroemeria", "Burgundy", 10, 10, "F", []offer{{FloraExpress, 30}, {BloomDirect, 33}, {GardenGrove, 29}}},
	{"White Tulips - Premium", "Tulips", "White", 10, 6, "FB", []offer{{FloraExpress, 50}, {BloomDirect, 48}, {PetalParadise, 49}, {RoseAndStem, 47}}},
	{"Pink Dahlia Rose", "Roses", "Pink", 10, 5, "EB", []offer{{FloraExpress, 55}, {BloomDirect, 52}, {GardenGrove, 51}, {RoseAndStem, 53}}},
	{"Green Yoko Ono Pom Button", "Pom Button", "Green", 12, 3, "FB", []offer{{FloraExpress, 36}, {BloomDirect, 36}, {PetalParadise, 34}, {Wildflower, 35}}},
	{"Bleach White Amaranthus", "Amaranthus", "Bleach White", 10, 2, "QB", []offer{{FloraExpress, 44}, {RoseAndStem, 43}}},
	{"Lavender Orchid Spray", "Orchids", "Lavender", 6, 4, "EB", []offer{{BloomDirect, 75}, {Wildflower, 72}}},
	{"Coral Peonies", "Peonies", "Coral", 10, 6, "FB", []offer{{PetalParadise, 58}, {GardenGrove, 55}, {RoseAndStem, 57}}},
	{"White Ranunculus", "Ranunculus", "White", 10, 8, "EB", []offer{{BloomDirect, 46}, {RoseAndStem, 44}, {Wildflower, 45}}},
	{"Mixed Eucalyptus Bundle", "Greenery", "Green", 15, 6, "QB", []offer{{FloraExpress, 24}, {PetalParadise, 22}, {GardenGrove, 23}, {Wildflower, 21}}},
	{"Orange Marigold Bunch", "Marigold", "Orange", 12, 7, "EB", []offer{{BloomDirect, 27}, {RoseAndStem, 26}}},
}

// Listings expands the demo catalog into one listing per vendor offer.
// Creation times are spaced a millisecond apart so stores that order by
// creation time keep the seed order.
func Listings(now time.Time) []model.Listing {
	var out []model.Listing
	for _, p := range products {
		for _, o := range p.offers {
			ts := now.Add(time.Duration(len(out)) * time.Millisecond)
			out = append(out, model.Listing{
				BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: ts, UpdatedAt: ts},
				CanonicalName: p.name,
				VendorID:      o.vendor.UserID,
				VendorName:    o.vendor.Name,
				Price:         o.price,
				Category:      p.category,
				Color:         p.color,
				StemsPerBunch: p.stems,
				UnitsPerBox:   p.units,
				BoxType:       p.boxType,
			})
		}
	}
	return out
}

// Run loads the demo listings into an empty store and reports how many were
// written. A store that already holds listings is left untouched.
func Run(ctx context.Context, repo listing.Repository, now time.Time) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	listings := Listings(now)
	for i := range listings {
		if err := repo.Create(ctx, &listings[i]); err != nil {
			return i, err
		}
	}
	return len(listings), nil
}
