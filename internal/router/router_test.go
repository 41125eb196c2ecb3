package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	alertH "github.com/fekuna/florist-marketplace-service/internal/alert/handler"
	alertRepo "github.com/fekuna/florist-marketplace-service/internal/alert/repository"
	alertUC "github.com/fekuna/florist-marketplace-service/internal/alert/usecase"
	"github.com/fekuna/florist-marketplace-service/internal/auth"
	catalogH "github.com/fekuna/florist-marketplace-service/internal/catalog/handler"
	catalogUC "github.com/fekuna/florist-marketplace-service/internal/catalog/usecase"
	listingH "github.com/fekuna/florist-marketplace-service/internal/listing/handler"
	listingRepo "github.com/fekuna/florist-marketplace-service/internal/listing/repository"
	listingUC "github.com/fekuna/florist-marketplace-service/internal/listing/usecase"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	orderH "github.com/fekuna/florist-marketplace-service/internal/order/handler"
	orderRepo "github.com/fekuna/florist-marketplace-service/internal/order/repository"
	orderUC "github.com/fekuna/florist-marketplace-service/internal/order/usecase"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/fekuna/florist-marketplace-service/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("router-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newServer(t *testing.T, listings ...model.Listing) *testServer {
	log := logger.NewNop()
	lRepo := listingRepo.NewMemoryRepository(listings...)
	oRepo := orderRepo.NewMemoryRepository()

	h := Handlers{
		Catalog: catalogH.NewCatalogHandler(catalogUC.NewCatalogUseCase(lRepo, oRepo, nil, nil, 0, log), log),
		Listing: listingH.NewListingHandler(listingUC.NewListingUseCase(lRepo, nil, nil, nil, log), log),
		Alert:   alertH.NewAlertHandler(alertUC.NewAlertUseCase(lRepo, alertRepo.NewMemoryRepository(), log), log),
		Order:   orderH.NewOrderHandler(orderUC.NewOrderUseCase(oRepo, nil, nil, log), log),
	}
	return &testServer{t: t, engine: New(Config{JWTSecret: secret, CORSOrigin: "*"}, h, log)}
}

func (s *testServer) do(method, path string, user *auth.User, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		tok, err := auth.SignToken(secret, user, time.Hour)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func listing(id, name string, vendor auth.User, price float64) model.Listing {
	return model.Listing{
		BaseModel:     model.BaseModel{ID: id},
		CanonicalName: name,
		VendorID:      vendor.UserID,
		VendorName:    vendor.Name,
		Price:         price,
		Category:      "Roses",
		Color:         "Red",
		StemsPerBunch: 12,
		UnitsPerBox:   4,
		BoxType:       "FB",
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	s := newServer(t,
		listing("p1", "Red Roses", seed.FloraExpress, 45),
		listing("p2", "Red Roses", seed.BloomDirect, 38),
		listing("p3", "Blue Tulips", seed.GardenGrove, 20),
	)

	w := s.do(http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog []model.CatalogSummary
	decode(t, w, &catalog)
	require.Len(t, catalog, 2)
	assert.Equal(t, 38.0, catalog[0].LowestPrice)

	w = s.do(http.MethodGet, "/api/products?q=tulip", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &catalog)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Blue Tulips", catalog[0].CanonicalName)

	w = s.do(http.MethodGet, "/api/products/trending", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trending []model.TrendingProduct
	decode(t, w, &trending)
	require.Len(t, trending, 2)
	assert.Equal(t, "Red Roses", trending[0].CanonicalName)

	w = s.do(http.MethodGet, "/api/products/"+url.PathEscape("Blue Tulips"), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail model.ProductDetail
	decode(t, w, &detail)
	assert.Len(t, detail.Offers, 1)

	w = s.do(http.MethodGet, "/api/products/Nonexistent", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVendorListingRoutes(t *testing.T) {
	s := newServer(t, listing("p1", "Red Roses", seed.BloomDirect, 38))
	vendor := &seed.FloraExpress

	w := s.do(http.MethodPost, "/api/vendor/products", vendor, gin.H{"canonicalName": "Red Roses", "price": 45})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Listing
	decode(t, w, &created)
	assert.Equal(t, "Flora Express", created.VendorName)
	assert.Equal(t, model.DefaultBoxType, created.BoxType)

	w = s.do(http.MethodPost, "/api/vendor/products", vendor, gin.H{"canonicalName": "Red Roses"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/vendor/products/p1", vendor, gin.H{"price": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/api/vendor/products/missing", vendor, gin.H{"price": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/vendor/products/"+created.ID, vendor, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/vendor/products", vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []model.Listing
	decode(t, w, &mine)
	assert.Len(t, mine, 1)

	w = s.do(http.MethodGet, "/api/vendor/products", &seed.JaneBuyer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/vendor/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodDelete, "/api/vendor/products/"+created.ID, vendor, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotificationRoutes(t *testing.T) {
	s := newServer(t,
		listing("p1", "Red Roses", seed.FloraExpress, 45),
		listing("p2", "Red Roses", seed.BloomDirect, 38),
		listing("p3", "Red Roses", seed.PetalParadise, 41),
	)
	vendor := &seed.FloraExpress

	w := s.do(http.MethodGet, "/api/vendor/notifications/vendor-2", vendor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/vendor/notifications/vendor-1", vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []model.VendorAlert
	decode(t, w, &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, 39.5, alerts[0].MarketAverage)
	assert.False(t, alerts[0].IsRead)

	var unread struct {
		UnreadCount *int `json:"unreadCount"`
	}
	w = s.do(http.MethodGet, "/api/vendor/notifications/vendor-1/unread-count", vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &unread)
	require.NotNil(t, unread.UnreadCount)
	assert.Equal(t, 1, *unread.UnreadCount)

	w = s.do(http.MethodPut, "/api/vendor/notifications/read", vendor, gin.H{"canonicalName": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/vendor/notifications/read", vendor, gin.H{"canonicalName": "Orchids"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var acked struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	w = s.do(http.MethodPut, "/api/vendor/notifications/read-all", vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &acked)
	assert.True(t, acked.Success)
	assert.Equal(t, 1, acked.Count)

	unread.UnreadCount = nil
	w = s.do(http.MethodGet, "/api/vendor/notifications/vendor-1/unread-count", vendor, nil)
	decode(t, w, &unread)
	require.NotNil(t, unread.UnreadCount)
	assert.Equal(t, 0, *unread.UnreadCount)
}

func TestOrderRoutesFeedTrending(t *testing.T) {
	s := newServer(t,
		listing("p1", "Red Roses", seed.FloraExpress, 45),
		listing("p2", "Red Roses", seed.BloomDirect, 38),
		listing("p3", "Blue Tulips", seed.GardenGrove, 20),
	)
	buyer := &seed.JaneBuyer

	order := gin.H{"items": []gin.H{{
		"productId":     "p3",
		"vendorId":      "vendor-4",
		"vendorName":    "Garden Grove",
		"canonicalName": "Blue Tulips",
		"price":         20,
		"quantity":      3,
	}}}

	w := s.do(http.MethodPost, "/api/orders", &seed.FloraExpress, order)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/orders", buyer, gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/orders", buyer, order)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed model.Order
	decode(t, w, &placed)
	assert.Equal(t, 60.0, placed.Total)
	assert.Equal(t, model.OrderStatusPlaced, placed.Status)

	w = s.do(http.MethodGet, "/api/orders", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []model.Order
	decode(t, w, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)

	w = s.do(http.MethodGet, "/api/products/trending", nil, nil)
	var trending []model.TrendingProduct
	decode(t, w, &trending)
	require.Len(t, trending, 1)
	assert.Equal(t, "Blue Tulips", trending[0].CanonicalName)
	assert.Equal(t, 3, trending[0].TotalSold)
}
