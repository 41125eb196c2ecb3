package handler

import (
	"net/http"

	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/ginx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListProducts serves GET /api/products. Any of q, category or color narrows
// the result through SearchCatalog.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filters := &dto.SearchFilters{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Color:    c.Query("color"),
	}

	if filters.Empty() {
		summaries, err := h.uc.ListCatalog(c.Request.Context())
		if err != nil {
			h.logger.Error("failed to list catalog", zap.Error(err))
			ginx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, summaries)
		return
	}

	summaries, err := h.uc.SearchCatalog(c.Request.Context(), filters)
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *CatalogHandler) Trending(c *gin.Context) {
	trending, err := h.uc.ListTrending(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list trending products", zap.Error(err))
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, trending)
}

func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	detail, err := h.uc.GetProductDetail(c.Request.Context(), c.Param("canonicalName"))
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
