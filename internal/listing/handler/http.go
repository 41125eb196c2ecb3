package handler

import (
	"net/http"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/ginx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTP routes sit behind middleware.Authenticate and RequireVendor.

func (h *ListingHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	listings, err := h.uc.ListVendorListings(c.Request.Context(), u.UserID)
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var body createRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	l, err := h.uc.CreateListing(c.Request.Context(), body.toInput(u))
	if err != nil {
		h.logger.Error("failed to create listing", zap.String("vendor_id", u.UserID), zap.Error(err))
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *ListingHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var fields dto.ListingFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	l, err := h.uc.UpdateListing(c.Request.Context(), &dto.UpdateListingInput{
		ID:       c.Param("id"),
		VendorID: u.UserID,
		Fields:   fields,
	})
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.uc.DeleteListing(c.Request.Context(), u.UserID, c.Param("id")); err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
