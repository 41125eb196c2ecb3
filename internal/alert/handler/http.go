package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/ginx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownVendor rejects requests for another vendor's notifications.
func ownVendor(c *gin.Context) (string, bool) {
	u := middleware.CurrentUser(c)
	if c.Param("vendorId") != u.UserID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Can only view your own notifications"})
		return "", false
	}
	return u.UserID, true
}

func (h *AlertHandler) List(c *gin.Context) {
	id, ok := ownVendor(c)
	if !ok {
		return
	}
	alerts, err := h.uc.ListVendorAlerts(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to list vendor alerts", zap.String("vendor_id", id), zap.Error(err))
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) UnreadCount(c *gin.Context) {
	id, ok := ownVendor(c)
	if !ok {
		return
	}
	n, err := h.uc.GetUnreadAlertCount(c.Request.Context(), id)
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": n})
}

type ackRequest struct {
	CanonicalName string `json:"canonicalName"`
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var body ackRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "canonicalName is required"})
		return
	}
	if err := h.uc.AcknowledgeAlert(c.Request.Context(), u.UserID, body.CanonicalName); err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlertHandler) MarkAllRead(c *gin.Context) {
	u := middleware.CurrentUser(c)
	n, err := h.uc.AcknowledgeAllAlerts(c.Request.Context(), u.UserID)
	if err != nil {
		var partial *model.PartialAckError
		if errors.As(err, &partial) {
			h.logger.Warn("partially acknowledged alerts",
				zap.String("vendor_id", u.UserID),
				zap.Int("acknowledged", partial.Acknowledged),
				zap.Strings("failed", partial.Failed),
			)
			c.AbortWithStatusJSON(ginx.StatusFor(err), gin.H{
				"success": false,
				"count":   n,
				"failed":  partial.Failed,
				"error":   "Some notifications could not be marked read",
			})
			return
		}
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
}
