package handler

import (
	"net/http"

	"github.com/fekuna/florist-marketplace-service/internal/order/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/ginx"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *OrderHandler) Place(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var body placeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
		return
	}

	o, err := h.uc.PlaceOrder(c.Request.Context(), &dto.PlaceOrderInput{
		BuyerID:   u.UserID,
		BuyerName: u.Name,
		Items:     body.Items,
	})
	if err != nil {
		h.logger.Error("failed to place order", zap.String("buyer_id", u.UserID), zap.Error(err))
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	orders, err := h.uc.ListBuyerOrders(c.Request.Context(), u.UserID)
	if err != nil {
		ginx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
