package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleGetOrder handles GET /v1/orders/:id. Anonymous callers only see
// status, totals and tracking.
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseID(c, "order")
		if !ok {
			return
		}

		view, err := service.NewOrderService(repos, logger).TrackOrder(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, "Failed to get order", err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

// HandleGetOrderDetail handles GET /v1/admin/orders/:id
func HandleGetOrderDetail(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, orderID, ok := orderAction(c)
		if !ok {
			return
		}

		order, err := service.NewOrderService(repos, logger).GetOrderDetail(c.Request.Context(), principal, orderID)
		if err != nil {
			respondError(c, logger, "Failed to get order", err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Parse query parameters
		status := domain.OrderStatus(c.Query("status"))
		limit := 50
		offset := 0
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
				limit = l
			}
		}
		if offsetStr := c.Query("offset"); offsetStr != "" {
			if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
				offset = o
			}
		}

		orders, err := service.NewOrderService(repos, logger).ListOrders(c.Request.Context(), principal, status, limit, offset)
		if err != nil {
			respondError(c, logger, "Failed to list orders", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleProcessOrder handles POST /v1/admin/orders/:id/process
func HandleProcessOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, orderID, ok := orderAction(c)
		if !ok {
			return
		}

		order, err := service.NewOrderService(repos, logger).ProcessOrder(c.Request.Context(), principal, orderID)
		if err != nil {
			respondError(c, logger, "Failed to process order", err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// HandleShipOrder handles POST /v1/admin/orders/:id/ship
func HandleShipOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, orderID, ok := orderAction(c)
		if !ok {
			return
		}

		var req service.ShipOrderRequest
		if !bindJSON(c, &req) {
			return
		}

		order, err := service.NewOrderService(repos, logger).ShipOrder(c.Request.Context(), principal, orderID, req)
		if err != nil {
			respondError(c, logger, "Failed to ship order", err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// HandleDeliverOrder handles POST /v1/admin/orders/:id/deliver
func HandleDeliverOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, orderID, ok := orderAction(c)
		if !ok {
			return
		}

		order, err := service.NewOrderService(repos, logger).DeliverOrder(c.Request.Context(), principal, orderID)
		if err != nil {
			respondError(c, logger, "Failed to deliver order", err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// HandleCancelOrder handles POST /v1/admin/orders/:id/cancel. The body is
// optional.
func HandleCancelOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, orderID, ok := orderAction(c)
		if !ok {
			return
		}

		var req service.CancelOrderRequest
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			// an empty chunked body decodes to io.EOF
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation failed",
					"details": err.Error(),
				})
				return
			}
		}

		order, err := service.NewOrderService(repos, logger).CancelOrder(c.Request.Context(), principal, orderID, req.Reason)
		if err != nil {
			respondError(c, logger, "Failed to cancel order", err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func orderAction(c *gin.Context) (*domain.Principal, uuid.UUID, bool) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, uuid.Nil, false
	}

	orderID, ok := parseID(c, "order")
	if !ok {
		return nil, uuid.Nil, false
	}
	return principal, orderID, true
}
