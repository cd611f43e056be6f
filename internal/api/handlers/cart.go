package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleCartQuote handles POST /v1/cart/quote
func HandleCartQuote(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuoteRequest
		if !bindJSON(c, &req) {
			return
		}

		checkout := service.NewCheckoutService(repos, cfg.Catalog.BaseCurrency, nil, logger)
		quote, err := checkout.Quote(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to quote cart", err)
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(cfg *config.Config, repos *repository.Repositories, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if !bindJSON(c, &req) {
			return
		}

		checkout := service.NewCheckoutService(repos, cfg.Catalog.BaseCurrency, m, logger)
		resp, err := checkout.Checkout(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to place order", err)
			return
		}

		c.JSON(http.StatusCreated, resp)
	}
}
