package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleListCountries handles GET /v1/countries
func HandleListCountries(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := service.NewCountryService(repos, logger).ListCountries(c.Request.Context())
		if err != nil {
			respondError(c, logger, "Failed to list countries", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"countries": countries})
	}
}

// HandleShippingMethods handles GET /v1/countries/:code/shipping-methods
func HandleShippingMethods(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods, err := service.NewCountryService(repos, logger).ShippingMethods(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, logger, "Failed to list shipping methods", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"methods": methods})
	}
}

// HandleUpsertCountry handles PUT /v1/admin/countries/:code
func HandleUpsertCountry(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var country domain.Country
		if !bindJSON(c, &country) {
			return
		}
		country.Code = c.Param("code")

		if err := service.NewCountryService(repos, logger).UpsertCountry(c.Request.Context(), principal, &country); err != nil {
			respondError(c, logger, "Failed to upsert country", err)
			return
		}

		c.JSON(http.StatusOK, country)
	}
}
