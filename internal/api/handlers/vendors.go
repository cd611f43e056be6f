package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// VendorResponse is the public view of a vendor
type VendorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleGetVendor handles GET /v1/vendors/:id
func HandleGetVendor(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "vendor")
		if !ok {
			return
		}

		vendor, err := service.NewVendorService(repos, logger).GetVendor(c.Request.Context(), vendorID)
		if err != nil {
			respondError(c, logger, "Failed to get vendor", err)
			return
		}

		c.JSON(http.StatusOK, VendorResponse{ID: vendor.ID.String(), Name: vendor.Name})
	}
}

// HandleGetVendorProducts handles GET /v1/vendors/:id/products
func HandleGetVendorProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "vendor")
		if !ok {
			return
		}

		catalog := service.NewCatalogService(repos, nil, cfg.Catalog.PlaceholderImageURL, logger)
		products, err := catalog.GetVendorProducts(c.Request.Context(), vendorID)
		if err != nil {
			respondError(c, logger, "Failed to list vendor products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
