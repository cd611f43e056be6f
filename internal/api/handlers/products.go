package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/images"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

const maxImageSize = 10 << 20

// HandleListProducts handles GET /v1/products
func HandleListProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := parseProductFilter(c)
		if !ok {
			return
		}

		catalog := service.NewCatalogService(repos, nil, cfg.Catalog.PlaceholderImageURL, logger)
		products, err := catalog.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, "Failed to list products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"limit":    filter.Limit,
			"offset":   filter.Offset,
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseID(c, "product")
		if !ok {
			return
		}

		catalog := service.NewCatalogService(repos, nil, cfg.Catalog.PlaceholderImageURL, logger)
		product, err := catalog.GetProduct(c.Request.Context(), productID, c.Query("country"))
		if err != nil {
			respondError(c, logger, "Failed to get product", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// HandleVendorDashboardProducts handles GET /v1/vendor/products
func HandleVendorDashboardProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		catalog := service.NewCatalogService(repos, nil, cfg.Catalog.PlaceholderImageURL, logger)
		products, err := catalog.GetVendorProducts(c.Request.Context(), principal.VendorID)
		if err != nil {
			respondError(c, logger, "Failed to list vendor products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.CreateProductRequest
		if !bindJSON(c, &req) {
			return
		}

		catalog := service.NewCatalogService(repos, nil, "", logger)
		product, err := catalog.AddProduct(c.Request.Context(), principal, req)
		if err != nil {
			respondError(c, logger, "Failed to create product", err)
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateProduct handles PATCH /v1/admin/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, ok := parseID(c, "product")
		if !ok {
			return
		}

		var req service.UpdateProductRequest
		if !bindJSON(c, &req) {
			return
		}

		catalog := service.NewCatalogService(repos, nil, "", logger)
		product, err := catalog.UpdateProduct(c.Request.Context(), principal, productID, req.Patch())
		if err != nil {
			respondError(c, logger, "Failed to update product", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// HandleUploadProductImage handles POST /v1/admin/products/:id/images with a
// multipart "image" field
func HandleUploadProductImage(repos *repository.Repositories, store images.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, ok := parseID(c, "product")
		if !ok {
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if header.Size > maxImageSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
			return
		}
		defer file.Close()

		catalog := service.NewCatalogService(repos, store, "", logger)
		product, err := catalog.AttachImage(c.Request.Context(), principal, productID, header.Header.Get("Content-Type"), file)
		if err != nil {
			respondError(c, logger, "Failed to attach product image", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func parseProductFilter(c *gin.Context) (repository.ProductFilter, bool) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Limit:    50,
	}

	if v := c.Query("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "in_stock must be a boolean"})
			return filter, false
		}
		filter.InStock = &inStock
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return filter, false
		}
		filter.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
			return filter, false
		}
		filter.Offset = offset
	}
	return filter, true
}
