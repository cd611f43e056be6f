package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

const (
	vendorContextKey    = "vendor"
	principalContextKey = "principal"
)

// AuthMiddleware resolves the bearer API key to a vendor and stores the
// vendor and its principal in the request context
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	vendors := service.NewVendorService(repos, logger)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		vendor, principal, err := vendors.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			var unauthorized *apperrors.ErrUnauthorized
			if !errors.As(err, &unauthorized) {
				logger.Error("Failed to authenticate vendor", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		c.Set(vendorContextKey, vendor)
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// GetVendorFromContext returns the authenticated vendor
func GetVendorFromContext(c *gin.Context) (*domain.Vendor, bool) {
	v, ok := c.Get(vendorContextKey)
	if !ok {
		return nil, false
	}
	vendor, ok := v.(*domain.Vendor)
	return vendor, ok
}

// GetPrincipalFromContext returns the authenticated principal
func GetPrincipalFromContext(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*domain.Principal)
	return principal, ok
}
