package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

// respondError maps typed errors to status codes. Anything unrecognised is
// logged and reported as an internal error.
func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	var (
		notFound     *apperrors.ErrNotFound
		unauthorized *apperrors.ErrUnauthorized
		forbidden    *apperrors.ErrForbidden
		conflict     *apperrors.ErrConflict
		validation   *apperrors.ErrValidation
		transition   *apperrors.ErrInvalidStateTransition
		quantity     *apperrors.ErrInvalidQuantity
		tiers        *apperrors.ErrInvalidTierData
		rate         *apperrors.ErrInvalidRate
		noShipping   *apperrors.ErrNoShippingAvailable
		outOfStock   *apperrors.ErrOutOfStock
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &quantity), errors.As(err, &tiers), errors.As(err, &rate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &noShipping), errors.As(err, &outOfStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
		return false
	}
	return true
}
