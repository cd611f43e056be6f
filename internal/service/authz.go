package service

import (
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// authorizeProductWrite allows the owning vendor or an admin to mutate product
func authorizeProductWrite(principal *domain.Principal, product *domain.Product) error {
	if principal == nil {
		return &errors.ErrUnauthorized{Message: "authentication required"}
	}
	if principal.IsAdmin() || principal.VendorID == product.VendorID {
		return nil
	}
	return &errors.ErrForbidden{Action: "modify product " + product.ID.String()}
}

func requireAdmin(principal *domain.Principal, action string) error {
	if principal == nil {
		return &errors.ErrUnauthorized{Message: "authentication required"}
	}
	if !principal.IsAdmin() {
		return &errors.ErrForbidden{Action: action}
	}
	return nil
}
