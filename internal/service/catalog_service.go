package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/images"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

type catalogService struct {
	repos            *repository.Repositories
	images           images.Store
	placeholderImage string
	logger           *zap.Logger
}

// NewCatalogService creates a new catalog service. store may be nil when
// image hosting is not configured.
func NewCatalogService(repos *repository.Repositories, store images.Store, placeholderImage string, logger *zap.Logger) *catalogService {
	return &catalogService{
		repos:            repos,
		images:           store,
		placeholderImage: placeholderImage,
		logger:           logger,
	}
}

// GetProduct returns a product with its display list price. When countryCode
// is set the list price is also converted into that country's currency.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID, countryCode string) (*ProductView, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.view(product)
	if countryCode == "" {
		return view, nil
	}

	country, err := s.repos.Country.GetByCode(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	price, err := pricing.Convert(view.ListPrice, country.Currency.Rate)
	if err != nil {
		return nil, err
	}
	view.Localized = &LocalizedPrice{
		CountryCode:  country.Code,
		CurrencyCode: country.Currency.Code,
		Symbol:       country.Currency.Symbol,
		Price:        price,
	}
	return view, nil
}

// ListProducts browses the catalog
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*ProductView, error) {
	products, err := s.repos.Product.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(products), nil
}

// GetVendorProducts lists the products of an existing vendor
func (s *catalogService) GetVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*ProductView, error) {
	if _, err := s.repos.Vendor.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	products, err := s.repos.Product.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return s.views(products), nil
}

// AddProduct creates a product owned by the principal, or by any vendor when
// the principal is an admin
func (s *catalogService) AddProduct(ctx context.Context, principal *domain.Principal, req CreateProductRequest) (*domain.Product, error) {
	if principal == nil {
		return nil, &errors.ErrUnauthorized{Message: "authentication required"}
	}

	product := &domain.Product{
		VendorID:      principal.VendorID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		InStock:       req.InStock,
		Images:        req.Images,
		Discount:      req.Discount,
		BulkPricing:   req.BulkPricing,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		ShippingClass: req.ShippingClass,
	}
	if req.VendorID != nil {
		product.VendorID = *req.VendorID
	}

	if err := authorizeProductWrite(principal, product); err != nil {
		return nil, err
	}
	if product.VendorID != principal.VendorID {
		if _, err := s.repos.Vendor.GetByID(ctx, product.VendorID); err != nil {
			return nil, err
		}
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", product.VendorID.String()),
	)
	return product, nil
}

// UpdateProduct applies a partial update. The write only succeeds if nobody
// else updated the product since it was read.
func (s *catalogService) UpdateProduct(ctx context.Context, principal *domain.Principal, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	if principal == nil {
		return nil, &errors.ErrUnauthorized{Message: "authentication required"}
	}
	if patch.IsEmpty() {
		return nil, &errors.ErrValidation{Field: "body", Message: "no fields to update"}
	}

	current, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeProductWrite(principal, current); err != nil {
		return nil, err
	}

	next := patch.ApplyTo(*current)
	next.Name = strings.TrimSpace(next.Name)
	if err := validateProduct(&next); err != nil {
		return nil, err
	}

	if err := s.repos.Product.Update(ctx, &next, current.Version); err != nil {
		return nil, err
	}
	return &next, nil
}

// AttachImage uploads an image and appends its URL to the product
func (s *catalogService) AttachImage(ctx context.Context, principal *domain.Principal, id uuid.UUID, contentType string, body io.Reader) (*domain.Product, error) {
	if principal == nil {
		return nil, &errors.ErrUnauthorized{Message: "authentication required"}
	}

	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeProductWrite(principal, product); err != nil {
		return nil, err
	}

	ext, ok := images.Extension(contentType)
	if !ok {
		return nil, &errors.ErrValidation{Field: "image", Message: fmt.Sprintf("unsupported content type %q", contentType)}
	}
	if s.images == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	ref, err := s.images.Put(ctx, images.ProductImageKey(product.ID, ext), contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	product.Images = append(product.Images, ref.URL)
	if err := s.repos.Product.Update(ctx, product, product.Version); err != nil {
		s.logger.Warn("Image stored but product update failed",
			zap.String("product_id", product.ID.String()),
			zap.String("identifier", ref.Identifier),
			zap.Error(err),
		)
		return nil, err
	}
	return product, nil
}

func (s *catalogService) views(products []*domain.Product) []*ProductView {
	out := make([]*ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, s.view(p))
	}
	return out
}

// view substitutes the placeholder for products without images
func (s *catalogService) view(product *domain.Product) *ProductView {
	if len(product.Images) == 0 && s.placeholderImage != "" {
		product.Images = []string{s.placeholderImage}
	}
	return &ProductView{
		Product:   product,
		ListPrice: pricing.Round(product.ListPrice()),
	}
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return &errors.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if p.Price.IsNegative() {
		return &errors.ErrValidation{Field: "price", Message: "must not be negative"}
	}
	if p.Discount != nil && (p.Discount.IsNegative() || p.Discount.GreaterThanOrEqual(hundred)) {
		return &errors.ErrValidation{Field: "discount", Message: "must be at least 0 and below 100"}
	}
	if p.Weight != nil && p.Weight.IsNegative() {
		return &errors.ErrValidation{Field: "weight", Message: "must not be negative"}
	}
	if p.Dimensions != nil && (p.Dimensions.Length.IsNegative() || p.Dimensions.Width.IsNegative() || p.Dimensions.Height.IsNegative()) {
		return &errors.ErrValidation{Field: "dimensions", Message: "must not be negative"}
	}
	return pricing.ValidateTiers(p.BulkPricing, p.Price)
}
