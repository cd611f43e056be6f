package domain

import (
	"github.com/shopspring/decimal"
)

// ProductPatch is a partial product update; nil fields are left unchanged
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Category      *string
	InStock       *bool
	Images        *[]string
	Discount      *decimal.Decimal
	ClearDiscount bool
	BulkPricing   *[]BulkPricingTier
	Weight        *decimal.Decimal
	Dimensions    *Dimensions
	ShippingClass *string
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.InStock == nil && p.Images == nil &&
		p.Discount == nil && !p.ClearDiscount && p.BulkPricing == nil &&
		p.Weight == nil && p.Dimensions == nil && p.ShippingClass == nil
}

// ApplyTo returns a copy of product with the patch applied
func (p ProductPatch) ApplyTo(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if p.Images != nil {
		product.Images = append([]string(nil), (*p.Images)...)
	}
	if p.ClearDiscount {
		product.Discount = nil
	} else if p.Discount != nil {
		d := *p.Discount
		product.Discount = &d
	}
	if p.BulkPricing != nil {
		product.BulkPricing = append([]BulkPricingTier(nil), (*p.BulkPricing)...)
	}
	if p.Weight != nil {
		w := *p.Weight
		product.Weight = &w
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		product.Dimensions = &d
	}
	if p.ShippingClass != nil {
		product.ShippingClass = *p.ShippingClass
	}
	return product
}

// ListPrice is the product price after its percentage discount, unrounded
func (p *Product) ListPrice() decimal.Decimal {
	if p.Discount == nil || p.Discount.IsZero() {
		return p.Price
	}
	hundred := decimal.NewFromInt(100)
	return p.Price.Mul(hundred.Sub(*p.Discount)).Div(hundred)
}
