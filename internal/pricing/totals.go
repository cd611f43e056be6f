package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Catalog is a read-only snapshot of the products a cart refers to
type Catalog map[uuid.UUID]*domain.Product

// Cart is the input of total assembly
type Cart struct {
	Items []domain.CartItem
	// ShippingMethodID selects a method; empty picks the first eligible one.
	ShippingMethodID string
}

// Line is one priced cart line. LineTotal is not rounded.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Totals are computed together from one cart and one country snapshot
type Totals struct {
	Lines          []Line                `json:"lines"`
	ShippingMethod domain.ShippingMethod `json:"shipping_method"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Shipping       decimal.Decimal       `json:"shipping"`
	Tax            decimal.Decimal       `json:"tax"`
	Total          decimal.Decimal       `json:"total"`
}

// QuoteDisplayTotal prices a cart with the snapshot price stored on each cart
// item. It backs the cart page; catalog is consulted for shipping eligibility
// only, never for prices.
func QuoteDisplayTotal(cart Cart, destination domain.Country, catalog Catalog) (*Totals, error) {
	if err := checkNotEmpty(cart); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return nil, &errors.ErrInvalidQuantity{Quantity: item.Quantity}
		}
		if item.Price.IsNegative() {
			return nil, &errors.ErrValidation{Field: "price", Message: "must not be negative"}
		}
		lines = append(lines, newLine(item.ProductID, item.Quantity, item.Price))
	}

	profile, err := profileFor(cart.Items, catalog)
	if err != nil {
		return nil, err
	}
	return assemble(lines, destination, profile, cart.ShippingMethodID)
}

// ComputeCheckoutTotal prices a cart from the current catalog: each line's
// unit price is re-resolved from the product's bulk tiers at the line's
// quantity, capped by the discounted list price. This is the figure charged
// at checkout confirmation.
func ComputeCheckoutTotal(cart Cart, destination domain.Country, catalog Catalog) (*Totals, error) {
	if err := checkNotEmpty(cart); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := catalog[item.ProductID]
		if !ok || product == nil {
			return nil, &errors.ErrNotFound{Resource: "product", ID: item.ProductID.String()}
		}
		if !product.InStock {
			return nil, &errors.ErrOutOfStock{ProductID: product.ID.String()}
		}

		tierPrice, err := ResolveUnitPrice(product.BulkPricing, item.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		unitPrice := decimal.Min(tierPrice, Round(product.ListPrice()))

		lines = append(lines, newLine(item.ProductID, item.Quantity, unitPrice))
	}

	profile, err := profileFor(cart.Items, catalog)
	if err != nil {
		return nil, err
	}
	return assemble(lines, destination, profile, cart.ShippingMethodID)
}

func checkNotEmpty(cart Cart) error {
	if len(cart.Items) == 0 {
		return &errors.ErrValidation{Field: "items", Message: "cart is empty"}
	}
	return nil
}

func newLine(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) Line {
	return Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// assemble runs the shared steps: subtotal, shipping, tax, total. Rounding
// happens on sums only.
func assemble(lines []Line, destination domain.Country, profile CartProfile, methodID string) (*Totals, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	subtotal = Round(subtotal)

	method, err := pickMethod(destination, profile, methodID)
	if err != nil {
		return nil, err
	}
	shipping := Round(method.Price)

	// Shipping is not part of the taxable base.
	tax := ApplyVAT(subtotal, destination.VAT)

	return &Totals{
		Lines:          lines,
		ShippingMethod: method,
		Subtotal:       subtotal,
		Shipping:       shipping,
		Tax:            tax,
		Total:          Round(subtotal.Add(shipping).Add(tax)),
	}, nil
}

func pickMethod(destination domain.Country, profile CartProfile, methodID string) (domain.ShippingMethod, error) {
	methods, err := SelectMethods(destination, profile)
	if err != nil {
		return domain.ShippingMethod{}, err
	}
	if len(methods) == 0 {
		return domain.ShippingMethod{}, &errors.ErrNoShippingAvailable{CountryCode: destination.Code}
	}
	if methodID == "" {
		return methods[0], nil
	}
	for _, method := range methods {
		if method.ID == methodID {
			return method, nil
		}
	}
	return domain.ShippingMethod{}, &errors.ErrNoShippingAvailable{CountryCode: destination.Code, MethodID: methodID}
}

func profileFor(items []domain.CartItem, catalog Catalog) (CartProfile, error) {
	profile := CartProfile{TotalWeight: decimal.Zero}
	classes := make(map[string]struct{})

	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok || product == nil {
			return CartProfile{}, &errors.ErrNotFound{Resource: "product", ID: item.ProductID.String()}
		}
		if product.Weight != nil {
			profile.TotalWeight = profile.TotalWeight.Add(product.Weight.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if product.ShippingClass != "" {
			classes[product.ShippingClass] = struct{}{}
		}
	}

	for class := range classes {
		profile.ShippingClasses = append(profile.ShippingClasses, class)
	}
	sort.Strings(profile.ShippingClasses)
	return profile, nil
}
