package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductPatch_ApplyTo(t *testing.T) {
	discount := decimal.RequireFromString("10")
	original := Product{
		Name:     "Mug",
		Price:    decimal.RequireFromString("8.00"),
		Category: "kitchen",
		Images:   []string{"a.jpg"},
		Discount: &discount,
	}

	name := "Large mug"
	images := []string{"b.jpg", "c.jpg"}
	patched := ProductPatch{Name: &name, Images: &images, ClearDiscount: true}.ApplyTo(original)

	require.Equal(t, "Large mug", patched.Name)
	require.Equal(t, "kitchen", patched.Category)
	require.Equal(t, []string{"b.jpg", "c.jpg"}, patched.Images)
	require.Nil(t, patched.Discount)

	// The original is left alone.
	require.Equal(t, "Mug", original.Name)
	require.NotNil(t, original.Discount)
	images[0] = "changed.jpg"
	require.Equal(t, "b.jpg", patched.Images[0])
}

func TestProductPatch_IsEmpty(t *testing.T) {
	require.True(t, ProductPatch{}.IsEmpty())
	inStock := false
	require.False(t, ProductPatch{InStock: &inStock}.IsEmpty())
	require.False(t, ProductPatch{ClearDiscount: true}.IsEmpty())
}

func TestProduct_ListPrice(t *testing.T) {
	p := Product{Price: decimal.RequireFromString("20.00")}
	require.True(t, p.ListPrice().Equal(decimal.RequireFromString("20")))

	discount := decimal.RequireFromString("25")
	p.Discount = &discount
	require.True(t, p.ListPrice().Equal(decimal.RequireFromString("15")))
}
