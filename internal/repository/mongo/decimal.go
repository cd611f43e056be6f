package mongo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decimalCodec converts between decimal.Decimal and Decimal128, keeping the
// first error so a whole document can be converted before checking.
type decimalCodec struct {
	err error
}

func (c *decimalCodec) encode(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("mongo: encode decimal %s: %w", d.String(), err)
	}
	return v
}

func (c *decimalCodec) encodePtr(d *decimal.Decimal) *primitive.Decimal128 {
	if d == nil {
		return nil
	}
	v := c.encode(*d)
	return &v
}

func (c *decimalCodec) decode(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("mongo: decode decimal %s: %w", v.String(), err)
	}
	return d
}

func (c *decimalCodec) decodePtr(v *primitive.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := c.decode(*v)
	return &d
}
