package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

type countryDocument struct {
	Code     string               `bson:"_id"`
	Name     string               `bson:"name"`
	Currency currencyDocument     `bson:"currency"`
	Shipping shippingDocument     `bson:"shipping"`
	VAT      primitive.Decimal128 `bson:"vat"`
}

type currencyDocument struct {
	Code   string               `bson:"code"`
	Symbol string               `bson:"symbol"`
	Rate   primitive.Decimal128 `bson:"rate"`
}

type shippingDocument struct {
	Available bool             `bson:"available"`
	Methods   []methodDocument `bson:"methods"`
}

type methodDocument struct {
	ID                string                `bson:"id"`
	Name              string                `bson:"name"`
	Price             primitive.Decimal128  `bson:"price"`
	EstimatedDelivery string                `bson:"estimated_delivery"`
	ShippingClasses   []string              `bson:"shipping_classes,omitempty"`
	MaxWeight         *primitive.Decimal128 `bson:"max_weight,omitempty"`
}

type countryRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *mongo.Database, logger *zap.Logger) *countryRepository {
	return &countryRepository{
		col:    db.Collection(countriesCollection),
		logger: logger,
	}
}

func (r *countryRepository) GetByCode(ctx context.Context, code string) (*domain.Country, error) {
	var doc countryDocument
	err := r.col.FindOne(ctx, bson.M{"_id": strings.ToUpper(code)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperrors.ErrNotFound{Resource: "country", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get country", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return fromCountryDocument(doc)
}

func (r *countryRepository) List(ctx context.Context) ([]*domain.Country, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed to list countries", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []countryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode countries: %w", err)
	}

	countries := make([]*domain.Country, 0, len(docs))
	for _, doc := range docs {
		country, err := fromCountryDocument(doc)
		if err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, nil
}

func (r *countryRepository) Upsert(ctx context.Context, country *domain.Country) error {
	doc, err := toCountryDocument(country)
	if err != nil {
		return err
	}

	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": doc.Code}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to upsert country", zap.String("code", doc.Code), zap.Error(err))
		return err
	}
	return nil
}

func toCountryDocument(c *domain.Country) (*countryDocument, error) {
	var codec decimalCodec

	doc := &countryDocument{
		Code: strings.ToUpper(c.Code),
		Name: c.Name,
		Currency: currencyDocument{
			Code:   c.Currency.Code,
			Symbol: c.Currency.Symbol,
			Rate:   codec.encode(c.Currency.Rate),
		},
		Shipping: shippingDocument{
			Available: c.Shipping.Available,
			Methods:   make([]methodDocument, 0, len(c.Shipping.Methods)),
		},
		VAT: codec.encode(c.VAT),
	}
	for _, m := range c.Shipping.Methods {
		doc.Shipping.Methods = append(doc.Shipping.Methods, methodDocument{
			ID:                m.ID,
			Name:              m.Name,
			Price:             codec.encode(m.Price),
			EstimatedDelivery: m.EstimatedDelivery,
			ShippingClasses:   m.ShippingClasses,
			MaxWeight:         codec.encodePtr(m.MaxWeight),
		})
	}

	return doc, codec.err
}

func fromCountryDocument(doc countryDocument) (*domain.Country, error) {
	var codec decimalCodec

	c := &domain.Country{
		Code: doc.Code,
		Name: doc.Name,
		Currency: domain.Currency{
			Code:   doc.Currency.Code,
			Symbol: doc.Currency.Symbol,
			Rate:   codec.decode(doc.Currency.Rate),
		},
		Shipping: domain.ShippingConfig{Available: doc.Shipping.Available},
		VAT:      codec.decode(doc.VAT),
	}
	for _, m := range doc.Shipping.Methods {
		c.Shipping.Methods = append(c.Shipping.Methods, domain.ShippingMethod{
			ID:                m.ID,
			Name:              m.Name,
			Price:             codec.decode(m.Price),
			EstimatedDelivery: m.EstimatedDelivery,
			ShippingClasses:   m.ShippingClasses,
			MaxWeight:         codec.decodePtr(m.MaxWeight),
		})
	}

	if codec.err != nil {
		return nil, codec.err
	}
	return c, nil
}
