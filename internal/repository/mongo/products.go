package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

type productDocument struct {
	ID            string                `bson:"_id"`
	VendorID      string                `bson:"vendor_id"`
	Name          string                `bson:"name"`
	Description   string                `bson:"description"`
	Price         primitive.Decimal128  `bson:"price"`
	Category      string                `bson:"category"`
	InStock       bool                  `bson:"in_stock"`
	Images        []string              `bson:"images"`
	Discount      *primitive.Decimal128 `bson:"discount,omitempty"`
	Rating        *float64              `bson:"rating,omitempty"`
	Reviews       []reviewDocument      `bson:"reviews,omitempty"`
	BulkPricing   []tierDocument        `bson:"bulk_pricing,omitempty"`
	Weight        *primitive.Decimal128 `bson:"weight,omitempty"`
	Dimensions    *dimensionsDocument   `bson:"dimensions,omitempty"`
	ShippingClass string                `bson:"shipping_class,omitempty"`
	Version       int64                 `bson:"version"`
	CreatedAt     time.Time             `bson:"created_at"`
	UpdatedAt     time.Time             `bson:"updated_at"`
}

type tierDocument struct {
	Quantity int                  `bson:"quantity"`
	Price    primitive.Decimal128 `bson:"price"`
}

type dimensionsDocument struct {
	Length primitive.Decimal128 `bson:"length"`
	Width  primitive.Decimal128 `bson:"width"`
	Height primitive.Decimal128 `bson:"height"`
}

type reviewDocument struct {
	ID        string    `bson:"id"`
	Author    string    `bson:"author"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"created_at"`
}

type productRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *mongo.Database, logger *zap.Logger) *productRepository {
	return &productRepository{
		col:    db.Collection(productsCollection),
		logger: logger,
	}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var doc productDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}

	return fromProductDocument(doc)
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}}, options.Find())
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.InStock != nil {
		query["in_stock"] = *filter.InStock
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	return r.find(ctx, query, opts)
}

func (r *productRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"vendor_id": vendorID.String()}, opts)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now

	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &apperrors.ErrConflict{Resource: "product", ID: product.ID.String()}
		}
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

// Update replaces the document only while its version is expectedVersion
func (r *productRepository) Update(ctx context.Context, product *domain.Product, expectedVersion int64) error {
	next := *product
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()

	doc, err := toProductDocument(&next)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": product.ID.String(), "version": expectedVersion}
	result, err := r.col.ReplaceOne(ctx, filter, doc)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}

	if result.MatchedCount == 0 {
		count, err := r.col.CountDocuments(ctx, bson.M{"_id": product.ID.String()})
		if err != nil {
			return err
		}
		if count == 0 {
			return &apperrors.ErrNotFound{Resource: "product", ID: product.ID.String()}
		}
		return &apperrors.ErrConflict{Resource: "product", ID: product.ID.String()}
	}

	*product = next
	return nil
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Product, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := fromProductDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func toProductDocument(p *domain.Product) (*productDocument, error) {
	var codec decimalCodec

	doc := &productDocument{
		ID:            p.ID.String(),
		VendorID:      p.VendorID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         codec.encode(p.Price),
		Category:      p.Category,
		InStock:       p.InStock,
		Images:        p.Images,
		Discount:      codec.encodePtr(p.Discount),
		Rating:        p.Rating,
		Weight:        codec.encodePtr(p.Weight),
		ShippingClass: p.ShippingClass,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	for _, tier := range p.BulkPricing {
		doc.BulkPricing = append(doc.BulkPricing, tierDocument{Quantity: tier.Quantity, Price: codec.encode(tier.Price)})
	}
	for _, review := range p.Reviews {
		doc.Reviews = append(doc.Reviews, reviewDocument{
			ID:        review.ID.String(),
			Author:    review.Author,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	if p.Dimensions != nil {
		doc.Dimensions = &dimensionsDocument{
			Length: codec.encode(p.Dimensions.Length),
			Width:  codec.encode(p.Dimensions.Width),
			Height: codec.encode(p.Dimensions.Height),
		}
	}

	return doc, codec.err
}

func fromProductDocument(doc productDocument) (*domain.Product, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("mongo: product id %q: %w", doc.ID, err)
	}
	vendorID, err := uuid.Parse(doc.VendorID)
	if err != nil {
		return nil, fmt.Errorf("mongo: vendor id %q: %w", doc.VendorID, err)
	}

	var codec decimalCodec
	p := &domain.Product{
		ID:            id,
		VendorID:      vendorID,
		Name:          doc.Name,
		Description:   doc.Description,
		Price:         codec.decode(doc.Price),
		Category:      doc.Category,
		InStock:       doc.InStock,
		Images:        doc.Images,
		Discount:      codec.decodePtr(doc.Discount),
		Rating:        doc.Rating,
		Weight:        codec.decodePtr(doc.Weight),
		ShippingClass: doc.ShippingClass,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	for _, tier := range doc.BulkPricing {
		p.BulkPricing = append(p.BulkPricing, domain.BulkPricingTier{Quantity: tier.Quantity, Price: codec.decode(tier.Price)})
	}
	for _, review := range doc.Reviews {
		reviewID, _ := uuid.Parse(review.ID)
		p.Reviews = append(p.Reviews, domain.Review{
			ID:        reviewID,
			Author:    review.Author,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	if doc.Dimensions != nil {
		p.Dimensions = &domain.Dimensions{
			Length: codec.decode(doc.Dimensions.Length),
			Width:  codec.decode(doc.Dimensions.Width),
			Height: codec.decode(doc.Dimensions.Height),
		}
	}

	if codec.err != nil {
		return nil, codec.err
	}
	return p, nil
}
