// Package mongo stores the catalog and country reference data in MongoDB.
// Money is stored as Decimal128.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jafarshop/storefront/internal/config"
)

const (
	productsCollection  = "products"
	countriesCollection = "countries"
)

// Connect opens a client and verifies it with a ping
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.URI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes catalog queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "in_stock", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo: create product indexes: %w", err)
	}
	return nil
}
