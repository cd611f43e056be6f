package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the relational tables. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id           UUID PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		role         TEXT NOT NULL DEFAULT 'vendor',
		api_key_hash TEXT NOT NULL,
		is_active    BOOLEAN NOT NULL DEFAULT true,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                 UUID PRIMARY KEY,
		customer_email     TEXT NOT NULL,
		subtotal           NUMERIC(12,2) NOT NULL,
		shipping           NUMERIC(12,2) NOT NULL,
		tax                NUMERIC(12,2) NOT NULL,
		total              NUMERIC(12,2) NOT NULL,
		currency           TEXT NOT NULL,
		country_code       TEXT NOT NULL,
		shipping_method_id TEXT NOT NULL,
		status             TEXT NOT NULL,
		shipping_address   JSONB NOT NULL,
		billing_address    JSONB NOT NULL,
		tracking_carrier   TEXT,
		tracking_number    TEXT,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id             UUID PRIMARY KEY,
		order_id       UUID NOT NULL REFERENCES orders (id),
		product_id     UUID NOT NULL,
		name           TEXT NOT NULL,
		image          TEXT NOT NULL DEFAULT '',
		snapshot_price NUMERIC(12,2) NOT NULL,
		unit_price     NUMERIC(12,2) NOT NULL,
		quantity       INTEGER NOT NULL CHECK (quantity > 0),
		options        JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)`,
	`CREATE TABLE IF NOT EXISTS order_events (
		id         UUID PRIMARY KEY,
		order_id   UUID NOT NULL REFERENCES orders (id),
		event_type TEXT NOT NULL,
		event_data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema inside one transaction
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return tx.Commit()
}
