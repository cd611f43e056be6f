package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	id, customer_email, subtotal, shipping, tax, total, currency, country_code,
	shipping_method_id, status, shipping_address, billing_address,
	tracking_carrier, tracking_number, created_at, updated_at`

// Create inserts the order and its items in one transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	shippingAddress, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}
	billingAddress, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal billing address: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		order.ID,
		order.CustomerEmail,
		order.Subtotal,
		order.Shipping,
		order.Tax,
		order.Total,
		order.Currency,
		order.CountryCode,
		order.ShippingMethodID,
		string(order.Status),
		shippingAddress,
		billingAddress,
		order.TrackingCarrier,
		order.TrackingNumber,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, image, snapshot_price, unit_price, quantity, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID

		options, err := json.Marshal(item.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal item options: %w", err)
		}

		if _, err := tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Image,
			item.Price,
			item.UnitPrice,
			item.Quantity,
			options,
		); err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, string(status), limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus only matches the row while it still has status from, which
// serializes concurrent transitions of the same order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, string(from), string(to), time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return &errors.ErrConflict{Resource: "order", ID: id.String()}
	}

	return nil
}

// Ship sets the shipped status together with the tracking details, guarded
// by the expected current status like UpdateStatus.
func (r *orderRepository) Ship(ctx context.Context, id uuid.UUID, from domain.OrderStatus, carrier *string, trackingNumber string) error {
	query := `
		UPDATE orders
		SET status = $3, tracking_carrier = $4, tracking_number = $5, updated_at = $6
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, string(from), string(domain.OrderStatusShipped), carrier, trackingNumber, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to ship order", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return &errors.ErrConflict{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i, order := range orders {
		ids[i] = order.ID.String()
		byID[order.ID] = order
	}

	query := `
		SELECT id, order_id, product_id, name, image, snapshot_price, unit_price, quantity, options
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var options []byte

		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Image,
			&item.Price,
			&item.UnitPrice,
			&item.Quantity,
			&options,
		); err != nil {
			return err
		}
		if err := json.Unmarshal(options, &item.Options); err != nil {
			return fmt.Errorf("failed to unmarshal item options: %w", err)
		}

		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return rows.Err()
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var shippingAddress, billingAddress []byte
	var carrier, trackingNumber sql.NullString

	err := row.Scan(
		&order.ID,
		&order.CustomerEmail,
		&order.Subtotal,
		&order.Shipping,
		&order.Tax,
		&order.Total,
		&order.Currency,
		&order.CountryCode,
		&order.ShippingMethodID,
		&status,
		&shippingAddress,
		&billingAddress,
		&carrier,
		&trackingNumber,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if err := json.Unmarshal(shippingAddress, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal(billingAddress, &order.BillingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal billing address: %w", err)
	}
	if carrier.Valid {
		order.TrackingCarrier = &carrier.String
	}
	if trackingNumber.Valid {
		order.TrackingNumber = &trackingNumber.String
	}

	return &order, nil
}
