package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type vendorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *sql.DB, logger *zap.Logger) *vendorRepository {
	return &vendorRepository{
		db:     db,
		logger: logger,
	}
}

func (r *vendorRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Vendor, error) {
	// bcrypt hashes are salted, so the key cannot be looked up directly;
	// every active vendor's hash is checked in turn.
	query := `
		SELECT id, name, email, role, api_key_hash, is_active, created_at, updated_at
		FROM vendors
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query vendors", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(vendor.APIKeyHash), []byte(apiKey)); err == nil {
			return vendor, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *vendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	query := `
		SELECT id, name, email, role, api_key_hash, is_active, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`

	vendor, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "vendor", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get vendor by ID", zap.Error(err))
		return nil, err
	}

	return vendor, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, email, role, api_key_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now().UTC()
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	if vendor.UpdatedAt.IsZero() {
		vendor.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.Email,
		vendor.Role,
		vendor.APIKeyHash,
		vendor.IsActive,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create vendor", zap.Error(err))
		return err
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendor(row rowScanner) (*domain.Vendor, error) {
	var vendor domain.Vendor
	var role string

	err := row.Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Email,
		&role,
		&vendor.APIKeyHash,
		&vendor.IsActive,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	vendor.Role = domain.Role(role)
	return &vendor, nil
}
