package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

const apiKeyCost = 10

type vendorService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(repos *repository.Repositories, logger *zap.Logger) *vendorService {
	return &vendorService{
		repos:  repos,
		logger: logger,
	}
}

func (s *vendorService) GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	return s.repos.Vendor.GetByID(ctx, id)
}

// Authenticate resolves an API key to the principal acting with it
func (s *vendorService) Authenticate(ctx context.Context, apiKey string) (*domain.Vendor, *domain.Principal, error) {
	if apiKey == "" {
		return nil, nil, &errors.ErrUnauthorized{Message: "missing API key"}
	}

	vendor, err := s.repos.Vendor.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, nil, err
	}
	if !vendor.IsActive {
		return nil, nil, &errors.ErrUnauthorized{Message: "vendor is inactive"}
	}
	return vendor, &domain.Principal{VendorID: vendor.ID, Role: vendor.Role}, nil
}

// CreateVendor registers a vendor. When apiKey is empty a random key is
// generated. The plain key is returned once and only its hash is stored.
func (s *vendorService) CreateVendor(ctx context.Context, name, email string, role domain.Role, apiKey string) (*domain.Vendor, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", &errors.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if !role.IsValid() {
		return nil, "", &errors.ErrValidation{Field: "role", Message: fmt.Sprintf("unknown role %q", role)}
	}

	if apiKey == "" {
		generated, err := generateAPIKey()
		if err != nil {
			return nil, "", err
		}
		apiKey = generated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), apiKeyCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash API key: %w", err)
	}

	vendor := &domain.Vendor{
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Role:       role,
		APIKeyHash: string(hash),
		IsActive:   true,
	}
	if err := s.repos.Vendor.Create(ctx, vendor); err != nil {
		return nil, "", err
	}

	s.logger.Info("Vendor created", zap.String("vendor_id", vendor.ID.String()), zap.String("role", string(role)))
	return vendor, apiKey, nil
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return "sk_" + hex.EncodeToString(buf), nil
}
