package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

type countryService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCountryService creates a new country service
func NewCountryService(repos *repository.Repositories, logger *zap.Logger) *countryService {
	return &countryService{
		repos:  repos,
		logger: logger,
	}
}

func (s *countryService) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	return s.repos.Country.List(ctx)
}

func (s *countryService) GetCountry(ctx context.Context, code string) (*domain.Country, error) {
	return s.repos.Country.GetByCode(ctx, code)
}

// ShippingMethods lists the methods a country offers to a cart without
// weight or shipping class restrictions
func (s *countryService) ShippingMethods(ctx context.Context, code string) ([]domain.ShippingMethod, error) {
	country, err := s.repos.Country.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return pricing.SelectMethods(*country, pricing.CartProfile{})
}

// UpsertCountry validates and stores a country. Admin only.
func (s *countryService) UpsertCountry(ctx context.Context, principal *domain.Principal, country *domain.Country) error {
	if err := requireAdmin(principal, "update country reference data"); err != nil {
		return err
	}

	country.Code = strings.ToUpper(strings.TrimSpace(country.Code))
	country.Currency.Code = strings.ToUpper(strings.TrimSpace(country.Currency.Code))
	if err := validateCountry(country); err != nil {
		return err
	}

	if err := s.repos.Country.Upsert(ctx, country); err != nil {
		return err
	}

	s.logger.Info("Country updated",
		zap.String("code", country.Code),
		zap.String("currency", country.Currency.Code),
		zap.String("rate", country.Currency.Rate.String()),
	)
	return nil
}

// CountrySeed is the YAML document accepted by ImportCountries
type CountrySeed struct {
	Countries []domain.Country `yaml:"countries"`
}

// ImportCountries upserts every country of a YAML seed document. Nothing is
// written unless every country is valid. The upserts themselves are not
// atomic: on a storage failure the returned count and error name the
// countries already written.
func (s *countryService) ImportCountries(ctx context.Context, principal *domain.Principal, r io.Reader) (int, error) {
	if err := requireAdmin(principal, "import countries"); err != nil {
		return 0, err
	}

	var seed CountrySeed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return 0, &errors.ErrValidation{Field: "document", Message: err.Error()}
	}

	for i := range seed.Countries {
		c := &seed.Countries[i]
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		c.Currency.Code = strings.ToUpper(strings.TrimSpace(c.Currency.Code))
		if err := validateCountry(c); err != nil {
			return 0, fmt.Errorf("country %d (%s): %w", i, c.Code, err)
		}
	}

	written := make([]string, 0, len(seed.Countries))
	for i := range seed.Countries {
		c := &seed.Countries[i]
		if err := s.UpsertCountry(ctx, principal, c); err != nil {
			return len(written), fmt.Errorf("failed to write %s (already written: [%s]): %w", c.Code, strings.Join(written, " "), err)
		}
		written = append(written, c.Code)
	}
	return len(seed.Countries), nil
}

func validateCountry(c *domain.Country) error {
	if len(c.Code) != 2 {
		return &errors.ErrValidation{Field: "code", Message: "must be a two letter country code"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &errors.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if c.Currency.Code == "" {
		return &errors.ErrValidation{Field: "currency.code", Message: "must not be empty"}
	}
	if !c.Currency.Rate.IsPositive() {
		return &errors.ErrInvalidRate{Rate: c.Currency.Rate}
	}
	if c.VAT.IsNegative() || c.VAT.GreaterThan(hundred) {
		return &errors.ErrValidation{Field: "vat", Message: "must be between 0 and 100"}
	}

	seen := make(map[string]struct{}, len(c.Shipping.Methods))
	for i, m := range c.Shipping.Methods {
		field := fmt.Sprintf("shipping.methods[%d]", i)
		if m.ID == "" {
			return &errors.ErrValidation{Field: field + ".id", Message: "must not be empty"}
		}
		if _, dup := seen[m.ID]; dup {
			return &errors.ErrValidation{Field: field + ".id", Message: "duplicate method id " + m.ID}
		}
		seen[m.ID] = struct{}{}
		if m.Price.IsNegative() {
			return &errors.ErrValidation{Field: field + ".price", Message: "must not be negative"}
		}
		if m.MaxWeight != nil && !m.MaxWeight.IsPositive() {
			return &errors.ErrValidation{Field: field + ".max_weight", Message: "must be positive"}
		}
	}
	return nil
}
