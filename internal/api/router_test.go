package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/repository/memory"
	"github.com/jafarshop/storefront/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	repos     *repository.Repositories
	ownerKey  string
	otherKey  string
	adminKey  string
	ownerID   string
	productID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	repos := memory.NewRepositories()
	cfg := &config.Config{
		Environment: "test",
		Catalog:     config.CatalogConfig{BaseCurrency: "USD", PlaceholderImageURL: "/static/placeholder.png"},
	}

	vendors := service.NewVendorService(repos, logger)
	owner, ownerKey, err := vendors.CreateVendor(ctx, "Owner", "owner@example.com", domain.RoleVendor, "owner-key")
	require.NoError(t, err)
	_, otherKey, err := vendors.CreateVendor(ctx, "Other", "other@example.com", domain.RoleVendor, "other-key")
	require.NoError(t, err)
	_, adminKey, err := vendors.CreateVendor(ctx, "Admin", "admin@example.com", domain.RoleAdmin, "admin-key")
	require.NoError(t, err)

	require.NoError(t, repos.Country.Upsert(ctx, &domain.Country{
		Code:     "DE",
		Name:     "Germany",
		Currency: domain.Currency{Code: "EUR", Symbol: "€", Rate: decimal.RequireFromString("0.9")},
		Shipping: domain.ShippingConfig{
			Available: true,
			Methods:   []domain.ShippingMethod{{ID: "standard", Name: "Standard", Price: decimal.RequireFromString("5")}},
		},
		VAT: decimal.RequireFromString("19"),
	}))

	product := &domain.Product{
		VendorID: owner.ID,
		Name:     "Notebook",
		Price:    decimal.RequireFromString("10"),
		InStock:  true,
	}
	require.NoError(t, repos.Product.Create(ctx, product))

	return &testServer{
		router:    NewRouter(cfg, repos, nil, metrics.New(), logger),
		repos:     repos,
		ownerKey:  ownerKey,
		otherKey:  otherKey,
		adminKey:  adminKey,
		ownerID:   owner.ID.String(),
		productID: product.ID.String(),
	}
}

func (s *testServer) do(t *testing.T, method, path, apiKey string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) cart(quantity int) map[string]interface{} {
	return map[string]interface{}{
		"country_code": "DE",
		"items": []map[string]interface{}{
			{"product_id": s.productID, "name": "Notebook", "price": "10", "quantity": quantity},
		},
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "storefront_http_requests_total")
}

func TestAdminRoutesRequireAPIKey(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/admin/products", "", map[string]interface{}{"name": "Pen", "price": "2"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/v1/admin/products", "not-a-key", map[string]interface{}{"name": "Pen", "price": "2"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductWriteGuard(t *testing.T) {
	s := newTestServer(t)
	path := "/v1/admin/products/" + s.productID

	w := s.do(t, http.MethodPatch, path, s.otherKey, map[string]interface{}{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, path, s.ownerKey, map[string]interface{}{"name": "Dotted notebook"})
	require.Equal(t, http.StatusOK, w.Code)

	var product domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	require.Equal(t, "Dotted notebook", product.Name)
	require.Equal(t, int64(2), product.Version)

	w = s.do(t, http.MethodPatch, path, s.adminKey, map[string]interface{}{
		"bulk_pricing": []map[string]interface{}{{"quantity": 5, "price": "12"}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateProductAndBrowse(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/admin/products", s.otherKey, map[string]interface{}{
		"name":     "Pen",
		"price":    "2.50",
		"in_stock": true,
		"category": "stationery",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/v1/products?category=stationery", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Products []service.ProductView `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 1)
	require.Equal(t, "Pen", page.Products[0].Name)
	require.Equal(t, []string{"/static/placeholder.png"}, page.Products[0].Images)

	w = s.do(t, http.MethodGet, "/v1/vendor/products", s.otherKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Pen")

	w = s.do(t, http.MethodGet, "/v1/products?limit=0", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductWithCountry(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/products/"+s.productID+"?country=de", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.ProductView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.Localized)
	require.Equal(t, "EUR", view.Localized.CurrencyCode)
	require.True(t, decimal.RequireFromString("9").Equal(view.Localized.Price))

	w = s.do(t, http.MethodGet, "/v1/products/not-a-uuid", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/v1/products/"+s.productID+"?country=zz", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartQuote(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/cart/quote", "", s.cart(2))
	require.Equal(t, http.StatusOK, w.Code)

	var quote service.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	require.True(t, decimal.RequireFromString("20").Equal(quote.Totals.Subtotal))
	require.True(t, decimal.RequireFromString("3.8").Equal(quote.Totals.Tax))
	require.True(t, decimal.RequireFromString("28.8").Equal(quote.Totals.Total))
	require.Equal(t, "EUR", quote.Display.CurrencyCode)
	require.True(t, decimal.RequireFromString("25.92").Equal(quote.Display.Total))

	w = s.do(t, http.MethodPost, "/v1/cart/quote", "", s.cart(0))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	cart := s.cart(1)
	cart["country_code"] = "FR"
	w = s.do(t, http.MethodPost, "/v1/cart/quote", "", cart)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutAndOrderLifecycle(t *testing.T) {
	s := newTestServer(t)

	req := s.cart(1)
	req["customer_email"] = "shopper@example.com"
	req["shipping_address"] = map[string]interface{}{
		"name": "Shopper", "street": "Hauptstr. 1", "city": "Berlin", "postal_code": "10115", "country": "DE",
	}

	w := s.do(t, http.MethodPost, "/v1/checkout", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed service.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	require.Equal(t, domain.OrderStatusPending, placed.Order.Status)
	orderPath := "/v1/orders/" + placed.Order.ID.String()
	adminPath := "/v1/admin/orders/" + placed.Order.ID.String()

	w = s.do(t, http.MethodGet, orderPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"pending"`)
	require.NotContains(t, w.Body.String(), "shopper@example.com")
	require.NotContains(t, w.Body.String(), "Hauptstr")

	w = s.do(t, http.MethodGet, adminPath, "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, adminPath, s.ownerKey, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, adminPath, s.adminKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "shopper@example.com")

	w = s.do(t, http.MethodPost, adminPath+"/process", s.ownerKey, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, adminPath+"/process", s.adminKey, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, adminPath+"/deliver", s.adminKey, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "processing"))

	w = s.do(t, http.MethodPost, adminPath+"/ship", s.adminKey, map[string]interface{}{"tracking_number": "TRK-9"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/admin/orders?status=shipped", s.adminKey, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "TRK-9")

	w = s.do(t, http.MethodPost, adminPath+"/cancel", s.adminKey, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrderReadsStreamedBody(t *testing.T) {
	s := newTestServer(t)

	req := s.cart(1)
	req["customer_email"] = "shopper@example.com"
	req["shipping_address"] = map[string]interface{}{
		"name": "Shopper", "street": "Hauptstr. 1", "city": "Berlin", "postal_code": "10115", "country": "DE",
	}
	w := s.do(t, http.MethodPost, "/v1/checkout", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed service.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	// A plain io.Reader has no known length, like a chunked request body.
	body := io.MultiReader(strings.NewReader(`{"reason":"changed my mind"}`))
	cancel := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/"+placed.Order.ID.String()+"/cancel", body)
	require.Equal(t, int64(-1), cancel.ContentLength)
	cancel.Header.Set("Content-Type", "application/json")
	cancel.Header.Set("Authorization", "Bearer "+s.adminKey)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, cancel)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	events, err := s.repos.OrderEvent.ListByOrderID(context.Background(), placed.Order.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "changed my mind", events[1].EventData["reason"])
}

func TestCountryAdmin(t *testing.T) {
	s := newTestServer(t)

	country := map[string]interface{}{
		"name":     "France",
		"currency": map[string]interface{}{"code": "EUR", "symbol": "€", "rate": "0"},
		"shipping": map[string]interface{}{"available": false},
		"vat":      "20",
	}

	w := s.do(t, http.MethodPut, "/v1/admin/countries/fr", s.ownerKey, country)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPut, "/v1/admin/countries/fr", s.adminKey, country)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	country["currency"] = map[string]interface{}{"code": "EUR", "symbol": "€", "rate": "0.9"}
	w = s.do(t, http.MethodPut, "/v1/admin/countries/fr", s.adminKey, country)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/countries/FR/shipping-methods", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"methods":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/v1/countries", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "France")
}

func TestVendorPublicProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/vendors/"+s.ownerID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "owner@example.com")

	w = s.do(t, http.MethodGet, "/v1/vendors/"+s.ownerID+"/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Notebook")
}
