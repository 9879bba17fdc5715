package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/repository"
	"marketplace/storefront/internal/service"
	"marketplace/storefront/internal/state"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

type stubAuthenticator map[string]*domain.Session

func (s stubAuthenticator) Session(ctx context.Context, token string) (*domain.Session, error) {
	session, ok := s[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

type testAPI struct {
	router   *gin.Engine
	inFlight state.InFlight
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := repository.NewSampleStore()
	inFlight := state.NewMemoryInFlight(time.Minute)
	h := NewHandler(service.NewStorefront(store), service.NewAdmin(store, nil, inFlight))
	authenticator := stubAuthenticator{
		adminToken: {UserID: "u1", Role: domain.RoleAdmin},
		userToken:  {UserID: "u2", Role: "USER"},
	}
	return &testAPI{
		router:   NewRouter(gin.TestMode, h, authenticator),
		inFlight: inFlight,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestListProductsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/products?category=Food+%26+Beverages&sort=price-high", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	listing := decode[service.ProductListing](t, rec)
	require.Len(t, listing.Items, 2)
	assert.True(t, listing.Items[0].Price.GreaterThanOrEqual(listing.Items[1].Price))
	assert.Equal(t, 8, listing.Total)
	assert.Equal(t, "price-high", listing.Sort)

	rec = api.do(t, http.MethodGet, "/api/products?search=zzz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	assert.Contains(t, rec.Body.String(), `"shown":0`)
}

func TestGetProductEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/products/4", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode[domain.ProductDetail](t, rec)
	assert.Equal(t, "Artisan Coffee Blend", product.Name)

	rec = api.do(t, http.MethodGet, "/api/products/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, body["request_id"])
}

func TestCategoriesEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/categories?featured=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[service.CategoryListing](t, rec)
	assert.Equal(t, 4, listing.Shown)
	assert.Equal(t, 8, listing.Total)
	assert.Equal(t, "Home & Garden", listing.Items[0].Name)
	assert.Len(t, listing.Popular, 4)
}

func TestHomeEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/home", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[service.HomePage](t, rec)
	assert.Len(t, page.Featured, 8)
	assert.NotEmpty(t, page.Categories)
}

func TestAdminGate(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/admin/stats", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/admin/stats", "bogus", "").Code)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodGet, "/api/admin/stats", userToken, "").Code)

	rec := api.do(t, http.MethodGet, "/api/admin/stats", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.DashboardStats](t, rec)
	assert.Equal(t, 8, stats.TotalProducts)
}

func TestAdminProductEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/admin/products?category=Home+%26+Garden", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[service.AdminProductListing](t, rec)
	assert.Equal(t, 2, listing.Shown)
	assert.Len(t, listing.Categories, 6)

	rec = api.do(t, http.MethodPost, "/api/admin/products", adminToken, `{"category":"Home"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/products", adminToken, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/products", adminToken, `{"name":"Mug","category":"Home","price":"9.50"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/admin/products/404", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/products/1/toggle", adminToken, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestToggleConflict(t *testing.T) {
	api := newTestAPI(t)

	ok, err := api.inFlight.Acquire(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, ok)

	rec := api.do(t, http.MethodPost, "/api/admin/products/1/toggle", adminToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/admin/settings", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode[domain.SiteConfig](t, rec)
	assert.Equal(t, "Inter", cfg.FontFamily)

	rec = api.do(t, http.MethodPut, "/api/admin/settings", adminToken,
		`{"site_name":"Shop","primary_color":"red","accent_color":"#000","font_family":"Inter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/settings/preset", adminToken, `{"name":"Neon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/settings/preset", adminToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/admin/settings/preset", adminToken, `{"name":"Green & Teal"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/admin/settings/options", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[service.SettingsOptions](t, rec)
	assert.Len(t, opts.Fonts, 8)
	assert.Len(t, opts.Presets, 5)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(), Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}
