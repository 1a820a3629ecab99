package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
	"github.com/zahrahiu/bloomcart/internal/catalog/repository/memory"
	"github.com/zahrahiu/bloomcart/internal/catalog/service"
)

type stubFeed struct {
	products []domain.Product
	err      error
}

func (f *stubFeed) Fetch(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func intPtr(v int) *int { return &v }

func setup(t *testing.T, feed *stubFeed) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	products := memory.NewProductRepository()
	seed := []domain.Product{
		{ID: "rose-bouquet", Name: "Red Rose Bouquet", Price: decimal.NewFromInt(100), Currency: "MAD", Type: "bouquet", Colors: []string{"red"}, DiscountPercent: intPtr(20)},
		{ID: "tulip-mix", Name: "Tulip Mix", Price: decimal.RequireFromString("49.90"), Currency: "MAD", Type: "bouquet", Colors: []string{"yellow"}},
		{ID: "vase-ceramic", Name: "Ceramic Vase", Price: decimal.NewFromInt(60), Currency: "MAD", Type: "accessory"},
	}
	for i := range seed {
		require.NoError(t, products.Upsert(context.Background(), &seed[i]))
	}
	addons := memory.NewAddonRepository([]domain.Addon{
		{ID: "chocolates", Name: "Chocolate Box", Price: decimal.NewFromInt(40), Currency: "MAD"},
	})

	svc := service.NewCatalogService(products, addons, feed, logger)
	handler := NewCatalogHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", handler.Routes)
	r.Route("/api/v1/admin/catalog", handler.AdminRoutes)
	return r
}

func get(router *chi.Mux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type listResponse struct {
	Data struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		TotalCount int `json:"total_count"`
	} `json:"data"`
}

func TestListProducts(t *testing.T) {
	router := setup(t, &stubFeed{})

	rec := get(router, "/api/v1/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.TotalCount)
}

func TestListProducts_TypeAndColorFilter(t *testing.T) {
	router := setup(t, &stubFeed{})

	rec := get(router, "/api/v1/products?type=bouquet&color=red")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.TotalCount)
	assert.Equal(t, "rose-bouquet", resp.Data.Data[0].ID)
}

func TestListProducts_PriceRangeUsesEffectivePrice(t *testing.T) {
	router := setup(t, &stubFeed{})

	// The rose bouquet lists at 100 but sells at 80 after its 20% discount.
	rec := get(router, "/api/v1/products?min_price=70&max_price=90")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.TotalCount)
	assert.Equal(t, "rose-bouquet", resp.Data.Data[0].ID)
}

func TestListProducts_BadPriceParam(t *testing.T) {
	router := setup(t, &stubFeed{})

	rec := get(router, "/api/v1/products?min_price=cheap")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct(t *testing.T) {
	router := setup(t, &stubFeed{})

	rec := get(router, "/api/v1/products/tulip-mix")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/api/v1/products/no-such-flower")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAddons(t *testing.T) {
	router := setup(t, &stubFeed{})

	rec := get(router, "/api/v1/addons")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "chocolates", resp.Data[0].ID)
}

func TestRefresh(t *testing.T) {
	router := setup(t, &stubFeed{products: []domain.Product{
		{ID: "peony-bundle", Name: "Peony Bundle", Price: decimal.NewFromInt(120), Currency: "MAD"},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data["products"])

	// The catalog now serves only the refreshed feed.
	rec = get(router, "/api/v1/products")
	var list listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Data.TotalCount)
}
