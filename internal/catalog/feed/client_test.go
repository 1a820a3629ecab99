package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainDoer struct{}

func (plainDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req.WithContext(ctx))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFetch_NormalizesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"rose-01","title":"Red Roses","quantity":"5","price":"100 DH","discount":"20","type":"roses","colors":["red"],"occasions":["valentine"]},
			{"id":"lily-02","title":"White Lilies","quantity":"on demand","price":"80,50 DH"},
			{"id":"bad-03","title":"No Price","quantity":"3","price":"call us"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(plainDoer{}, srv.URL, "MAD", newTestLogger())

	products, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2, "record without a parseable price is skipped")

	rose := products[0]
	assert.Equal(t, "rose-01", rose.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(rose.Price))
	require.NotNil(t, rose.Stock)
	assert.Equal(t, 5, *rose.Stock)
	require.NotNil(t, rose.DiscountPercent)
	assert.Equal(t, 20, *rose.DiscountPercent)
	assert.Equal(t, "MAD", rose.Currency)

	lily := products[1]
	assert.Nil(t, lily.Stock, "unparseable quantity means unbounded")
	assert.Nil(t, lily.DiscountPercent)
	assert.True(t, decimal.RequireFromString("80.50").Equal(lily.Price))
}

func TestFetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(plainDoer{}, srv.URL, "MAD", newTestLogger())

	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
