package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/zahrahiu/bloomcart/pkg/errors"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// record mirrors the upstream product listing payload. Price, quantity and
// discount arrive as decorated strings and are normalized before a
// domain.Product leaves this package.
type record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Quantity    string   `json:"quantity"`
	Price       string   `json:"price"`
	Discount    string   `json:"discount"`
	Type        string   `json:"type"`
	Colors      []string `json:"colors"`
	Occasions   []string `json:"occasions"`
}

// Client fetches the external product listing and normalizes it into catalog
// products. All text-to-number parsing happens here so the pricing core never
// sees decorated strings.
type Client struct {
	http     HTTPDoer
	feedURL  string
	currency string
	logger   *slog.Logger
}

// NewClient creates a feed client for the given listing endpoint.
func NewClient(http HTTPDoer, feedURL, currency string, logger *slog.Logger) *Client {
	return &Client{
		http:     http,
		feedURL:  feedURL,
		currency: currency,
		logger:   logger,
	}
}

// Fetch retrieves the product listing and returns the normalized products.
// Records with an unparseable price are skipped and logged rather than
// failing the whole refresh.
func (c *Client) Fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetch product feed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ServiceUnavailable(
			fmt.Sprintf("product feed returned status %d", resp.StatusCode),
		)
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode product feed: %w", err)
	}

	now := time.Now().UTC()
	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		price, err := ParsePrice(rec.Price)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping feed record with invalid price",
				slog.String("product_id", rec.ID),
				slog.String("price", rec.Price),
				slog.String("error", err.Error()),
			)
			continue
		}

		products = append(products, domain.Product{
			ID:              rec.ID,
			Name:            rec.Title,
			Description:     rec.Description,
			ImageURL:        rec.Image,
			Price:           price,
			Currency:        c.currency,
			Stock:           ParseStock(rec.Quantity),
			DiscountPercent: ParseDiscount(rec.Discount),
			Type:            rec.Type,
			Colors:          rec.Colors,
			Occasions:       rec.Occasions,
			UpdatedAt:       now,
		})
	}

	return products, nil
}
