package app

import (
	"github.com/shopspring/decimal"

	"github.com/zahrahiu/bloomcart/internal/catalog/domain"
)

func intPtr(v int) *int { return &v }

// defaultProducts is the built-in catalog used until the first feed refresh
// (or permanently, when no feed is configured).
func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:              "red-rose-bouquet",
			Name:            "Red Rose Bouquet",
			Description:     "A dozen red roses hand-tied with eucalyptus.",
			Price:           decimal.NewFromInt(100),
			Currency:        "MAD",
			Stock:           intPtr(12),
			DiscountPercent: intPtr(20),
			Type:            "bouquet",
			Colors:          []string{"red"},
			Occasions:       []string{"anniversary", "valentine"},
		},
		{
			ID:          "tulip-spring-mix",
			Name:        "Tulip Spring Mix",
			Description: "Fifteen mixed tulips in seasonal colors.",
			Price:       decimal.RequireFromString("79.90"),
			Currency:    "MAD",
			Stock:       intPtr(8),
			Type:        "bouquet",
			Colors:      []string{"yellow", "pink"},
			Occasions:   []string{"birthday"},
		},
		{
			ID:          "white-lily-basket",
			Name:        "White Lily Basket",
			Description: "Oriental lilies arranged in a wicker basket.",
			Price:       decimal.NewFromInt(150),
			Currency:    "MAD",
			Stock:       intPtr(5),
			Type:        "arrangement",
			Colors:      []string{"white"},
			Occasions:   []string{"sympathy", "wedding"},
		},
		{
			ID:          "dried-lavender-bunch",
			Name:        "Dried Lavender Bunch",
			Description: "Long-lasting dried lavender stems.",
			Price:       decimal.NewFromInt(45),
			Currency:    "MAD",
			Type:        "dried",
			Colors:      []string{"purple"},
		},
	}
}

// defaultAddons is the built-in add-on catalog.
func defaultAddons() []domain.Addon {
	return []domain.Addon{
		{ID: "glass-vase", Name: "Glass Vase", Price: decimal.NewFromInt(25), Currency: "MAD"},
		{ID: "chocolate-box", Name: "Chocolate Box", Price: decimal.NewFromInt(40), Currency: "MAD"},
		{ID: "greeting-card", Name: "Greeting Card", Price: decimal.NewFromInt(10), Currency: "MAD"},
	}
}
