package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numberRe extracts the numeric part of a currency-decorated value such as
// "100 DH", "99,90DH" or " 45.5 ".
var numberRe = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// ParsePrice converts a decorated price string into an exact decimal amount.
// Comma decimal separators are accepted. An empty or non-numeric value is an
// error: a product without a price cannot be sold.
func ParsePrice(raw string) (decimal.Decimal, error) {
	match := numberRe.FindString(raw)
	if match == "" {
		return decimal.Decimal{}, fmt.Errorf("no numeric value in price %q", raw)
	}
	match = strings.ReplaceAll(match, ",", ".")

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price %q", raw)
	}
	return d, nil
}

// ParseStock converts a feed stock field into a bounded quantity. A value
// that does not parse as a non-negative integer means the feed does not track
// stock for the product, so nil (unbounded) is returned.
func ParseStock(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseDiscount converts a feed discount field ("20", "20%", "") into an
// optional percentage. Values outside 0-100 or non-numeric values are treated
// as no discount.
func ParseDiscount(raw string) *int {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 || n > 100 {
		return nil
	}
	return &n
}
