package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a human-readable decimal token quantity. Malformed input
// must never be fatal for the aggregation pipeline, so empty, unparseable or
// negative values all collapse to zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
