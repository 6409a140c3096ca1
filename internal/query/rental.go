package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/poofware/listing-browser/internal/constants"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
)

// RentalPrice estimates the monthly rent of a property listed at price,
// rounded half away from zero.
func RentalPrice(price int64) int64 {
	return int64(math.Round(float64(price) / constants.RentalPriceDivisor))
}

// ToRentalView returns copies of props priced as monthly rentals. The input
// properties are left untouched.
func ToRentalView(props []*models.Property) []*models.Property {
	out := make([]*models.Property, 0, len(props))
	for _, p := range props {
		c := p.Clone()
		c.Price = RentalPrice(p.Price)
		out = append(out, c)
	}
	return out
}

// ParseListingMode accepts "buy" or "rent" in any case. An empty string
// means buy.
func ParseListingMode(s string) (dtos.ListingMode, error) {
	switch dtos.ListingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", dtos.ListingModeBuy:
		return dtos.ListingModeBuy, nil
	case dtos.ListingModeRent:
		return dtos.ListingModeRent, nil
	default:
		return "", fmt.Errorf("unknown listing mode %q (want buy or rent)", s)
	}
}
