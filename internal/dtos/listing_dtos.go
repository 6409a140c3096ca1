package dtos

import (
	"github.com/poofware/listing-browser/internal/models"
)

type ListingMode string

const (
	ListingModeBuy  ListingMode = "buy"
	ListingModeRent ListingMode = "rent"
)

// BrowseQuery is the composed query behind the listings page.
type BrowseQuery struct {
	Mode       ListingMode           `json:"mode"`
	SearchTerm string                `json:"searchTerm,omitempty"`
	Criteria   models.FilterCriteria `json:"criteria"`
}

type ToggleSaveResult struct {
	Saved         bool                  `json:"saved"`
	SavedProperty *models.SavedProperty `json:"savedProperty,omitempty"`
}

// SavedPropertyDetail joins a saved record with the property it points at.
type SavedPropertyDetail struct {
	SavedProperty *models.SavedProperty `json:"savedProperty"`
	Property      *models.Property      `json:"property"`

	// LocalListingDate is the listing date on the property's own wall clock,
	// RFC 3339 with offset.
	LocalListingDate string `json:"localListingDate"`
}

// FilterOptions is everything the filter panel needs to render.
type FilterOptions struct {
	PropertyTypes []models.PropertyType `json:"propertyTypes"`
	PriceRanges   []models.PriceRange   `json:"priceRanges"`
}
