package models

import (
	"slices"
	"time"

	"github.com/poofware/listing-browser/internal/utils"
)

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeCondo     PropertyType = "Condo"
	PropertyTypeTownhouse PropertyType = "Townhouse"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeStudio    PropertyType = "Studio"
)

// PropertyTypes lists every property type in display order.
func PropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyTypeHouse,
		PropertyTypeApartment,
		PropertyTypeCondo,
		PropertyTypeTownhouse,
		PropertyTypeVilla,
		PropertyTypeStudio,
	}
}

func (t PropertyType) IsValid() bool {
	return slices.Contains(PropertyTypes(), t)
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" yaml:"lng" mapstructure:"lng"`
}

type Property struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Address      string       `json:"address" yaml:"address"`
	Price        int64        `json:"price" yaml:"price"`
	PropertyType PropertyType `json:"propertyType" yaml:"propertyType"`
	Bedrooms     int          `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms" yaml:"bathrooms"`
	SquareFeet   int          `json:"squareFeet" yaml:"squareFeet"`
	Images       []string     `json:"images" yaml:"images"`
	Description  string       `json:"description" yaml:"description"`
	Amenities    []string     `json:"amenities,omitempty" yaml:"amenities,omitempty"`
	YearBuilt    *int         `json:"yearBuilt,omitempty" yaml:"yearBuilt,omitempty"`
	ListingDate  time.Time    `json:"listingDate" yaml:"listingDate"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

func (p *Property) GetID() string { return p.ID }

// Clone returns a deep copy; nothing in the copy aliases p.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	out := *p
	out.Images = slices.Clone(p.Images)
	out.Amenities = slices.Clone(p.Amenities)
	if p.YearBuilt != nil {
		out.YearBuilt = utils.Ptr(*p.YearBuilt)
	}
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	return &out
}

// TimeZone is the location the listing sits in, derived from its coordinates.
// Listings without coordinates report UTC.
func (p *Property) TimeZone() *time.Location {
	if p.Coordinates == nil {
		return time.UTC
	}
	return utils.LocationAt(p.Coordinates.Lat, p.Coordinates.Lng)
}

// LocalListingDate is ListingDate as seen on the listing's own wall clock.
func (p *Property) LocalListingDate() time.Time {
	return p.ListingDate.In(p.TimeZone())
}
