package models

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/poofware/listing-browser/internal/utils"
)

// GeoRadius restricts results to listings within RadiusMiles of a point.
type GeoRadius struct {
	Lat         float64 `json:"lat" yaml:"lat"`
	Lng         float64 `json:"lng" yaml:"lng"`
	RadiusMiles float64 `json:"radiusMiles" yaml:"radiusMiles"`
}

// FilterCriteria is a transient query descriptor. Nil or empty fields impose
// no constraint. Bedrooms and Bathrooms mean "at least".
type FilterCriteria struct {
	PriceMin     *int64         `json:"priceMin,omitempty" yaml:"priceMin,omitempty"`
	PriceMax     *int64         `json:"priceMax,omitempty" yaml:"priceMax,omitempty"`
	PropertyType []PropertyType `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	Bedrooms     *int           `json:"bedrooms,omitempty" yaml:"bedrooms,omitempty"`
	Bathrooms    *int           `json:"bathrooms,omitempty" yaml:"bathrooms,omitempty"`
	Location     string         `json:"location,omitempty" yaml:"location,omitempty"`
	Near         *GeoRadius     `json:"near,omitempty" yaml:"near,omitempty"`
}

func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	if c.PriceMin != nil {
		out.PriceMin = utils.Ptr(*c.PriceMin)
	}
	if c.PriceMax != nil {
		out.PriceMax = utils.Ptr(*c.PriceMax)
	}
	out.PropertyType = slices.Clone(c.PropertyType)
	if c.Bedrooms != nil {
		out.Bedrooms = utils.Ptr(*c.Bedrooms)
	}
	if c.Bathrooms != nil {
		out.Bathrooms = utils.Ptr(*c.Bathrooms)
	}
	if c.Near != nil {
		n := *c.Near
		out.Near = &n
	}
	return out
}

func (c FilterCriteria) IsEmpty() bool {
	return c.ActiveCount() == 0
}

func (c FilterCriteria) hasPriceBound() bool {
	return utils.Val(c.PriceMin) > 0 || utils.Val(c.PriceMax) > 0
}

// ActiveCount is the number of filter pills the criteria would render: the
// price range counts once and every selected property type counts on its own.
func (c FilterCriteria) ActiveCount() int {
	count := 0
	if c.hasPriceBound() {
		count++
	}
	count += len(c.PropertyType)
	if utils.Val(c.Bedrooms) > 0 {
		count++
	}
	if utils.Val(c.Bathrooms) > 0 {
		count++
	}
	if strings.TrimSpace(c.Location) != "" {
		count++
	}
	if c.Near != nil {
		count++
	}
	return count
}

// Labels renders the active filters as short human-readable pills.
func (c FilterCriteria) Labels() []string {
	var labels []string

	if c.hasPriceBound() {
		lo, hi := utils.Val(c.PriceMin), utils.Val(c.PriceMax)
		switch {
		case lo > 0 && hi > 0:
			labels = append(labels, thousands(lo)+" - "+thousands(hi))
		case lo > 0:
			labels = append(labels, "Over "+thousands(lo))
		default:
			labels = append(labels, "Under "+thousands(hi))
		}
	}
	for _, t := range c.PropertyType {
		labels = append(labels, string(t))
	}
	if n := utils.Val(c.Bedrooms); n > 0 {
		labels = append(labels, strconv.Itoa(n)+" beds")
	}
	if n := utils.Val(c.Bathrooms); n > 0 {
		labels = append(labels, strconv.Itoa(n)+" baths")
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		labels = append(labels, loc)
	}
	if c.Near != nil {
		labels = append(labels, fmt.Sprintf("Within %g mi", c.Near.RadiusMiles))
	}
	return labels
}

func thousands(dollars int64) string {
	return fmt.Sprintf("$%.0fK", math.Round(float64(dollars)/1000))
}

// PriceRange is one bucket of the price picker. A nil Max is unbounded.
type PriceRange struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   *int64 `json:"max"`
}

// SavedFilter is a named FilterCriteria kept for later reuse.
type SavedFilter struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Criteria  FilterCriteria `json:"criteria"`
	SavedDate time.Time      `json:"savedDate"`
}

func (f *SavedFilter) GetID() string { return f.ID }

func (f *SavedFilter) Clone() *SavedFilter {
	if f == nil {
		return nil
	}
	out := *f
	out.Criteria = f.Criteria.Clone()
	return &out
}
