package query

import (
	"slices"
	"strings"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/utils"
)

// Predicate reports whether a property belongs in a result set.
type Predicate func(*models.Property) bool

func matchAll(*models.Property) bool { return true }

// Filter keeps the properties that satisfy every predicate, in input order.
// The input slice is not modified.
func Filter(props []*models.Property, preds ...Predicate) []*models.Property {
	match := And(preds...)
	out := make([]*models.Property, 0, len(props))
	for _, p := range props {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// And is the conjunction of preds, evaluated left to right with
// short-circuit. And() matches everything.
func And(preds ...Predicate) Predicate {
	return func(p *models.Property) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// ----------------------------------------------------------------------
// Criteria predicates. Each one is a no-op when its bound is absent.
// ----------------------------------------------------------------------

// PriceAtLeast keeps price >= floor. A nil or zero floor imposes nothing.
func PriceAtLeast(floor *int64) Predicate {
	if utils.Val(floor) <= 0 {
		return matchAll
	}
	bound := *floor
	return func(p *models.Property) bool { return p.Price >= bound }
}

// PriceAtMost keeps price <= ceiling. A nil or zero ceiling imposes nothing.
func PriceAtMost(ceiling *int64) Predicate {
	if utils.Val(ceiling) <= 0 {
		return matchAll
	}
	bound := *ceiling
	return func(p *models.Property) bool { return p.Price <= bound }
}

// TypeIn keeps properties whose type is one of types, compared exactly.
func TypeIn(types []models.PropertyType) Predicate {
	if len(types) == 0 {
		return matchAll
	}
	set := slices.Clone(types)
	return func(p *models.Property) bool { return slices.Contains(set, p.PropertyType) }
}

func BedroomsAtLeast(n *int) Predicate {
	if utils.Val(n) <= 0 {
		return matchAll
	}
	bound := *n
	return func(p *models.Property) bool { return p.Bedrooms >= bound }
}

func BathroomsAtLeast(n *int) Predicate {
	if utils.Val(n) <= 0 {
		return matchAll
	}
	bound := float64(*n)
	return func(p *models.Property) bool { return p.Bathrooms >= bound }
}

// AddressContains keeps properties whose address holds loc, ignoring case.
func AddressContains(loc string) Predicate {
	if strings.TrimSpace(loc) == "" {
		return matchAll
	}
	return func(p *models.Property) bool { return utils.ContainsFold(p.Address, loc) }
}

// WithinRadius keeps properties whose coordinates lie within the radius.
// Properties without coordinates never match a set radius.
func WithinRadius(near *models.GeoRadius) Predicate {
	if near == nil {
		return matchAll
	}
	center := *near
	return func(p *models.Property) bool {
		if p.Coordinates == nil {
			return false
		}
		d := utils.DistanceMiles(center.Lat, center.Lng, p.Coordinates.Lat, p.Coordinates.Lng)
		return d <= center.RadiusMiles
	}
}

// CriteriaPredicates expands c into its predicates in evaluation order:
// price floor, price ceiling, type, bedrooms, bathrooms, location, radius.
func CriteriaPredicates(c models.FilterCriteria) []Predicate {
	return []Predicate{
		PriceAtLeast(c.PriceMin),
		PriceAtMost(c.PriceMax),
		TypeIn(c.PropertyType),
		BedroomsAtLeast(c.Bedrooms),
		BathroomsAtLeast(c.Bathrooms),
		AddressContains(c.Location),
		WithinRadius(c.Near),
	}
}

func MatchesCriteria(c models.FilterCriteria) Predicate {
	return And(CriteriaPredicates(c)...)
}

// MatchesText is the search-bar predicate: term is looked for, ignoring
// case, in the title, address, property type and description. A blank
// term matches everything.
func MatchesText(term string) Predicate {
	if strings.TrimSpace(term) == "" {
		return matchAll
	}
	needle := strings.ToLower(term)
	return func(p *models.Property) bool {
		for _, field := range []string{p.Title, p.Address, string(p.PropertyType), p.Description} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}
