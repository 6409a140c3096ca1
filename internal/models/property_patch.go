package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/poofware/listing-browser/internal/utils"
)

// PropertyPatch is a sparse update: only non-nil fields are written. The id
// of a property is never patchable.
type PropertyPatch struct {
	Title        *string       `json:"title,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Price        *int64        `json:"price,omitempty"`
	PropertyType *PropertyType `json:"propertyType,omitempty"`
	Bedrooms     *int          `json:"bedrooms,omitempty"`
	Bathrooms    *float64      `json:"bathrooms,omitempty"`
	SquareFeet   *int          `json:"squareFeet,omitempty"`
	Images       *[]string     `json:"images,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Amenities    *[]string     `json:"amenities,omitempty"`
	YearBuilt    *int          `json:"yearBuilt,omitempty"`
	ListingDate  *time.Time    `json:"listingDate,omitempty"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
}

// Apply merges the patch over p, field by field.
func (pp PropertyPatch) Apply(p *Property) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Address != nil {
		p.Address = *pp.Address
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.PropertyType != nil {
		p.PropertyType = *pp.PropertyType
	}
	if pp.Bedrooms != nil {
		p.Bedrooms = *pp.Bedrooms
	}
	if pp.Bathrooms != nil {
		p.Bathrooms = *pp.Bathrooms
	}
	if pp.SquareFeet != nil {
		p.SquareFeet = *pp.SquareFeet
	}
	if pp.Images != nil {
		p.Images = slices.Clone(*pp.Images)
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Amenities != nil {
		p.Amenities = slices.Clone(*pp.Amenities)
	}
	if pp.YearBuilt != nil {
		p.YearBuilt = utils.Ptr(*pp.YearBuilt)
	}
	if pp.ListingDate != nil {
		p.ListingDate = *pp.ListingDate
	}
	if pp.Coordinates != nil {
		c := *pp.Coordinates
		p.Coordinates = &c
	}
}

func (pp PropertyPatch) IsEmpty() bool {
	return pp == PropertyPatch{}
}

// PatchFromMap decodes a loosely typed partial object, such as a JSON body
// unmarshalled into a map, into a PropertyPatch. Keys are matched against the
// json field names. Unknown keys and null values are ignored.
func PatchFromMap(fields map[string]any) (PropertyPatch, error) {
	var patch PropertyPatch
	var meta mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &patch,
		Metadata:   &meta,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return PropertyPatch{}, err
	}
	if err := dec.Decode(fields); err != nil {
		return PropertyPatch{}, fmt.Errorf("decode property patch: %w", err)
	}
	if len(meta.Unused) > 0 {
		utils.Logger.Debugf("property patch: ignoring unknown fields %v", meta.Unused)
	}
	return patch, nil
}
