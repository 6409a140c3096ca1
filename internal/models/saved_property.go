package models

import "time"

// SavedProperty links the (single, implicit) user to a property they saved.
// PropertyID is not required to reference an existing property.
type SavedProperty struct {
	ID         string    `json:"id" yaml:"id"`
	PropertyID string    `json:"propertyId" yaml:"propertyId"`
	SavedDate  time.Time `json:"savedDate" yaml:"savedDate"`
}

func (s *SavedProperty) GetID() string { return s.ID }

func (s *SavedProperty) Clone() *SavedProperty {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
