package models

import "time"

type Inquiry struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"propertyId,omitempty"`
	PropertyTitle string    `json:"propertyTitle,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Message       string    `json:"message"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func (i *Inquiry) GetID() string { return i.ID }

func (i *Inquiry) Clone() *Inquiry {
	if i == nil {
		return nil
	}
	out := *i
	return &out
}
