package dtos

import (
	"fmt"

	"github.com/poofware/listing-browser/internal/models"
)

// InquiryRequest is the contact form. The message length rule is
// registered by the inquiry service from constants.InquiryMinMessageChars.
type InquiryRequest struct {
	PropertyID string `json:"propertyId,omitempty"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone_digits"`
	Message    string `json:"message" validate:"required,message_len"`
}

type InquiryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func NewInquiryResponse(i *models.Inquiry) InquiryResponse {
	about := "your inquiry"
	if i.PropertyTitle != "" {
		about = fmt.Sprintf("your inquiry about %s", i.PropertyTitle)
	}
	return InquiryResponse{
		ID:      i.ID,
		Message: fmt.Sprintf("Thanks %s, we received %s and will be in touch soon.", i.Name, about),
	}
}
