package utils

const (
	OrganizationName = "Poof"
	DefaultAppName   = "listing-browser"

	DefaultInquiryFromEmail   = "listings@thepoofapp.com"
	DefaultInquiryNotifyEmail = "team@thepoofapp.com"
)
