package constants

import (
	"time"
)

// Simulated round-trip latency of the property service
const (
	PropertyListLatency   = 300 * time.Millisecond // getAll, getByType
	PropertyGetLatency    = 200 * time.Millisecond
	PropertySearchLatency = 400 * time.Millisecond // search and the composed browse query
	PropertyWriteLatency  = 300 * time.Millisecond
)

// Simulated round-trip latency of the saved-property service
const (
	SavedListLatency   = 300 * time.Millisecond
	SavedGetLatency    = 200 * time.Millisecond
	SavedWriteLatency  = 300 * time.Millisecond
	SavedCheckLatency  = 100 * time.Millisecond
	SavedToggleLatency = 200 * time.Millisecond
)

// Filter metadata and saved filters
const (
	FilterLatency = 200 * time.Millisecond
)

// Inquiry desk
const (
	InquiryLatency         = 1 * time.Second
	InquiryListLatency     = 300 * time.Millisecond
	InquiryMinMessageChars = 10
)

// Rental view
const (
	RentalPriceDivisor = 200 // monthly rent ≈ price / 200
)
