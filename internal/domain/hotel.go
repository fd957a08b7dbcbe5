package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Hotel is a property that can hold disruption inventory.
type Hotel struct {
	ID          string
	Name        string
	Port        string
	PetsAllowed bool
	PetFee      decimal.Decimal
	Amenities   []string
	TaxRates    []TaxRate
	CreatedAt   time.Time
}

// TaxRate is one jurisdiction tax percentage applied to the room subtotal.
type TaxRate struct {
	Name    string
	Percent decimal.Decimal
}

// HotelOffer is a search-time projection of a hotel and its night-1
// availability for the requesting airline. Offers are advisory; only the
// booking-time reservation is exact.
type HotelOffer struct {
	Hotel Hotel
	// Available is the total eligible rooms remaining for the first night.
	Available int
	// HardBlockCount is the eligible rooms remaining in hard or contract
	// blocks for the first night.
	HardBlockCount int
	// Rate is the arithmetic mean over the per-room rates the selector would
	// reserve for the requested count.
	Rate                decimal.Decimal
	ProposedCheckInDate time.Time
	ProposedCheckOut    time.Time
}
