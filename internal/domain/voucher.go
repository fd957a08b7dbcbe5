package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher providers. EAN vouchers come from the external provider adapter
// and carry reduced guarantees: they cannot be canceled.
const (
	ProviderTVL = "tvl"
	ProviderEAN = "ean"
)

type VoucherStatus string

const (
	VoucherStatusPending         VoucherStatus = "pending"
	VoucherStatusAccepted        VoucherStatus = "accepted"
	VoucherStatusDeclined        VoucherStatus = "declined"
	VoucherStatusCanceledOffer   VoucherStatus = "canceled_offer"
	VoucherStatusCanceledVoucher VoucherStatus = "canceled_voucher"
	VoucherStatusFinalized       VoucherStatus = "finalized"
)

// Voucher is the persisted record of an accepted hotel accommodation for a
// PNR group. It is assembled once at booking time and immutable afterwards
// except for status transitions.
type Voucher struct {
	ID        string
	AirlineID int64
	HotelID   string
	Provider  string
	Status    VoucherStatus

	RoomVouchers []RoomVoucher
	Fees         []Fee
	Taxes        []TaxLine

	// RoomRate is the plain monetary sum over room-nights (rate x count),
	// not an average.
	RoomRate    decimal.Decimal
	Tax         decimal.Decimal
	TotalAmount decimal.Decimal

	// CheckInKey is the opaque 5-char token presented at the hotel to unlock
	// payment card details.
	CheckInKey  string
	RoomsBooked int
	Nights      int
	// HardBlock is true when any consumed block is hard or contract.
	HardBlock bool

	CheckInDate  time.Time
	CheckOutDate time.Time

	UnlockedAt   *time.Time
	CanceledDate *time.Time
	CreatedAt    time.Time
}

// PaymentUnlocked reports whether the hotel already unlocked the payment
// card for this voucher. An unlocked voucher can no longer be canceled.
func (v Voucher) PaymentUnlocked() bool {
	return v.UnlockedAt != nil
}

// RoomVoucher records the consumption of one inventory block for one night:
// how many rooms, at what rate, and which block was decremented. BlockID is
// a lookup reference, not ownership; the block outlives the voucher.
type RoomVoucher struct {
	Night     int
	Rate      decimal.Decimal
	Count     int
	BlockType BlockType
	HardBlock bool
	BlockID   string
}

// FeeKind enumerates the fee calculators. Fees dispatch on this enum rather
// than on free-form strings.
type FeeKind string

const (
	FeeKindPet FeeKind = "pet"
)

type Fee struct {
	Kind  FeeKind
	Rate  decimal.Decimal
	Count int
	Total decimal.Decimal
}

// TaxLine is one itemized tax amount. The sum of a voucher's tax lines must
// equal Voucher.Tax exactly.
type TaxLine struct {
	Name   string
	Amount decimal.Decimal
}
