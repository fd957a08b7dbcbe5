package domain

import "time"

// AccommodationStatus tracks one accommodation axis (hotel or meal) for a
// passenger. The two axes are independent state machines: canceling a hotel
// voucher never touches the meal axis.
type AccommodationStatus string

const (
	AccommodationOffered         AccommodationStatus = "offered"
	AccommodationAccepted        AccommodationStatus = "accepted"
	AccommodationDeclined        AccommodationStatus = "declined"
	AccommodationCanceledOffer   AccommodationStatus = "canceled_offer"
	AccommodationCanceledVoucher AccommodationStatus = "canceled_voucher"
	AccommodationNotOffered      AccommodationStatus = "not_offered"
)

// Terminal reports whether no further transition is allowed on this axis.
func (s AccommodationStatus) Terminal() bool {
	switch s {
	case AccommodationDeclined, AccommodationCanceledOffer, AccommodationCanceledVoucher:
		return true
	}
	return false
}

// Passenger is a disrupted passenger imported from a PNR. Passengers sharing
// pax_record_locator_group and pnr_create_date are accommodated together and
// share a voucher; a different group on the same PNR gets its own voucher.
type Passenger struct {
	ContextID             string
	AirlineID             int64
	Name                  string
	Port                  string
	PaxRecordLocator      string
	PaxRecordLocatorGroup string
	PNRCreateDate         time.Time
	NumberOfNights        int
	HasPet                bool
	MealsEnabled          bool

	HotelStatus AccommodationStatus
	MealStatus  AccommodationStatus

	// VoucherID is set once a hotel booking is made for the group.
	VoucherID *string

	// AK1/AK2 authenticate offer-level operations without a session.
	AK1 string
	AK2 string

	PNRFinalized bool
	CreatedAt    time.Time
}

// SamePNRGroup reports whether two passengers belong to the same
// accommodation group.
func (p Passenger) SamePNRGroup(o Passenger) bool {
	return p.PaxRecordLocator == o.PaxRecordLocator &&
		p.PaxRecordLocatorGroup == o.PaxRecordLocatorGroup &&
		p.PNRCreateDate.Equal(o.PNRCreateDate)
}
