package domain

import "errors"

var (
	ErrHotelNotFound     = errors.New("hotel not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrBlockNotFound     = errors.New("inventory block not found")
	ErrInvalidID         = errors.New("invalid id")

	ErrInvalidBookingRequest  = errors.New("invalid booking request")
	ErrInvalidPNRPassenger    = errors.New("passengers do not share the same pnr group")
	ErrPassengerInfoMismatch  = errors.New("passengers disagree on number of nights")
	ErrPNRAlreadyFinalized    = errors.New("pnr already finalized")
	ErrInsufficientInventory  = errors.New("insufficient inventory")
	ErrPassengerNotBookable   = errors.New("passenger is not in a bookable state")
	ErrPassengerCannotCancel  = errors.New("passenger cannot cancel")
	ErrPassengerCannotDecline = errors.New("passenger cannot decline")
	ErrPaymentUnlocked        = errors.New("cannot cancel: payment already unlocked")
	ErrVoucherCanceled        = errors.New("cannot unlock: voucher canceled")
	ErrInvalidCheckInKey      = errors.New("invalid check-in key")
)
