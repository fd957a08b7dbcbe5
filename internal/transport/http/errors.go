package http

import (
	"encoding/json"
	"net/http"

	"github.com/stormx/accommodation/internal/domain"
)

const (
	codeMethodNotAllowed       = "METHOD_NOT_ALLOWED"
	codeNotFound               = "NOT_FOUND"
	codeInvalidRequestBody     = "INVALID_REQUEST_BODY"
	codeInvalidBookingRequest  = "INVALID_BOOKING_REQUEST"
	codeInvalidPNRPassenger    = "INVALID_PNR_PASSENGER"
	codePassengerInfoMismatch  = "PASSENGER_INFO_MISMATCH"
	codePNRAlreadyFinalized    = "PNR_ALREADY_FINALIZED"
	codeInsufficientInventory  = "INSUFFICIENT_INVENTORY"
	codePassengerCannotCancel  = "PASSENGER_CANNOT_CANCEL"
	codePassengerCannotDecline = "PASSENGER_CANNOT_DECLINE"
	codeVoucherPaymentUnlocked = "VOUCHER_PAYMENT_UNLOCKED"
	codeVoucherCanceled        = "VOUCHER_CANCELED"
	codeInvalidCheckInKey      = "INVALID_CHECK_IN_KEY"
	codeHotelNotFound          = "HOTEL_NOT_FOUND"
	codePassengerNotFound      = "PASSENGER_NOT_FOUND"
	codeVoucherNotFound        = "VOUCHER_NOT_FOUND"
	codeForbidden              = "FORBIDDEN"
	codeInternalError          = "INTERNAL_ERROR"
)

type errorResponse struct {
	ErrorCode        string            `json:"error_code"`
	ErrorDescription string            `json:"error_description"`
	ErrorDetail      map[string]string `json:"error_detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorDetail(w, status, code, msg, nil)
}

func writeErrorDetail(w http.ResponseWriter, status int, code, msg string, detail map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		ErrorCode:        code,
		ErrorDescription: msg,
		ErrorDetail:      detail,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error_code":"INTERNAL_ERROR","error_description":"internal error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the service sentinels onto the wire taxonomy. No
// internal error ever leaks a stack trace; unknown errors collapse to a
// plain 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidBookingRequest, domain.ErrPassengerNotBookable, domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, err.Error())
	case domain.ErrInvalidPNRPassenger:
		writeError(w, http.StatusBadRequest, codeInvalidPNRPassenger, err.Error())
	case domain.ErrPassengerInfoMismatch:
		writeError(w, http.StatusBadRequest, codePassengerInfoMismatch, err.Error())
	case domain.ErrPNRAlreadyFinalized:
		writeError(w, http.StatusBadRequest, codePNRAlreadyFinalized, err.Error())
	case domain.ErrPassengerCannotCancel:
		writeError(w, http.StatusBadRequest, codePassengerCannotCancel, err.Error())
	case domain.ErrPassengerCannotDecline:
		writeError(w, http.StatusBadRequest, codePassengerCannotDecline, err.Error())
	case domain.ErrPaymentUnlocked:
		writeError(w, http.StatusBadRequest, codeVoucherPaymentUnlocked, err.Error())
	case domain.ErrInvalidCheckInKey:
		writeError(w, http.StatusBadRequest, codeInvalidCheckInKey, err.Error())
	case domain.ErrVoucherCanceled:
		writeError(w, http.StatusConflict, codeVoucherCanceled, err.Error())
	case domain.ErrInsufficientInventory:
		writeError(w, http.StatusConflict, codeInsufficientInventory, err.Error())
	case domain.ErrHotelNotFound:
		writeError(w, http.StatusNotFound, codeHotelNotFound, err.Error())
	case domain.ErrPassengerNotFound:
		writeError(w, http.StatusNotFound, codePassengerNotFound, err.Error())
	case domain.ErrVoucherNotFound:
		writeError(w, http.StatusNotFound, codeVoucherNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
