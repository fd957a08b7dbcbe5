package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

// VoucherReader is the minimal interface needed to read a voucher.
type VoucherReader interface {
	GetVoucher(ctx context.Context, voucherID string, airlineID int64) (app.VoucherProjection, error)
}

// PaymentUnlocker is the minimal interface needed to unlock a voucher's
// payment card.
type PaymentUnlocker interface {
	UnlockPayment(ctx context.Context, voucherID, hotelKey string) (domain.Voucher, error)
}

type voucherProjectionResponse struct {
	VoucherID    string               `json:"voucher_id"`
	HotelVoucher hotelVoucherResponse `json:"hotel_voucher"`
	Passengers   []passengerResponse  `json:"passengers"`
	CanceledDate *string              `json:"canceled_date,omitempty"`
}

// HandleGetVoucher returns an HTTP handler for the read-only voucher
// projection. Repeated reads return the same structure until a
// state-changing operation occurs.
func HandleGetVoucher(svc VoucherReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airlineID, ok := airlineFromRequest(r)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "missing or invalid "+airlineHeader+" header")
			return
		}

		projection, err := svc.GetVoucher(r.Context(), chi.URLParam(r, "id"), airlineID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := voucherProjectionResponse{
			VoucherID:    projection.Voucher.ID,
			HotelVoucher: toHotelVoucherResponse(projection.Voucher),
			Passengers:   toPassengerResponses(projection.Passengers),
		}
		if projection.Voucher.CanceledDate != nil {
			formatted := formatTime(*projection.Voucher.CanceledDate)
			resp.CanceledDate = &formatted
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type unlockRequest struct {
	HotelKey string `json:"hotel_key"`
}

type unlockResponse struct {
	VoucherID  string `json:"voucher_id"`
	Status     string `json:"status"`
	UnlockedAt string `json:"unlocked_at"`
}

// HandleUnlockPayment returns an HTTP handler for the hotel-side payment
// unlock.
func HandleUnlockPayment(svc PaymentUnlocker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unlockRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.HotelKey == "" {
			writeError(w, http.StatusBadRequest, codeInvalidCheckInKey, "hotel_key is required")
			return
		}

		voucher, err := svc.UnlockPayment(r.Context(), chi.URLParam(r, "id"), req.HotelKey)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, unlockResponse{
			VoucherID:  voucher.ID,
			Status:     string(voucher.Status),
			UnlockedAt: formatTime(*voucher.UnlockedAt),
		})
	}
}
