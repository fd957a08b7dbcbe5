package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

// Canceler is the minimal interface needed for cancellation and decline.
type Canceler interface {
	CancelByPassenger(ctx context.Context, contextID string) (app.CancelResult, error)
	CancelOffer(ctx context.Context, ak1, ak2 string) (app.CancelResult, error)
	DeclineByPassenger(ctx context.Context, contextID string) (domain.Passenger, error)
}

type cancelResponse struct {
	Status       string              `json:"status"`
	CanceledDate string              `json:"canceled_date"`
	Passengers   []passengerResponse `json:"passengers"`
}

// HandleCancelPassenger returns an HTTP handler canceling the hotel
// accommodation for a passenger (and everyone sharing its voucher).
func HandleCancelPassenger(svc Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.CancelByPassenger(r.Context(), chi.URLParam(r, "context_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cancelResponse{
			Status:       string(res.Status),
			CanceledDate: formatTime(res.CanceledDate),
			Passengers:   toPassengerResponses(res.Passengers),
		})
	}
}

// HandleCancelOffer returns an HTTP handler canceling a whole offer by its
// ak1/ak2 key pair.
func HandleCancelOffer(svc Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ak1, ak2 := q.Get("ak1"), q.Get("ak2")
		if ak1 == "" || ak2 == "" {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "ak1 and ak2 are required")
			return
		}

		res, err := svc.CancelOffer(r.Context(), ak1, ak2)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cancelResponse{
			Status:       string(res.Status),
			CanceledDate: formatTime(res.CanceledDate),
			Passengers:   toPassengerResponses(res.Passengers),
		})
	}
}

// HandleDeclinePassenger returns an HTTP handler declining an offered hotel
// accommodation.
func HandleDeclinePassenger(svc Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.DeclineByPassenger(r.Context(), chi.URLParam(r, "context_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPassengerResponse(p))
	}
}
