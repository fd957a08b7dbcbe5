package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

type stubCancelService struct {
	result    app.CancelResult
	passenger domain.Passenger
	err       error

	gotContextID string
	gotAK1       string
	gotAK2       string
}

func (s *stubCancelService) CancelByPassenger(ctx context.Context, contextID string) (app.CancelResult, error) {
	s.gotContextID = contextID
	return s.result, s.err
}

func (s *stubCancelService) CancelOffer(ctx context.Context, ak1, ak2 string) (app.CancelResult, error) {
	s.gotAK1, s.gotAK2 = ak1, ak2
	return s.result, s.err
}

func (s *stubCancelService) DeclineByPassenger(ctx context.Context, contextID string) (domain.Passenger, error) {
	s.gotContextID = contextID
	return s.passenger, s.err
}

func cancelRouter(svc Canceler) http.Handler {
	r := chi.NewRouter()
	r.Put("/api/v1/passenger/{context_id}/cancel", HandleCancelPassenger(svc))
	r.Put("/api/v1/passenger/{context_id}/decline", HandleDeclinePassenger(svc))
	r.Put("/api/v1/offer/cancel", HandleCancelOffer(svc))
	return r
}

func TestHandleCancelPassenger(t *testing.T) {
	t.Parallel()

	result := app.CancelResult{
		Passengers:   []domain.Passenger{{ContextID: "p1", HotelStatus: domain.AccommodationCanceledVoucher}},
		Status:       domain.AccommodationCanceledVoucher,
		CanceledDate: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"status":"canceled_voucher"`,
		},
		{
			name:           "cannot cancel",
			serviceErr:     domain.ErrPassengerCannotCancel,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "PASSENGER_CANNOT_CANCEL",
		},
		{
			name:           "payment already unlocked",
			serviceErr:     domain.ErrPaymentUnlocked,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "VOUCHER_PAYMENT_UNLOCKED",
		},
		{
			name:           "passenger not found",
			serviceErr:     domain.ErrPassengerNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "internal error",
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCancelService{result: result, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPut, "/api/v1/passenger/p1/cancel", nil)
			rec := httptest.NewRecorder()

			cancelRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
			if tt.serviceErr == nil && svc.gotContextID != "p1" {
				t.Fatalf("expected context id p1, got %q", svc.gotContextID)
			}
		})
	}
}

func TestHandleCancelOffer(t *testing.T) {
	t.Parallel()

	result := app.CancelResult{
		Passengers:   []domain.Passenger{{ContextID: "p1", HotelStatus: domain.AccommodationCanceledOffer}},
		Status:       domain.AccommodationCanceledOffer,
		CanceledDate: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &stubCancelService{result: result}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/offer/cancel?ak1=key-1&ak2=ABCDE", nil)
		rec := httptest.NewRecorder()

		cancelRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.gotAK1 != "key-1" || svc.gotAK2 != "ABCDE" {
			t.Fatalf("expected keys forwarded, got %q/%q", svc.gotAK1, svc.gotAK2)
		}
	})

	t.Run("missing keys", func(t *testing.T) {
		t.Parallel()
		svc := &stubCancelService{result: result}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/offer/cancel?ak1=key-1", nil)
		rec := httptest.NewRecorder()

		cancelRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown keys", func(t *testing.T) {
		t.Parallel()
		svc := &stubCancelService{err: domain.ErrPassengerNotFound}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/offer/cancel?ak1=key-1&ak2=ABCDE", nil)
		rec := httptest.NewRecorder()

		cancelRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHandleDeclinePassenger(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &stubCancelService{passenger: domain.Passenger{
			ContextID:   "p1",
			HotelStatus: domain.AccommodationDeclined,
		}}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/passenger/p1/decline", nil)
		rec := httptest.NewRecorder()

		cancelRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"hotel_accommodation_status":"declined"`) {
			t.Fatalf("expected declined status in body, got %s", rec.Body.String())
		}
	})

	t.Run("cannot decline", func(t *testing.T) {
		t.Parallel()
		svc := &stubCancelService{err: domain.ErrPassengerCannotDecline}
		req := httptest.NewRequest(http.MethodPut, "/api/v1/passenger/p1/decline", nil)
		rec := httptest.NewRecorder()

		cancelRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "PASSENGER_CANNOT_DECLINE") {
			t.Fatalf("expected decline code, got %s", rec.Body.String())
		}
	})
}
