package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

type stubImportService struct {
	passenger domain.Passenger
	err       error

	gotInput app.ImportPassengerInput
}

func (s *stubImportService) ImportPassenger(ctx context.Context, in app.ImportPassengerInput) (domain.Passenger, error) {
	s.gotInput = in
	return s.passenger, s.err
}

func TestHandleImportPassenger(t *testing.T) {
	t.Parallel()

	imported := domain.Passenger{
		ContextID:             "p1",
		AirlineID:             11,
		PaxRecordLocator:      "ABCDEF",
		PaxRecordLocatorGroup: "ABCDEF-1",
		PNRCreateDate:         time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		NumberOfNights:        2,
		HotelStatus:           domain.AccommodationOffered,
		MealStatus:            domain.AccommodationNotOffered,
		AK1:                   "key-1",
		AK2:                   "ABCDE",
	}

	validBody := `{"name":"A Traveler","pax_record_locator":"ABCDEF","pax_record_locator_group":"ABCDEF-1","pnr_create_date":"2025-02-28","number_of_nights":2}`

	tests := []struct {
		name           string
		body           string
		airlineHeader  string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success returns offer keys",
			body:           validBody,
			airlineHeader:  "11",
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"ak1":"key-1"`,
		},
		{
			name:           "missing airline header",
			body:           validBody,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			airlineHeader:  "11",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing record locator",
			body:           `{"name":"A Traveler","pax_record_locator_group":"ABCDEF-1"}`,
			airlineHeader:  "11",
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "INVALID_PNR_PASSENGER",
		},
		{
			name:           "bad date format",
			body:           `{"pax_record_locator":"ABCDEF","pax_record_locator_group":"ABCDEF-1","pnr_create_date":"28/02/2025"}`,
			airlineHeader:  "11",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "pnr finalized",
			body:           validBody,
			airlineHeader:  "11",
			serviceErr:     domain.ErrPNRAlreadyFinalized,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "PNR_ALREADY_FINALIZED",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubImportService{passenger: imported, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/passengers", bytes.NewBufferString(tt.body))
			if tt.airlineHeader != "" {
				req.Header.Set(airlineHeader, tt.airlineHeader)
			}
			rec := httptest.NewRecorder()

			HandleImportPassenger(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("hotel_offered defaults to true", func(t *testing.T) {
		t.Parallel()
		svc := &stubImportService{passenger: imported}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/passengers", bytes.NewBufferString(validBody))
		req.Header.Set(airlineHeader, "11")
		rec := httptest.NewRecorder()

		HandleImportPassenger(svc).ServeHTTP(rec, req)

		if !svc.gotInput.HotelOffered {
			t.Fatalf("expected hotel offered by default")
		}
		if svc.gotInput.AirlineID != 11 {
			t.Fatalf("expected airline from header, got %d", svc.gotInput.AirlineID)
		}
	})

	t.Run("meal-only import", func(t *testing.T) {
		t.Parallel()
		svc := &stubImportService{passenger: imported}
		body := `{"pax_record_locator":"ABCDEF","pax_record_locator_group":"ABCDEF-1","meals_enabled":true,"hotel_offered":false}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/passengers", bytes.NewBufferString(body))
		req.Header.Set(airlineHeader, "11")
		rec := httptest.NewRecorder()

		HandleImportPassenger(svc).ServeHTTP(rec, req)

		if svc.gotInput.HotelOffered {
			t.Fatalf("expected hotel not offered")
		}
		if !svc.gotInput.MealsEnabled {
			t.Fatalf("expected meals enabled")
		}
	})
}
