package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

// PassengerImporter is the minimal interface needed to import passengers.
type PassengerImporter interface {
	ImportPassenger(ctx context.Context, in app.ImportPassengerInput) (domain.Passenger, error)
}

type importPassengerRequest struct {
	Name                  string `json:"name"`
	Port                  string `json:"port"`
	PaxRecordLocator      string `json:"pax_record_locator"`
	PaxRecordLocatorGroup string `json:"pax_record_locator_group"`
	PNRCreateDate         string `json:"pnr_create_date"`
	NumberOfNights        int    `json:"number_of_nights"`
	HasPet                bool   `json:"pet"`
	MealsEnabled          bool   `json:"meals_enabled"`
	HotelOffered          *bool  `json:"hotel_offered,omitempty"`
}

type importPassengerResponse struct {
	passengerResponse
	// Offer keys are returned once at import time only.
	AK1 string `json:"ak1"`
	AK2 string `json:"ak2"`
}

// HandleImportPassenger returns an HTTP handler for PNR passenger import.
func HandleImportPassenger(svc PassengerImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airlineID, ok := airlineFromRequest(r)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "missing or invalid "+airlineHeader+" header")
			return
		}

		var req importPassengerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.PaxRecordLocator == "" || req.PaxRecordLocatorGroup == "" {
			writeError(w, http.StatusBadRequest, codeInvalidPNRPassenger, "pax_record_locator and pax_record_locator_group are required")
			return
		}

		pnrCreateDate := time.Time{}
		if req.PNRCreateDate != "" {
			parsed, err := time.Parse(dateFormat, req.PNRCreateDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid pnr_create_date format")
				return
			}
			pnrCreateDate = parsed
		}

		hotelOffered := true
		if req.HotelOffered != nil {
			hotelOffered = *req.HotelOffered
		}

		p, err := svc.ImportPassenger(r.Context(), app.ImportPassengerInput{
			AirlineID:             airlineID,
			Name:                  req.Name,
			Port:                  req.Port,
			PaxRecordLocator:      req.PaxRecordLocator,
			PaxRecordLocatorGroup: req.PaxRecordLocatorGroup,
			PNRCreateDate:         pnrCreateDate,
			NumberOfNights:        req.NumberOfNights,
			HasPet:                req.HasPet,
			MealsEnabled:          req.MealsEnabled,
			HotelOffered:          hotelOffered,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, importPassengerResponse{
			passengerResponse: toPassengerResponse(p),
			AK1:               p.AK1,
			AK2:               p.AK2,
		})
	}
}
