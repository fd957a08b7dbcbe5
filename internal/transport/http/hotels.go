package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

// HotelSearcher is the minimal interface needed to list hotel offers.
type HotelSearcher interface {
	ListHotels(ctx context.Context, in app.SearchInput) ([]domain.HotelOffer, error)
}

// Booker is the minimal interface needed to book a hotel voucher.
type Booker interface {
	Book(ctx context.Context, in app.BookInput) (app.BookResult, error)
}

type hotelOfferResponse struct {
	HotelID             string   `json:"hotel_id"`
	Name                string   `json:"name"`
	Available           int      `json:"available"`
	HardBlockCount      int      `json:"hard_block_count"`
	Rate                string   `json:"rate"`
	ProposedCheckInDate string   `json:"proposed_check_in_date"`
	ProposedCheckOut    string   `json:"proposed_check_out_date"`
	Amenities           []string `json:"amenities"`
	PetsAllowed         bool     `json:"pets_allowed"`
}

// HandleListHotels returns an HTTP handler for the hotel offer listing.
func HandleListHotels(svc HotelSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airlineID, ok := airlineFromRequest(r)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "missing or invalid "+airlineHeader+" header")
			return
		}

		q := r.URL.Query()
		port := q.Get("port")
		roomCount, err := strconv.Atoi(q.Get("room_count"))
		if port == "" || err != nil || roomCount <= 0 {
			writeErrorDetail(w, http.StatusBadRequest, codeInvalidBookingRequest, "port and room_count are required", map[string]string{
				"port":       "IATA port code",
				"room_count": "positive integer",
			})
			return
		}
		nights := 1
		if raw := q.Get("number_of_nights"); raw != "" {
			nights, err = strconv.Atoi(raw)
			if err != nil || nights <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "number_of_nights must be a positive integer")
				return
			}
		}

		offers, err := svc.ListHotels(r.Context(), app.SearchInput{
			AirlineID:      airlineID,
			Port:           port,
			RoomCount:      roomCount,
			NumberOfNights: nights,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]hotelOfferResponse, 0, len(offers))
		for _, offer := range offers {
			amenities := offer.Hotel.Amenities
			if amenities == nil {
				amenities = []string{}
			}
			resp = append(resp, hotelOfferResponse{
				HotelID:             hotelWireID(offer.Hotel.ID),
				Name:                offer.Hotel.Name,
				Available:           offer.Available,
				HardBlockCount:      offer.HardBlockCount,
				Rate:                offer.Rate.StringFixed(2),
				ProposedCheckInDate: offer.ProposedCheckInDate.Format(dateFormat),
				ProposedCheckOut:    offer.ProposedCheckOut.Format(dateFormat),
				Amenities:           amenities,
				PetsAllowed:         offer.Hotel.PetsAllowed,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type bookRequest struct {
	ContextIDs     []string `json:"context_ids"`
	HotelID        string   `json:"hotel_id"`
	RoomCount      int      `json:"room_count"`
	NumberOfNights *int     `json:"number_of_nights,omitempty"`
}

type bookResponse struct {
	VoucherID    string               `json:"voucher_id"`
	HotelVoucher hotelVoucherResponse `json:"hotel_voucher"`
	Passengers   []passengerResponse  `json:"passengers"`
}

// HandleBookHotel returns an HTTP handler for booking a hotel voucher.
func HandleBookHotel(svc Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if len(req.ContextIDs) == 0 || req.HotelID == "" || req.RoomCount <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "context_ids, hotel_id and room_count are required")
			return
		}
		hotelID, ok := parseHotelWireID(req.HotelID)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidBookingRequest, "hotel_id must have the form tvl-<id>")
			return
		}

		res, err := svc.Book(r.Context(), app.BookInput{
			ContextIDs:     req.ContextIDs,
			HotelID:        hotelID,
			RoomCount:      req.RoomCount,
			NumberOfNights: req.NumberOfNights,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, bookResponse{
			VoucherID:    res.Voucher.ID,
			HotelVoucher: toHotelVoucherResponse(res.Voucher),
			Passengers:   toPassengerResponses(res.Passengers),
		})
	}
}
