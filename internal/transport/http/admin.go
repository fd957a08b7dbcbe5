package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stormx/accommodation/internal/app"
	"github.com/stormx/accommodation/internal/domain"
)

// AdminHotelService is the minimal interface needed for admin hotel
// endpoints.
type AdminHotelService interface {
	CreateHotel(ctx context.Context, in app.CreateHotelInput) (domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
}

// AdminBlockService is the minimal interface needed for admin inventory
// block endpoints.
type AdminBlockService interface {
	CreateBlock(ctx context.Context, in app.CreateBlockInput) (domain.InventoryBlock, error)
	ListBlocks(ctx context.Context, hotelID string) ([]domain.InventoryBlock, error)
}

type taxRateRequest struct {
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

type createHotelRequest struct {
	Name        string           `json:"name"`
	Port        string           `json:"port"`
	PetsAllowed bool             `json:"pets_allowed"`
	PetFee      decimal.Decimal  `json:"pet_fee"`
	Amenities   []string         `json:"amenities"`
	TaxRates    []taxRateRequest `json:"tax_rates"`
}

type hotelResponse struct {
	HotelID     string   `json:"hotel_id"`
	Name        string   `json:"name"`
	Port        string   `json:"port"`
	PetsAllowed bool     `json:"pets_allowed"`
	PetFee      string   `json:"pet_fee"`
	Amenities   []string `json:"amenities"`
}

func toHotelResponse(h domain.Hotel) hotelResponse {
	amenities := h.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return hotelResponse{
		HotelID:     hotelWireID(h.ID),
		Name:        h.Name,
		Port:        h.Port,
		PetsAllowed: h.PetsAllowed,
		PetFee:      h.PetFee.StringFixed(2),
		Amenities:   amenities,
	}
}

// HandleAdminHotels returns an HTTP handler for admin hotel
// creation/listing.
func HandleAdminHotels(svc AdminHotelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			hotels, err := svc.ListHotels(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]hotelResponse, 0, len(hotels))
			for _, h := range hotels {
				resp = append(resp, toHotelResponse(h))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createHotelRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name == "" || req.Port == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "name and port are required")
				return
			}

			rates := make([]domain.TaxRate, 0, len(req.TaxRates))
			for _, rate := range req.TaxRates {
				rates = append(rates, domain.TaxRate{Name: rate.Name, Percent: rate.Percent})
			}

			hotel, err := svc.CreateHotel(r.Context(), app.CreateHotelInput{
				Name:        req.Name,
				Port:        req.Port,
				PetsAllowed: req.PetsAllowed,
				PetFee:      req.PetFee,
				Amenities:   req.Amenities,
				TaxRates:    rates,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toHotelResponse(hotel))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createBlockRequest struct {
	Date           string          `json:"date"`
	RoomType       string          `json:"room_type"`
	APBlockType    int             `json:"ap_block_type"`
	Price          decimal.Decimal `json:"price"`
	RemainingCount int             `json:"remaining_count"`
	AirlineID      int64           `json:"airline_id"`
	Comment        string          `json:"comment"`
}

type blockResponse struct {
	ID             string `json:"id"`
	HotelID        string `json:"hotel_id"`
	Date           string `json:"date"`
	RoomType       string `json:"room_type"`
	APBlockType    int    `json:"ap_block_type"`
	BlockType      string `json:"block_type"`
	Price          string `json:"price"`
	RemainingCount int    `json:"remaining_count"`
	AirlineID      int64  `json:"airline_id"`
	Comment        string `json:"comment,omitempty"`
}

func toBlockResponse(b domain.InventoryBlock) blockResponse {
	return blockResponse{
		ID:             b.ID,
		HotelID:        hotelWireID(b.HotelID),
		Date:           b.Date.Format(dateFormat),
		RoomType:       b.RoomType,
		APBlockType:    int(b.Type),
		BlockType:      b.Type.String(),
		Price:          b.Price.StringFixed(2),
		RemainingCount: b.RemainingCount,
		AirlineID:      b.AirlineID,
		Comment:        b.Comment,
	}
}

// HandleAdminBlocks returns an HTTP handler for admin inventory block
// creation/listing under a hotel.
func HandleAdminBlocks(svc AdminBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotelID, ok := parseHotelWireID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			blocks, err := svc.ListBlocks(r.Context(), hotelID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]blockResponse, 0, len(blocks))
			for _, b := range blocks {
				resp = append(resp, toBlockResponse(b))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createBlockRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			date, err := time.Parse(dateFormat, req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid date format")
				return
			}

			block, err := svc.CreateBlock(r.Context(), app.CreateBlockInput{
				HotelID:        hotelID,
				Date:           date,
				RoomType:       req.RoomType,
				Type:           domain.BlockType(req.APBlockType),
				Price:          req.Price,
				RemainingCount: req.RemainingCount,
				AirlineID:      req.AirlineID,
				Comment:        req.Comment,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toBlockResponse(block))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
