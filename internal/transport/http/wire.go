package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stormx/accommodation/internal/domain"
)

const airlineHeader = "X-Airline-Id"
const hotelIDPrefix = "tvl-"
const dateFormat = "2006-01-02"

// hotelWireID presents a hotel id the way the public API spells it.
func hotelWireID(id string) string {
	return hotelIDPrefix + id
}

func parseHotelWireID(wire string) (string, bool) {
	id := strings.TrimPrefix(wire, hotelIDPrefix)
	if id == "" || id == wire {
		return "", false
	}
	return id, true
}

func airlineFromRequest(r *http.Request) (int64, bool) {
	raw := r.Header.Get(airlineHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type passengerResponse struct {
	ContextID             string  `json:"context_id"`
	AirlineID             int64   `json:"airline_id"`
	Name                  string  `json:"name,omitempty"`
	Port                  string  `json:"port,omitempty"`
	PaxRecordLocator      string  `json:"pax_record_locator"`
	PaxRecordLocatorGroup string  `json:"pax_record_locator_group"`
	PNRCreateDate         string  `json:"pnr_create_date"`
	NumberOfNights        int     `json:"number_of_nights"`
	HotelStatus           string  `json:"hotel_accommodation_status"`
	MealStatus            string  `json:"meal_accommodation_status"`
	VoucherID             *string `json:"voucher_id,omitempty"`
}

func toPassengerResponse(p domain.Passenger) passengerResponse {
	return passengerResponse{
		ContextID:             p.ContextID,
		AirlineID:             p.AirlineID,
		Name:                  p.Name,
		Port:                  p.Port,
		PaxRecordLocator:      p.PaxRecordLocator,
		PaxRecordLocatorGroup: p.PaxRecordLocatorGroup,
		PNRCreateDate:         p.PNRCreateDate.Format(dateFormat),
		NumberOfNights:        p.NumberOfNights,
		HotelStatus:           string(p.HotelStatus),
		MealStatus:            string(p.MealStatus),
		VoucherID:             p.VoucherID,
	}
}

func toPassengerResponses(passengers []domain.Passenger) []passengerResponse {
	out := make([]passengerResponse, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, toPassengerResponse(p))
	}
	return out
}

type roomVoucherResponse struct {
	Night     int    `json:"night"`
	Rate      string `json:"rate"`
	Count     int    `json:"count"`
	BlockType string `json:"block_type"`
	HardBlock bool   `json:"hard_block"`
	FkBlockID string `json:"fk_block_id"`
}

type feeResponse struct {
	Type  string `json:"type"`
	Rate  string `json:"rate"`
	Count int    `json:"count"`
	Total string `json:"total"`
}

type taxLineResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type hotelVoucherResponse struct {
	HotelID          string                `json:"hotel_id"`
	Provider         string                `json:"provider"`
	Status           string                `json:"status"`
	RoomsBooked      int                   `json:"rooms_booked"`
	Nights           int                   `json:"nights"`
	HardBlock        bool                  `json:"hard_block"`
	RoomVouchers     []roomVoucherResponse `json:"room_vouchers"`
	Fees             []feeResponse         `json:"fees"`
	Tax              string                `json:"tax"`
	Taxes            []taxLineResponse     `json:"taxes"`
	VoucherRoomRate  string                `json:"voucher_room_rate"`
	VoucherRoomTotal int                   `json:"voucher_room_total"`
	TotalAmount      string                `json:"total_amount"`
	HotelKey         string                `json:"hotel_key"`
	CheckInDate      string                `json:"check_in_date"`
	CheckOutDate     string                `json:"check_out_date"`
}

func toHotelVoucherResponse(v domain.Voucher) hotelVoucherResponse {
	rooms := make([]roomVoucherResponse, 0, len(v.RoomVouchers))
	for _, rv := range v.RoomVouchers {
		rooms = append(rooms, roomVoucherResponse{
			Night:     rv.Night,
			Rate:      rv.Rate.StringFixed(2),
			Count:     rv.Count,
			BlockType: rv.BlockType.String(),
			HardBlock: rv.HardBlock,
			FkBlockID: rv.BlockID,
		})
	}
	fees := make([]feeResponse, 0, len(v.Fees))
	for _, fee := range v.Fees {
		fees = append(fees, feeResponse{
			Type:  string(fee.Kind),
			Rate:  fee.Rate.StringFixed(2),
			Count: fee.Count,
			Total: fee.Total.StringFixed(2),
		})
	}
	taxes := make([]taxLineResponse, 0, len(v.Taxes))
	for _, line := range v.Taxes {
		taxes = append(taxes, taxLineResponse{
			Name:   line.Name,
			Amount: line.Amount.StringFixed(2),
		})
	}

	return hotelVoucherResponse{
		HotelID:          hotelWireID(v.HotelID),
		Provider:         v.Provider,
		Status:           string(v.Status),
		RoomsBooked:      v.RoomsBooked,
		Nights:           v.Nights,
		HardBlock:        v.HardBlock,
		RoomVouchers:     rooms,
		Fees:             fees,
		Tax:              v.Tax.StringFixed(2),
		Taxes:            taxes,
		VoucherRoomRate:  v.RoomRate.StringFixed(2),
		VoucherRoomTotal: v.RoomsBooked,
		TotalAmount:      v.TotalAmount.StringFixed(2),
		HotelKey:         v.CheckInKey,
		CheckInDate:      v.CheckInDate.Format(dateFormat),
		CheckOutDate:     v.CheckOutDate.Format(dateFormat),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
