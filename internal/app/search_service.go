package app

import (
	"context"
	"sort"
	"time"

	"github.com/stormx/accommodation/internal/clock"
	"github.com/stormx/accommodation/internal/domain"
)

type SearchRepository interface {
	ListHotelsByPort(ctx context.Context, port string) ([]domain.Hotel, error)
	GetBlocks(ctx context.Context, hotelID string, date time.Time) ([]domain.InventoryBlock, error)
}

// SearchService produces the hotel offer listing. Reads are unlocked and may
// race with concurrent bookings; offers are advisory and only the
// booking-time reservation is exact.
type SearchService struct {
	repo  SearchRepository
	clock clock.Clock
}

func NewSearchService(repo SearchRepository, clk clock.Clock) *SearchService {
	return &SearchService{
		repo:  repo,
		clock: clk,
	}
}

type SearchInput struct {
	AirlineID      int64
	Port           string
	RoomCount      int
	NumberOfNights int
}

// ListHotels returns the hotels at the port that can cover the requested
// room count, sorted ascending by blended rate. A hotel whose eligible
// inventory cannot cover the count is omitted rather than shown partially.
//
// Availability and pricing are derived from the first night's blocks.
// TODO: query day-2+ blocks so multi-night listings advertise a rate over
// the full stay instead of night one.
func (s *SearchService) ListHotels(ctx context.Context, in SearchInput) ([]domain.HotelOffer, error) {
	if in.Port == "" || in.RoomCount <= 0 {
		return nil, domain.ErrInvalidBookingRequest
	}
	nights := in.NumberOfNights
	if nights <= 0 {
		nights = 1
	}

	checkIn := s.clock.Now().Truncate(24 * time.Hour)

	hotels, err := s.repo.ListHotelsByPort(ctx, in.Port)
	if err != nil {
		return nil, err
	}

	offers := make([]domain.HotelOffer, 0, len(hotels))
	for _, hotel := range hotels {
		blocks, err := s.repo.GetBlocks(ctx, hotel.ID, checkIn)
		if err != nil {
			return nil, err
		}

		uses, err := SelectBlocks(blocks, in.AirlineID, in.RoomCount)
		if err == domain.ErrInsufficientInventory {
			continue
		}
		if err != nil {
			return nil, err
		}

		available, hardCount := EligibleAvailability(blocks, in.AirlineID)
		rooms := BuildRoomVouchers([][]BlockUse{uses})

		offers = append(offers, domain.HotelOffer{
			Hotel:               hotel,
			Available:           available,
			HardBlockCount:      hardCount,
			Rate:                MeanNightlyRate(rooms),
			ProposedCheckInDate: checkIn,
			ProposedCheckOut:    checkIn.AddDate(0, 0, nights),
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Rate.Cmp(offers[j].Rate) < 0
	})
	return offers, nil
}
