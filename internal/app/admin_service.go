package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stormx/accommodation/internal/clock"
	"github.com/stormx/accommodation/internal/domain"
)

type AdminRepository interface {
	CreateHotel(ctx context.Context, hotel domain.Hotel) error
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	CreateBlock(ctx context.Context, block domain.InventoryBlock) (domain.InventoryBlock, error)
	ListBlocksByHotel(ctx context.Context, hotelID string) ([]domain.InventoryBlock, error)
	CreatePassenger(ctx context.Context, passenger domain.Passenger) error
	PNRFinalized(ctx context.Context, airlineID int64, recordLocator string) (bool, error)
}

type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateHotelInput struct {
	Name        string
	Port        string
	PetsAllowed bool
	PetFee      decimal.Decimal
	Amenities   []string
	TaxRates    []domain.TaxRate
}

func (s *AdminService) CreateHotel(ctx context.Context, in CreateHotelInput) (domain.Hotel, error) {
	if in.Name == "" || in.Port == "" {
		return domain.Hotel{}, domain.ErrInvalidBookingRequest
	}

	hotel := domain.Hotel{
		ID:          newID(),
		Name:        in.Name,
		Port:        in.Port,
		PetsAllowed: in.PetsAllowed,
		PetFee:      in.PetFee,
		Amenities:   in.Amenities,
		TaxRates:    in.TaxRates,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateHotel(ctx, hotel); err != nil {
		return domain.Hotel{}, err
	}
	return hotel, nil
}

func (s *AdminService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

type CreateBlockInput struct {
	HotelID        string
	Date           time.Time
	RoomType       string
	Type           domain.BlockType
	Price          decimal.Decimal
	RemainingCount int
	AirlineID      int64
	Comment        string
}

func (s *AdminService) CreateBlock(ctx context.Context, in CreateBlockInput) (domain.InventoryBlock, error) {
	if in.HotelID == "" {
		return domain.InventoryBlock{}, domain.ErrInvalidID
	}
	if in.RemainingCount < 0 || !in.Price.IsPositive() {
		return domain.InventoryBlock{}, domain.ErrInvalidBookingRequest
	}

	roomType := in.RoomType
	if roomType == "" {
		roomType = "standard"
	}

	block := domain.InventoryBlock{
		ID:             newID(),
		HotelID:        in.HotelID,
		Date:           in.Date.Truncate(24 * time.Hour),
		RoomType:       roomType,
		Type:           in.Type,
		Price:          in.Price,
		RemainingCount: in.RemainingCount,
		AirlineID:      in.AirlineID,
		Comment:        in.Comment,
		CreatedAt:      s.clock.Now(),
	}

	created, err := s.repo.CreateBlock(ctx, block)
	if err != nil {
		return domain.InventoryBlock{}, err
	}
	return created, nil
}

func (s *AdminService) ListBlocks(ctx context.Context, hotelID string) ([]domain.InventoryBlock, error) {
	if hotelID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListBlocksByHotel(ctx, hotelID)
}

type ImportPassengerInput struct {
	AirlineID             int64
	Name                  string
	Port                  string
	PaxRecordLocator      string
	PaxRecordLocatorGroup string
	PNRCreateDate         time.Time
	NumberOfNights        int
	HasPet                bool
	MealsEnabled          bool
	// HotelOffered false imports a meal-only passenger.
	HotelOffered bool
}

// ImportPassenger creates a passenger from a PNR import. A PNR already in a
// finalized state rejects additional imports.
func (s *AdminService) ImportPassenger(ctx context.Context, in ImportPassengerInput) (domain.Passenger, error) {
	if in.AirlineID == 0 || in.PaxRecordLocator == "" || in.PaxRecordLocatorGroup == "" {
		return domain.Passenger{}, domain.ErrInvalidBookingRequest
	}

	finalized, err := s.repo.PNRFinalized(ctx, in.AirlineID, in.PaxRecordLocator)
	if err != nil {
		return domain.Passenger{}, err
	}
	if finalized {
		return domain.Passenger{}, domain.ErrPNRAlreadyFinalized
	}

	hotelStatus := domain.AccommodationOffered
	if !in.HotelOffered {
		hotelStatus = domain.AccommodationNotOffered
	}
	mealStatus := domain.AccommodationNotOffered
	if in.MealsEnabled {
		mealStatus = domain.AccommodationOffered
	}
	nights := in.NumberOfNights
	if nights <= 0 {
		nights = 1
	}

	passenger := domain.Passenger{
		ContextID:             newID(),
		AirlineID:             in.AirlineID,
		Name:                  in.Name,
		Port:                  in.Port,
		PaxRecordLocator:      in.PaxRecordLocator,
		PaxRecordLocatorGroup: in.PaxRecordLocatorGroup,
		PNRCreateDate:         in.PNRCreateDate.Truncate(24 * time.Hour),
		NumberOfNights:        nights,
		HasPet:                in.HasPet,
		MealsEnabled:          in.MealsEnabled,
		HotelStatus:           hotelStatus,
		MealStatus:            mealStatus,
		AK1:                   newID(),
		AK2:                   newCheckInKey(),
		CreatedAt:             s.clock.Now(),
	}

	if err := s.repo.CreatePassenger(ctx, passenger); err != nil {
		return domain.Passenger{}, err
	}
	return passenger, nil
}
