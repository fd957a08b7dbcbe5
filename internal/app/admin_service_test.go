package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stormx/accommodation/internal/clock"
	"github.com/stormx/accommodation/internal/domain"
)

type fakeAdminRepo struct {
	hotels     []domain.Hotel
	blocks     []domain.InventoryBlock
	passengers []domain.Passenger
	finalized  map[string]bool
	nextPos    int64
}

func (r *fakeAdminRepo) CreateHotel(ctx context.Context, hotel domain.Hotel) error {
	r.hotels = append(r.hotels, hotel)
	return nil
}

func (r *fakeAdminRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return r.hotels, nil
}

func (r *fakeAdminRepo) CreateBlock(ctx context.Context, block domain.InventoryBlock) (domain.InventoryBlock, error) {
	r.nextPos++
	block.Position = r.nextPos
	r.blocks = append(r.blocks, block)
	return block, nil
}

func (r *fakeAdminRepo) ListBlocksByHotel(ctx context.Context, hotelID string) ([]domain.InventoryBlock, error) {
	var out []domain.InventoryBlock
	for _, b := range r.blocks {
		if b.HotelID == hotelID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeAdminRepo) CreatePassenger(ctx context.Context, passenger domain.Passenger) error {
	r.passengers = append(r.passengers, passenger)
	return nil
}

func (r *fakeAdminRepo) PNRFinalized(ctx context.Context, airlineID int64, recordLocator string) (bool, error) {
	return r.finalized[recordLocator], nil
}

func TestAdminService_CreateHotel(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("creates a hotel with tax rates", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		hotel, err := svc.CreateHotel(context.Background(), CreateHotelInput{
			Name:        "Harbor Inn",
			Port:        "SYD",
			PetsAllowed: true,
			PetFee:      decimal.RequireFromString("25.00"),
			Amenities:   []string{"wifi", "parking"},
			TaxRates:    []domain.TaxRate{{Name: "state", Percent: decimal.RequireFromString("7.25")}},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if hotel.ID == "" {
			t.Fatalf("expected generated hotel ID")
		}
		if !hotel.CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v, got %v", now, hotel.CreatedAt)
		}
		if len(repo.hotels) != 1 {
			t.Fatalf("expected 1 hotel persisted, got %d", len(repo.hotels))
		}
	})

	t.Run("rejects missing name or port", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminRepo{}, clock.NewFixed(now))
		if _, err := svc.CreateHotel(context.Background(), CreateHotelInput{Port: "SYD"}); err != domain.ErrInvalidBookingRequest {
			t.Fatalf("expected ErrInvalidBookingRequest, got %v", err)
		}
		if _, err := svc.CreateHotel(context.Background(), CreateHotelInput{Name: "Harbor Inn"}); err != domain.ErrInvalidBookingRequest {
			t.Fatalf("expected ErrInvalidBookingRequest, got %v", err)
		}
	})
}

func TestAdminService_CreateBlock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("creates a block with defaults", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		created, err := svc.CreateBlock(context.Background(), CreateBlockInput{
			HotelID:        "hotel-1",
			Date:           time.Date(2025, 3, 2, 16, 45, 0, 0, time.UTC),
			Type:           domain.BlockTypeHard,
			Price:          decimal.RequireFromString("89.00"),
			RemainingCount: 10,
			AirlineID:      11,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.RoomType != "standard" {
			t.Fatalf("expected default room type, got %s", created.RoomType)
		}
		if created.Date.Hour() != 0 {
			t.Fatalf("expected date truncated to midnight, got %v", created.Date)
		}
		if created.Position != 1 {
			t.Fatalf("expected assigned position, got %d", created.Position)
		}
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminRepo{}, clock.NewFixed(now))

		if _, err := svc.CreateBlock(context.Background(), CreateBlockInput{Price: decimal.RequireFromString("89.00"), RemainingCount: 1}); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID without hotel, got %v", err)
		}
		if _, err := svc.CreateBlock(context.Background(), CreateBlockInput{HotelID: "hotel-1", RemainingCount: 1}); err != domain.ErrInvalidBookingRequest {
			t.Fatalf("expected ErrInvalidBookingRequest for zero price, got %v", err)
		}
		if _, err := svc.CreateBlock(context.Background(), CreateBlockInput{HotelID: "hotel-1", Price: decimal.RequireFromString("89.00"), RemainingCount: -1}); err != domain.ErrInvalidBookingRequest {
			t.Fatalf("expected ErrInvalidBookingRequest for negative count, got %v", err)
		}
	})
}

func TestAdminService_ImportPassenger(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	input := ImportPassengerInput{
		AirlineID:             11,
		Name:                  "A Traveler",
		Port:                  "SYD",
		PaxRecordLocator:      "ABCDEF",
		PaxRecordLocatorGroup: "ABCDEF-1",
		PNRCreateDate:         time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC),
		NumberOfNights:        2,
		MealsEnabled:          true,
		HotelOffered:          true,
	}

	t.Run("imports an offered passenger", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		p, err := svc.ImportPassenger(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.HotelStatus != domain.AccommodationOffered {
			t.Fatalf("expected hotel offered, got %s", p.HotelStatus)
		}
		if p.MealStatus != domain.AccommodationOffered {
			t.Fatalf("expected meal offered, got %s", p.MealStatus)
		}
		if p.ContextID == "" || p.AK1 == "" {
			t.Fatalf("expected generated identifiers")
		}
		if len(p.AK2) != 5 {
			t.Fatalf("expected 5-char ak2, got %q", p.AK2)
		}
		if p.PNRCreateDate.Hour() != 0 {
			t.Fatalf("expected pnr date truncated, got %v", p.PNRCreateDate)
		}
	})

	t.Run("imports a meal-only passenger", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		in := input
		in.HotelOffered = false
		p, err := svc.ImportPassenger(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.HotelStatus != domain.AccommodationNotOffered {
			t.Fatalf("expected hotel not_offered, got %s", p.HotelStatus)
		}
		if p.MealStatus != domain.AccommodationOffered {
			t.Fatalf("expected meal offered, got %s", p.MealStatus)
		}
	})

	t.Run("defaults nights to one", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminRepo{}, clock.NewFixed(now))

		in := input
		in.NumberOfNights = 0
		p, err := svc.ImportPassenger(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.NumberOfNights != 1 {
			t.Fatalf("expected 1 night, got %d", p.NumberOfNights)
		}
	})

	t.Run("rejects a finalized PNR", func(t *testing.T) {
		repo := &fakeAdminRepo{finalized: map[string]bool{"ABCDEF": true}}
		svc := NewAdminService(repo, clock.NewFixed(now))

		if _, err := svc.ImportPassenger(context.Background(), input); err != domain.ErrPNRAlreadyFinalized {
			t.Fatalf("expected ErrPNRAlreadyFinalized, got %v", err)
		}
	})

	t.Run("rejects incomplete PNR data", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminRepo{}, clock.NewFixed(now))

		in := input
		in.PaxRecordLocator = ""
		if _, err := svc.ImportPassenger(context.Background(), in); err != domain.ErrInvalidBookingRequest {
			t.Fatalf("expected ErrInvalidBookingRequest, got %v", err)
		}
	})
}
