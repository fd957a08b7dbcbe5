package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stormx/accommodation/internal/domain"
	"github.com/stormx/accommodation/internal/testutil"
)

func TestAdminRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewAdminRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	t.Run("CreateHotel and ListHotels", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		hotel := domain.Hotel{
			ID:          uuid.NewString(),
			Name:        "Harbor Inn",
			Port:        "SYD",
			PetsAllowed: true,
			PetFee:      decimal.RequireFromString("25.00"),
			Amenities:   []string{"wifi", "parking"},
			TaxRates:    []domain.TaxRate{{Name: "state", Percent: decimal.RequireFromString("7.25")}},
			CreatedAt:   now,
		}
		if err := repo.CreateHotel(ctx, hotel); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		hotels, err := repo.ListHotels(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(hotels) != 1 || hotels[0].Name != "Harbor Inn" {
			t.Fatalf("unexpected hotels: %+v", hotels)
		}
		if len(hotels[0].Amenities) != 2 {
			t.Fatalf("expected amenities kept, got %+v", hotels[0].Amenities)
		}

		var rateCount int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM hotel_tax_rates WHERE hotel_id = $1`, hotel.ID).Scan(&rateCount); err != nil {
			t.Fatalf("count rates: %v", err)
		}
		if rateCount != 1 {
			t.Fatalf("expected 1 tax rate, got %d", rateCount)
		}
	})

	t.Run("CreateBlock assigns increasing positions", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		hotelID := testutil.InsertHotel(t, ctx, pool, domain.Hotel{Name: "Harbor Inn", Port: "SYD"})

		first, err := repo.CreateBlock(ctx, domain.InventoryBlock{
			ID: uuid.NewString(), HotelID: hotelID, Date: date, RoomType: "standard",
			Type: domain.BlockTypeSoft, Price: decimal.RequireFromString("70.00"),
			RemainingCount: 5, CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := repo.CreateBlock(ctx, domain.InventoryBlock{
			ID: uuid.NewString(), HotelID: hotelID, Date: date, RoomType: "standard",
			Type: domain.BlockTypeHard, Price: decimal.RequireFromString("100.00"),
			RemainingCount: 3, AirlineID: 11, CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if first.Position >= second.Position {
			t.Fatalf("expected increasing positions, got %d then %d", first.Position, second.Position)
		}

		blocks, err := repo.ListBlocksByHotel(ctx, hotelID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
		if blocks[1].Type != domain.BlockTypeHard || blocks[1].AirlineID != 11 {
			t.Fatalf("unexpected block: %+v", blocks[1])
		}
	})

	t.Run("CreateBlock against unknown hotel", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.CreateBlock(ctx, domain.InventoryBlock{
			ID: uuid.NewString(), HotelID: "00000000-0000-0000-0000-000000000001",
			Date: date, RoomType: "standard", Price: decimal.RequireFromString("70.00"),
			RemainingCount: 5, CreatedAt: now,
		})
		if err != domain.ErrHotelNotFound {
			t.Fatalf("expected ErrHotelNotFound, got %v", err)
		}
	})

	t.Run("CreatePassenger and PNRFinalized", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		p := domain.Passenger{
			ContextID:             uuid.NewString(),
			AirlineID:             11,
			Name:                  "A Traveler",
			Port:                  "SYD",
			PaxRecordLocator:      "ABCDEF",
			PaxRecordLocatorGroup: "ABCDEF-1",
			PNRCreateDate:         date,
			NumberOfNights:        2,
			HotelStatus:           domain.AccommodationOffered,
			MealStatus:            domain.AccommodationNotOffered,
			AK1:                   "key-1",
			AK2:                   "ABCDE",
			CreatedAt:             now,
		}
		if err := repo.CreatePassenger(ctx, p); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		finalized, err := repo.PNRFinalized(ctx, 11, "ABCDEF")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if finalized {
			t.Fatalf("expected not finalized")
		}

		if _, err := pool.Exec(ctx, `UPDATE passengers SET pnr_finalized = TRUE WHERE context_id = $1`, p.ContextID); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		finalized, err = repo.PNRFinalized(ctx, 11, "ABCDEF")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !finalized {
			t.Fatalf("expected finalized")
		}

		// Another airline's identical locator is a different PNR.
		finalized, err = repo.PNRFinalized(ctx, 99, "ABCDEF")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if finalized {
			t.Fatalf("expected other airline unaffected")
		}
	})
}
