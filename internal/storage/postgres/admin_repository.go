package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormx/accommodation/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateHotel(ctx context.Context, hotel domain.Hotel) error {
	const stmt = `
INSERT INTO hotels (id, name, port, pets_allowed, pet_fee, amenities, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		hotel.ID,
		hotel.Name,
		hotel.Port,
		hotel.PetsAllowed,
		hotel.PetFee,
		hotel.Amenities,
		hotel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create hotel: %w", err)
	}

	const rateStmt = `INSERT INTO hotel_tax_rates (hotel_id, name, percent) VALUES ($1, $2, $3)`
	for _, rate := range hotel.TaxRates {
		if _, err := r.pool.Exec(ctx, rateStmt, hotel.ID, rate.Name, rate.Percent); err != nil {
			return fmt.Errorf("create hotel tax rate: %w", err)
		}
	}
	return nil
}

func (r *AdminRepository) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const query = `SELECT id, name, port, pets_allowed, pet_fee, amenities, created_at FROM hotels ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Port, &h.PetsAllowed, &h.PetFee, &h.Amenities, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// CreateBlock inserts the block and returns it with the DB-assigned
// insertion position.
func (r *AdminRepository) CreateBlock(ctx context.Context, block domain.InventoryBlock) (domain.InventoryBlock, error) {
	const stmt = `
INSERT INTO inventory_blocks (id, hotel_id, block_date, room_type, block_type, price, remaining_count, airline_id, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING position`

	err := r.pool.QueryRow(ctx, stmt,
		block.ID,
		block.HotelID,
		block.Date,
		block.RoomType,
		int16(block.Type),
		block.Price,
		block.RemainingCount,
		block.AirlineID,
		block.Comment,
		block.CreatedAt,
	).Scan(&block.Position)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.InventoryBlock{}, domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.InventoryBlock{}, domain.ErrHotelNotFound
		}
		return domain.InventoryBlock{}, fmt.Errorf("create block: %w", err)
	}
	return block, nil
}

func (r *AdminRepository) ListBlocksByHotel(ctx context.Context, hotelID string) ([]domain.InventoryBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM inventory_blocks WHERE hotel_id = $1 ORDER BY block_date, position`

	rows, err := r.pool.Query(ctx, query, hotelID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.InventoryBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *AdminRepository) CreatePassenger(ctx context.Context, p domain.Passenger) error {
	stmt := `
INSERT INTO passengers (` + passengerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, stmt,
		p.ContextID,
		p.AirlineID,
		p.Name,
		p.Port,
		p.PaxRecordLocator,
		p.PaxRecordLocatorGroup,
		p.PNRCreateDate,
		p.NumberOfNights,
		p.HasPet,
		p.MealsEnabled,
		string(p.HotelStatus),
		string(p.MealStatus),
		p.VoucherID,
		p.AK1,
		p.AK2,
		p.PNRFinalized,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create passenger: %w", err)
	}
	return nil
}

// PNRFinalized reports whether any passenger on the PNR has reached a
// finalized state for the airline.
func (r *AdminRepository) PNRFinalized(ctx context.Context, airlineID int64, recordLocator string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM passengers
	WHERE airline_id = $1 AND pax_record_locator = $2 AND pnr_finalized
)`

	var finalized bool
	if err := r.pool.QueryRow(ctx, query, airlineID, recordLocator).Scan(&finalized); err != nil {
		return false, fmt.Errorf("check pnr finalized: %w", err)
	}
	return finalized, nil
}
