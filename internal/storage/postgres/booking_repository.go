package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormx/accommodation/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) GetHotel(ctx context.Context, hotelID string) (domain.Hotel, error) {
	const query = `SELECT id, name, port, pets_allowed, pet_fee, amenities, created_at FROM hotels WHERE id = $1`

	var h domain.Hotel
	err := r.queryRow(ctx, query, hotelID).
		Scan(&h.ID, &h.Name, &h.Port, &h.PetsAllowed, &h.PetFee, &h.Amenities, &h.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Hotel{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Hotel{}, domain.ErrHotelNotFound
		}
		return domain.Hotel{}, fmt.Errorf("get hotel: %w", err)
	}

	rates, err := r.taxRates(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.TaxRates = rates
	return h, nil
}

func (r *BookingRepository) taxRates(ctx context.Context, hotelID string) ([]domain.TaxRate, error) {
	const query = `SELECT name, percent FROM hotel_tax_rates WHERE hotel_id = $1 ORDER BY id`

	rows, err := r.query(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list tax rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.TaxRate
	for rows.Next() {
		var rate domain.TaxRate
		if err := rows.Scan(&rate.Name, &rate.Percent); err != nil {
			return nil, fmt.Errorf("scan tax rate: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *BookingRepository) GetPassengersForUpdate(ctx context.Context, contextIDs []string) ([]domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE context_id = ANY($1) ORDER BY created_at, context_id FOR UPDATE`

	rows, err := r.query(ctx, query, contextIDs)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("get passengers: %w", err)
	}
	defer rows.Close()

	var passengers []domain.Passenger
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan passenger: %w", err)
		}
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("get passengers: %w", err)
	}
	return passengers, nil
}

// GetBlocksForUpdate locks the hotel's blocks for the date so concurrent
// bookings serialize on the same inventory.
func (r *BookingRepository) GetBlocksForUpdate(ctx context.Context, hotelID string, date time.Time) ([]domain.InventoryBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM inventory_blocks WHERE hotel_id = $1 AND block_date = $2 ORDER BY position FOR UPDATE`
	return r.blocks(ctx, query, hotelID, date)
}

func (r *BookingRepository) blocks(ctx context.Context, query string, args ...any) ([]domain.InventoryBlock, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("get blocks: %w", err)
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

// DecrementBlock is the atomic compare-and-decrement: it only succeeds when
// the block still holds at least count rooms.
func (r *BookingRepository) DecrementBlock(ctx context.Context, blockID string, count int) error {
	const stmt = `
UPDATE inventory_blocks
SET remaining_count = remaining_count - $2
WHERE id = $1 AND remaining_count >= $2`

	tag, err := r.exec(ctx, stmt, blockID, count)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientInventory
		}
		return fmt.Errorf("decrement block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientInventory
	}
	return nil
}

func (r *BookingRepository) CreateVoucher(ctx context.Context, v domain.Voucher) error {
	const stmt = `
INSERT INTO vouchers (id, airline_id, hotel_id, provider, status, room_rate, tax, total_amount, check_in_key, rooms_booked, nights, hard_block, check_in_date, check_out_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.exec(ctx, stmt,
		v.ID,
		v.AirlineID,
		v.HotelID,
		v.Provider,
		string(v.Status),
		v.RoomRate,
		v.Tax,
		v.TotalAmount,
		v.CheckInKey,
		v.RoomsBooked,
		v.Nights,
		v.HardBlock,
		v.CheckInDate,
		v.CheckOutDate,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create voucher: %w", err)
	}

	const roomStmt = `
INSERT INTO room_vouchers (voucher_id, night, rate, room_count, block_type, hard_block, block_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, rv := range v.RoomVouchers {
		if _, err := r.exec(ctx, roomStmt, v.ID, rv.Night, rv.Rate, rv.Count, int16(rv.BlockType), rv.HardBlock, rv.BlockID); err != nil {
			return fmt.Errorf("create room voucher: %w", err)
		}
	}

	const feeStmt = `
INSERT INTO voucher_fees (voucher_id, fee_type, rate, fee_count, total)
VALUES ($1, $2, $3, $4, $5)`
	for _, fee := range v.Fees {
		if _, err := r.exec(ctx, feeStmt, v.ID, string(fee.Kind), fee.Rate, fee.Count, fee.Total); err != nil {
			return fmt.Errorf("create voucher fee: %w", err)
		}
	}

	const taxStmt = `
INSERT INTO voucher_taxes (voucher_id, name, amount)
VALUES ($1, $2, $3)`
	for _, line := range v.Taxes {
		if _, err := r.exec(ctx, taxStmt, v.ID, line.Name, line.Amount); err != nil {
			return fmt.Errorf("create voucher tax: %w", err)
		}
	}
	return nil
}

func (r *BookingRepository) UpdatePassengerAccommodation(ctx context.Context, contextID string, hotelStatus, mealStatus domain.AccommodationStatus, voucherID *string) error {
	const stmt = `
UPDATE passengers
SET hotel_status = $2, meal_status = $3, voucher_id = $4
WHERE context_id = $1`

	tag, err := r.exec(ctx, stmt, contextID, string(hotelStatus), string(mealStatus), voucherID)
	if err != nil {
		return fmt.Errorf("update passenger accommodation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
