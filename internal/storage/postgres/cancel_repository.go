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

type CancelRepository struct {
	pool *pgxpool.Pool
}

func NewCancelRepository(pool *pgxpool.Pool) *CancelRepository {
	return &CancelRepository{pool: pool}
}

func (r *CancelRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CancelRepository) GetPassengerForUpdate(ctx context.Context, contextID string) (domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE context_id = $1 FOR UPDATE`

	p, err := scanPassenger(r.queryRow(ctx, query, contextID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Passenger{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Passenger{}, domain.ErrPassengerNotFound
		}
		return domain.Passenger{}, fmt.Errorf("get passenger: %w", err)
	}
	return p, nil
}

func (r *CancelRepository) GetPassengersByOfferKeys(ctx context.Context, ak1, ak2 string) ([]domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE ak1 = $1 AND ak2 = $2 ORDER BY created_at, context_id FOR UPDATE`

	rows, err := r.query(ctx, query, ak1, ak2)
	if err != nil {
		return nil, fmt.Errorf("get passengers by offer keys: %w", err)
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
	return passengers, rows.Err()
}

// GetVoucherForUpdate locks the voucher row. Cancellation and payment
// unlock both pass through here, which is what makes them mutually
// exclusive.
func (r *CancelRepository) GetVoucherForUpdate(ctx context.Context, voucherID string) (domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 FOR UPDATE`

	v, err := scanVoucher(r.queryRow(ctx, query, voucherID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Voucher{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Voucher{}, domain.ErrVoucherNotFound
		}
		return domain.Voucher{}, fmt.Errorf("get voucher: %w", err)
	}
	return v, nil
}

func (r *CancelRepository) UpdateVoucherCancellation(ctx context.Context, voucherID string, status domain.VoucherStatus, canceledDate time.Time) error {
	const stmt = `UPDATE vouchers SET status = $2, canceled_date = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, voucherID, string(status), canceledDate)
	if err != nil {
		return fmt.Errorf("update voucher cancellation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}

func (r *CancelRepository) SetVoucherUnlocked(ctx context.Context, voucherID string, at time.Time) error {
	const stmt = `UPDATE vouchers SET unlocked_at = $2 WHERE id = $1 AND unlocked_at IS NULL`

	tag, err := r.exec(ctx, stmt, voucherID, at)
	if err != nil {
		return fmt.Errorf("set voucher unlocked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}

// CancelPassengersByVoucher transitions the hotel axis for every passenger
// sharing the voucher. The meal axis is untouched.
func (r *CancelRepository) CancelPassengersByVoucher(ctx context.Context, voucherID string, status domain.AccommodationStatus) ([]domain.Passenger, error) {
	stmt := `
UPDATE passengers
SET hotel_status = $2
WHERE voucher_id = $1
RETURNING ` + passengerColumns

	rows, err := r.query(ctx, stmt, voucherID, string(status))
	if err != nil {
		return nil, fmt.Errorf("cancel passengers by voucher: %w", err)
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
	return passengers, rows.Err()
}

func (r *CancelRepository) UpdatePassengerHotelStatus(ctx context.Context, contextID string, status domain.AccommodationStatus) error {
	const stmt = `UPDATE passengers SET hotel_status = $2 WHERE context_id = $1`

	tag, err := r.exec(ctx, stmt, contextID, string(status))
	if err != nil {
		return fmt.Errorf("update passenger hotel status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

func (r *CancelRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CancelRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CancelRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
