package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormx/accommodation/internal/domain"
)

type VoucherRepository struct {
	pool *pgxpool.Pool
}

func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

// GetVoucher loads the full voucher projection, scoped to the airline. A
// voucher owned by another airline is reported as not found.
func (r *VoucherRepository) GetVoucher(ctx context.Context, voucherID string, airlineID int64) (domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 AND airline_id = $2`

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, voucherID, airlineID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Voucher{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Voucher{}, domain.ErrVoucherNotFound
		}
		return domain.Voucher{}, fmt.Errorf("get voucher: %w", err)
	}

	if err := r.loadDetails(ctx, &v); err != nil {
		return domain.Voucher{}, err
	}
	return v, nil
}

func (r *VoucherRepository) loadDetails(ctx context.Context, v *domain.Voucher) error {
	const roomQuery = `
SELECT night, rate, room_count, block_type, hard_block, block_id
FROM room_vouchers
WHERE voucher_id = $1
ORDER BY night, id`

	rows, err := r.pool.Query(ctx, roomQuery, v.ID)
	if err != nil {
		return fmt.Errorf("list room vouchers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rv domain.RoomVoucher
		var blockType int16
		if err := rows.Scan(&rv.Night, &rv.Rate, &rv.Count, &blockType, &rv.HardBlock, &rv.BlockID); err != nil {
			return fmt.Errorf("scan room voucher: %w", err)
		}
		rv.BlockType = domain.BlockType(blockType)
		v.RoomVouchers = append(v.RoomVouchers, rv)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const feeQuery = `
SELECT fee_type, rate, fee_count, total
FROM voucher_fees
WHERE voucher_id = $1
ORDER BY id`

	feeRows, err := r.pool.Query(ctx, feeQuery, v.ID)
	if err != nil {
		return fmt.Errorf("list voucher fees: %w", err)
	}
	defer feeRows.Close()
	for feeRows.Next() {
		var fee domain.Fee
		var kind string
		if err := feeRows.Scan(&kind, &fee.Rate, &fee.Count, &fee.Total); err != nil {
			return fmt.Errorf("scan voucher fee: %w", err)
		}
		fee.Kind = domain.FeeKind(kind)
		v.Fees = append(v.Fees, fee)
	}
	if err := feeRows.Err(); err != nil {
		return err
	}

	const taxQuery = `
SELECT name, amount
FROM voucher_taxes
WHERE voucher_id = $1
ORDER BY id`

	taxRows, err := r.pool.Query(ctx, taxQuery, v.ID)
	if err != nil {
		return fmt.Errorf("list voucher taxes: %w", err)
	}
	defer taxRows.Close()
	for taxRows.Next() {
		var line domain.TaxLine
		if err := taxRows.Scan(&line.Name, &line.Amount); err != nil {
			return fmt.Errorf("scan voucher tax: %w", err)
		}
		v.Taxes = append(v.Taxes, line)
	}
	return taxRows.Err()
}

func (r *VoucherRepository) ListPassengersByVoucher(ctx context.Context, voucherID string) ([]domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE voucher_id = $1 ORDER BY created_at, context_id`

	rows, err := r.pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("list passengers by voucher: %w", err)
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
