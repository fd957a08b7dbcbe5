package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormx/accommodation/internal/domain"
)

type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

func (r *SearchRepository) ListHotelsByPort(ctx context.Context, port string) ([]domain.Hotel, error) {
	const query = `SELECT id, name, port, pets_allowed, pet_fee, amenities, created_at FROM hotels WHERE port = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, port)
	if err != nil {
		return nil, fmt.Errorf("list hotels by port: %w", err)
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

// GetBlocks reads without locking; search results tolerate staleness.
func (r *SearchRepository) GetBlocks(ctx context.Context, hotelID string, date time.Time) ([]domain.InventoryBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM inventory_blocks WHERE hotel_id = $1 AND block_date = $2 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, hotelID, date)
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
