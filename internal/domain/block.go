package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BlockType is the ap_block_type classification of an inventory block.
// The numeric encoding mirrors the upstream platform and is provisional:
// confirm against the real system before relying on the ordering.
type BlockType int

const (
	BlockTypeSoft     BlockType = 0
	BlockTypeHard     BlockType = 1
	BlockTypeContract BlockType = 2
)

// SharedAirlineID marks a block that is not owned by any airline.
const SharedAirlineID int64 = 0

func (t BlockType) String() string {
	switch t {
	case BlockTypeHard:
		return "hard_block"
	case BlockTypeContract:
		return "contract_block"
	default:
		return "soft_block"
	}
}

// IsHard reports whether the block is pre-committed inventory
// (anything that is not plain soft availability).
func (t BlockType) IsHard() bool {
	return t == BlockTypeHard || t == BlockTypeContract
}

// InventoryBlock is a priced slice of room inventory for one hotel and date.
// A block with RemainingCount zero is excluded from selection but never
// deleted: historical vouchers keep referencing it.
type InventoryBlock struct {
	ID             string
	HotelID        string
	Date           time.Time
	RoomType       string
	Type           BlockType
	Price          decimal.Decimal
	RemainingCount int
	AirlineID      int64
	Comment        string
	// Position is the insertion order within the hotel, used as the final
	// selection tie-break (oldest block consumed first).
	Position int64
	CreatedAt time.Time
}

// EligibleFor reports whether the requesting airline may consume this block:
// either the airline owns it, or it is shared soft availability.
func (b InventoryBlock) EligibleFor(airlineID int64) bool {
	if b.AirlineID == airlineID {
		return true
	}
	return b.AirlineID == SharedAirlineID && b.Type == BlockTypeSoft
}
