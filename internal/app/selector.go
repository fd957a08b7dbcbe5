package app

import (
	"sort"

	"github.com/stormx/accommodation/internal/domain"
)

// BlockUse is one step of a selection plan: consume Count rooms from Block.
type BlockUse struct {
	Block domain.InventoryBlock
	Count int
}

// SelectBlocks picks the mix of blocks covering roomCount rooms for a single
// (hotel, date) pair, cheapest first. Candidates are the blocks the airline
// may consume; ties on price prefer locked-in inventory (contract, then
// hard, then soft), then larger remaining count, then insertion order, which
// keeps repeated runs against identical inventory deterministic. Returns
// ErrInsufficientInventory when the eligible blocks cannot cover the
// requested count.
func SelectBlocks(blocks []domain.InventoryBlock, airlineID int64, roomCount int) ([]BlockUse, error) {
	if roomCount <= 0 {
		return nil, domain.ErrInvalidBookingRequest
	}

	candidates := make([]domain.InventoryBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.RemainingCount <= 0 {
			continue
		}
		if !b.EligibleFor(airlineID) {
			continue
		}
		candidates = append(candidates, b)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		switch candidates[i].Price.Cmp(candidates[j].Price) {
		case -1:
			return true
		case 1:
			return false
		}
		if pi, pj := lockInPriority(candidates[i].Type), lockInPriority(candidates[j].Type); pi != pj {
			return pi > pj
		}
		if candidates[i].RemainingCount != candidates[j].RemainingCount {
			return candidates[i].RemainingCount > candidates[j].RemainingCount
		}
		return candidates[i].Position < candidates[j].Position
	})

	var plan []BlockUse
	need := roomCount
	for _, b := range candidates {
		if need == 0 {
			break
		}
		take := b.RemainingCount
		if take > need {
			take = need
		}
		plan = append(plan, BlockUse{Block: b, Count: take})
		need -= take
	}
	if need > 0 {
		return nil, domain.ErrInsufficientInventory
	}
	return plan, nil
}

// lockInPriority ranks block types at equal price: pre-committed inventory
// is consumed before plain availability.
func lockInPriority(t domain.BlockType) int {
	switch t {
	case domain.BlockTypeContract:
		return 2
	case domain.BlockTypeHard:
		return 1
	default:
		return 0
	}
}

// EligibleAvailability sums the remaining rooms the airline could draw on,
// and how many of those sit in hard or contract blocks.
func EligibleAvailability(blocks []domain.InventoryBlock, airlineID int64) (available, hardCount int) {
	for _, b := range blocks {
		if b.RemainingCount <= 0 || !b.EligibleFor(airlineID) {
			continue
		}
		available += b.RemainingCount
		if b.Type.IsHard() {
			hardCount += b.RemainingCount
		}
	}
	return available, hardCount
}
