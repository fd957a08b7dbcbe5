package app

import (
	"github.com/shopspring/decimal"

	"github.com/stormx/accommodation/internal/domain"
)

// BuildRoomVouchers flattens a per-night selection plan into room voucher
// entries, one per block consumed per night.
func BuildRoomVouchers(plan [][]BlockUse) []domain.RoomVoucher {
	var out []domain.RoomVoucher
	for night, uses := range plan {
		for _, use := range uses {
			out = append(out, domain.RoomVoucher{
				Night:     night + 1,
				Rate:      use.Block.Price,
				Count:     use.Count,
				BlockType: use.Block.Type,
				HardBlock: use.Block.Type.IsHard(),
				BlockID:   use.Block.ID,
			})
		}
	}
	return out
}

// RoomSubtotal is the monetary sum over room-nights: rate x count for every
// room voucher entry.
func RoomSubtotal(rooms []domain.RoomVoucher) decimal.Decimal {
	total := decimal.Zero
	for _, rv := range rooms {
		total = total.Add(rv.Rate.Mul(decimal.NewFromInt(int64(rv.Count))))
	}
	return total
}

// MeanNightlyRate is the arithmetic mean over all per-room-night rates, the
// figure advertised as a hotel's blended rate. Returns zero for an empty set.
func MeanNightlyRate(rooms []domain.RoomVoucher) decimal.Decimal {
	roomNights := 0
	for _, rv := range rooms {
		roomNights += rv.Count
	}
	if roomNights == 0 {
		return decimal.Zero
	}
	return RoomSubtotal(rooms).Div(decimal.NewFromInt(int64(roomNights))).Round(2)
}

// AnyHardBlock reports whether any entry consumed pre-committed inventory.
func AnyHardBlock(rooms []domain.RoomVoucher) bool {
	for _, rv := range rooms {
		if rv.HardBlock {
			return true
		}
	}
	return false
}

// feeCalculator computes one kind of fee from the hotel and the passengers
// being accommodated. Dispatch is keyed by domain.FeeKind.
type feeCalculator interface {
	Kind() domain.FeeKind
	Compute(hotel domain.Hotel, passengers []domain.Passenger) (domain.Fee, bool)
}

type petFeeCalculator struct{}

func (petFeeCalculator) Kind() domain.FeeKind { return domain.FeeKindPet }

func (petFeeCalculator) Compute(hotel domain.Hotel, passengers []domain.Passenger) (domain.Fee, bool) {
	if !hotel.PetsAllowed || !hotel.PetFee.IsPositive() {
		return domain.Fee{}, false
	}
	count := 0
	for _, p := range passengers {
		if p.HasPet {
			count++
		}
	}
	if count == 0 {
		return domain.Fee{}, false
	}
	return domain.Fee{
		Kind:  domain.FeeKindPet,
		Rate:  hotel.PetFee,
		Count: count,
		Total: hotel.PetFee.Mul(decimal.NewFromInt(int64(count))),
	}, true
}

var feeCalculators = []feeCalculator{
	petFeeCalculator{},
}

// ComputeFees runs every registered fee calculator against the stay.
func ComputeFees(hotel domain.Hotel, passengers []domain.Passenger) []domain.Fee {
	var fees []domain.Fee
	for _, calc := range feeCalculators {
		if fee, ok := calc.Compute(hotel, passengers); ok {
			fees = append(fees, fee)
		}
	}
	return fees
}

// FeeTotal sums the fee totals.
func FeeTotal(fees []domain.Fee) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(f.Total)
	}
	return total
}

// ComputeTaxes itemizes the hotel's tax rates against the room subtotal.
// Each line is rounded to cents independently; the aggregate tax is defined
// as the sum of the lines, so itemization always reconciles exactly.
func ComputeTaxes(rates []domain.TaxRate, roomSubtotal decimal.Decimal) ([]domain.TaxLine, decimal.Decimal) {
	var lines []domain.TaxLine
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, rate := range rates {
		amount := roomSubtotal.Mul(rate.Percent).Div(hundred).Round(2)
		lines = append(lines, domain.TaxLine{Name: rate.Name, Amount: amount})
		total = total.Add(amount)
	}
	return lines, total
}
