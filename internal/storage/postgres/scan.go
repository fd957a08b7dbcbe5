package postgres

import (
	"github.com/stormx/accommodation/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

const blockColumns = `id, hotel_id, block_date, room_type, block_type, price, remaining_count, airline_id, comment, position, created_at`

func scanBlock(row scanner) (domain.InventoryBlock, error) {
	var b domain.InventoryBlock
	var blockType int16
	err := row.Scan(
		&b.ID,
		&b.HotelID,
		&b.Date,
		&b.RoomType,
		&blockType,
		&b.Price,
		&b.RemainingCount,
		&b.AirlineID,
		&b.Comment,
		&b.Position,
		&b.CreatedAt,
	)
	if err != nil {
		return domain.InventoryBlock{}, err
	}
	b.Type = domain.BlockType(blockType)
	return b, nil
}

const passengerColumns = `context_id, airline_id, name, port, pax_record_locator, pax_record_locator_group, pnr_create_date, number_of_nights, has_pet, meals_enabled, hotel_status, meal_status, voucher_id, ak1, ak2, pnr_finalized, created_at`

func scanPassenger(row scanner) (domain.Passenger, error) {
	var p domain.Passenger
	var hotelStatus, mealStatus string
	err := row.Scan(
		&p.ContextID,
		&p.AirlineID,
		&p.Name,
		&p.Port,
		&p.PaxRecordLocator,
		&p.PaxRecordLocatorGroup,
		&p.PNRCreateDate,
		&p.NumberOfNights,
		&p.HasPet,
		&p.MealsEnabled,
		&hotelStatus,
		&mealStatus,
		&p.VoucherID,
		&p.AK1,
		&p.AK2,
		&p.PNRFinalized,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Passenger{}, err
	}
	p.HotelStatus = domain.AccommodationStatus(hotelStatus)
	p.MealStatus = domain.AccommodationStatus(mealStatus)
	return p, nil
}

const voucherColumns = `id, airline_id, hotel_id, provider, status, room_rate, tax, total_amount, check_in_key, rooms_booked, nights, hard_block, check_in_date, check_out_date, unlocked_at, canceled_date, created_at`

func scanVoucher(row scanner) (domain.Voucher, error) {
	var v domain.Voucher
	var status string
	err := row.Scan(
		&v.ID,
		&v.AirlineID,
		&v.HotelID,
		&v.Provider,
		&status,
		&v.RoomRate,
		&v.Tax,
		&v.TotalAmount,
		&v.CheckInKey,
		&v.RoomsBooked,
		&v.Nights,
		&v.HardBlock,
		&v.CheckInDate,
		&v.CheckOutDate,
		&v.UnlockedAt,
		&v.CanceledDate,
		&v.CreatedAt,
	)
	if err != nil {
		return domain.Voucher{}, err
	}
	v.Status = domain.VoucherStatus(status)
	return v, nil
}
