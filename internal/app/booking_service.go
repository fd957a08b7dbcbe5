package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stormx/accommodation/internal/clock"
	"github.com/stormx/accommodation/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetHotel(ctx context.Context, hotelID string) (domain.Hotel, error)
	GetPassengersForUpdate(ctx context.Context, contextIDs []string) ([]domain.Passenger, error)
	GetBlocksForUpdate(ctx context.Context, hotelID string, date time.Time) ([]domain.InventoryBlock, error)
	DecrementBlock(ctx context.Context, blockID string, count int) error
	CreateVoucher(ctx context.Context, voucher domain.Voucher) error
	UpdatePassengerAccommodation(ctx context.Context, contextID string, hotelStatus, mealStatus domain.AccommodationStatus, voucherID *string) error
}

// BookingService is the booking orchestrator: it validates the passenger
// group, reserves blocks for every night of the stay, and persists the
// voucher. The whole booking runs in one transaction, so a failed night
// releases every decrement already made for earlier nights.
type BookingService struct {
	repo   BookingRepository
	clock  clock.Clock
	logger zerolog.Logger
}

func NewBookingService(repo BookingRepository, clk clock.Clock, logger zerolog.Logger) *BookingService {
	return &BookingService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

type BookInput struct {
	ContextIDs []string
	HotelID    string
	RoomCount  int
	// NumberOfNights overrides the passengers' imported nights when set.
	NumberOfNights *int
}

type BookResult struct {
	Voucher    domain.Voucher
	Passengers []domain.Passenger
}

func (s *BookingService) Book(ctx context.Context, in BookInput) (BookResult, error) {
	if len(in.ContextIDs) == 0 || in.HotelID == "" || in.RoomCount <= 0 {
		return BookResult{}, domain.ErrInvalidBookingRequest
	}
	if in.NumberOfNights != nil && *in.NumberOfNights <= 0 {
		return BookResult{}, domain.ErrInvalidBookingRequest
	}

	now := s.clock.Now()
	checkIn := now.Truncate(24 * time.Hour)
	var result BookResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		passengers, err := s.repo.GetPassengersForUpdate(txCtx, in.ContextIDs)
		if err != nil {
			return err
		}
		if len(passengers) != len(in.ContextIDs) {
			return domain.ErrPassengerNotFound
		}

		nights, err := validateGroup(passengers, in.NumberOfNights)
		if err != nil {
			return err
		}

		hotel, err := s.repo.GetHotel(txCtx, in.HotelID)
		if err != nil {
			return err
		}

		plan := make([][]BlockUse, 0, nights)
		for night := 0; night < nights; night++ {
			date := checkIn.AddDate(0, 0, night)
			blocks, err := s.repo.GetBlocksForUpdate(txCtx, hotel.ID, date)
			if err != nil {
				return err
			}
			uses, err := SelectBlocks(blocks, passengers[0].AirlineID, in.RoomCount)
			if err != nil {
				return err
			}
			for _, use := range uses {
				if err := s.repo.DecrementBlock(txCtx, use.Block.ID, use.Count); err != nil {
					return err
				}
			}
			plan = append(plan, uses)
		}

		rooms := BuildRoomVouchers(plan)
		roomSubtotal := RoomSubtotal(rooms)
		fees := ComputeFees(hotel, passengers)
		taxes, tax := ComputeTaxes(hotel.TaxRates, roomSubtotal)

		voucher := domain.Voucher{
			ID:           newID(),
			AirlineID:    passengers[0].AirlineID,
			HotelID:      hotel.ID,
			Provider:     domain.ProviderTVL,
			Status:       domain.VoucherStatusAccepted,
			RoomVouchers: rooms,
			Fees:         fees,
			Taxes:        taxes,
			RoomRate:     roomSubtotal,
			Tax:          tax,
			TotalAmount:  roomSubtotal.Add(FeeTotal(fees)).Add(tax),
			CheckInKey:   newCheckInKey(),
			RoomsBooked:  in.RoomCount,
			Nights:       nights,
			HardBlock:    AnyHardBlock(rooms),
			CheckInDate:  checkIn,
			CheckOutDate: checkIn.AddDate(0, 0, nights),
			CreatedAt:    now,
		}

		if err := s.repo.CreateVoucher(txCtx, voucher); err != nil {
			return err
		}

		updated := make([]domain.Passenger, 0, len(passengers))
		for _, p := range passengers {
			mealStatus := p.MealStatus
			if p.MealsEnabled && p.MealStatus == domain.AccommodationOffered {
				mealStatus = domain.AccommodationAccepted
			}
			voucherID := voucher.ID
			if err := s.repo.UpdatePassengerAccommodation(txCtx, p.ContextID, domain.AccommodationAccepted, mealStatus, &voucherID); err != nil {
				return err
			}
			p.HotelStatus = domain.AccommodationAccepted
			p.MealStatus = mealStatus
			p.VoucherID = &voucherID
			updated = append(updated, p)
		}

		result = BookResult{Voucher: voucher, Passengers: updated}
		return nil
	})
	if err != nil {
		return BookResult{}, err
	}

	s.logger.Info().
		Str("voucher_id", result.Voucher.ID).
		Str("hotel_id", result.Voucher.HotelID).
		Int("rooms", result.Voucher.RoomsBooked).
		Int("nights", result.Voucher.Nights).
		Str("total", result.Voucher.TotalAmount.StringFixed(2)).
		Msg("hotel voucher booked")

	return result, nil
}

// validateGroup enforces the booking preconditions on the passenger group
// and resolves the stay length. Each violation is a distinct failure mode,
// checked before any inventory mutation.
func validateGroup(passengers []domain.Passenger, nightsOverride *int) (int, error) {
	first := passengers[0]
	for _, p := range passengers {
		if p.PNRFinalized {
			return 0, domain.ErrPNRAlreadyFinalized
		}
		if p.AirlineID != first.AirlineID || !p.SamePNRGroup(first) {
			return 0, domain.ErrInvalidPNRPassenger
		}
		if p.HotelStatus != domain.AccommodationOffered {
			return 0, domain.ErrPassengerNotBookable
		}
	}

	if nightsOverride != nil {
		return *nightsOverride, nil
	}
	nights := first.NumberOfNights
	for _, p := range passengers {
		if p.NumberOfNights != nights {
			return 0, domain.ErrPassengerInfoMismatch
		}
	}
	if nights <= 0 {
		nights = 1
	}
	return nights, nil
}
