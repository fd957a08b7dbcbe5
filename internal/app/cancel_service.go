package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stormx/accommodation/internal/clock"
	"github.com/stormx/accommodation/internal/domain"
)

type CancelRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPassengerForUpdate(ctx context.Context, contextID string) (domain.Passenger, error)
	GetPassengersByOfferKeys(ctx context.Context, ak1, ak2 string) ([]domain.Passenger, error)
	GetVoucherForUpdate(ctx context.Context, voucherID string) (domain.Voucher, error)
	UpdateVoucherCancellation(ctx context.Context, voucherID string, status domain.VoucherStatus, canceledDate time.Time) error
	SetVoucherUnlocked(ctx context.Context, voucherID string, at time.Time) error
	CancelPassengersByVoucher(ctx context.Context, voucherID string, status domain.AccommodationStatus) ([]domain.Passenger, error)
	UpdatePassengerHotelStatus(ctx context.Context, contextID string, status domain.AccommodationStatus) error
}

// CancelService handles the cancellation and payment-unlock state machines.
// Cancelling a voucher never restores the decremented inventory blocks:
// room holds are consumed monotonically once booked.
type CancelService struct {
	repo   CancelRepository
	clock  clock.Clock
	logger zerolog.Logger
}

func NewCancelService(repo CancelRepository, clk clock.Clock, logger zerolog.Logger) *CancelService {
	return &CancelService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

type CancelResult struct {
	// Passengers whose hotel axis transitioned, sharing one canceled date.
	Passengers   []domain.Passenger
	Status       domain.AccommodationStatus
	CanceledDate time.Time
}

// CancelByPassenger cancels the hotel accommodation for the passenger. When
// a voucher exists, every passenger sharing it is canceled with a single
// shared canceled date; the meal axis is left untouched.
func (s *CancelService) CancelByPassenger(ctx context.Context, contextID string) (CancelResult, error) {
	if contextID == "" {
		return CancelResult{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result CancelResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.repo.GetPassengerForUpdate(txCtx, contextID)
		if err != nil {
			return err
		}
		res, err := s.cancelPassenger(txCtx, p, now)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}

	s.logger.Info().
		Str("context_id", contextID).
		Str("status", string(result.Status)).
		Int("passengers", len(result.Passengers)).
		Msg("hotel accommodation canceled")

	return result, nil
}

// CancelOffer cancels a whole offer authenticated by its ak1/ak2 key pair.
func (s *CancelService) CancelOffer(ctx context.Context, ak1, ak2 string) (CancelResult, error) {
	if ak1 == "" || ak2 == "" {
		return CancelResult{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result CancelResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		passengers, err := s.repo.GetPassengersByOfferKeys(txCtx, ak1, ak2)
		if err != nil {
			return err
		}
		if len(passengers) == 0 {
			return domain.ErrPassengerNotFound
		}

		// A booked group cancels through its voucher; an unbooked one
		// cancels the offer passenger by passenger.
		for _, p := range passengers {
			if p.VoucherID != nil {
				res, err := s.cancelPassenger(txCtx, p, now)
				if err != nil {
					return err
				}
				result = res
				return nil
			}
		}

		var canceled []domain.Passenger
		for _, p := range passengers {
			if p.HotelStatus != domain.AccommodationOffered {
				continue
			}
			if err := s.repo.UpdatePassengerHotelStatus(txCtx, p.ContextID, domain.AccommodationCanceledOffer); err != nil {
				return err
			}
			p.HotelStatus = domain.AccommodationCanceledOffer
			canceled = append(canceled, p)
		}
		if len(canceled) == 0 {
			return domain.ErrPassengerCannotCancel
		}
		result = CancelResult{
			Passengers:   canceled,
			Status:       domain.AccommodationCanceledOffer,
			CanceledDate: now,
		}
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}
	return result, nil
}

func (s *CancelService) cancelPassenger(ctx context.Context, p domain.Passenger, now time.Time) (CancelResult, error) {
	if p.VoucherID == nil {
		// Only a live offer can be withdrawn; meal-only accommodations
		// (hotel axis not_offered) do not pass through the hotel-cancel
		// path at all.
		if p.HotelStatus != domain.AccommodationOffered {
			return CancelResult{}, domain.ErrPassengerCannotCancel
		}
		if err := s.repo.UpdatePassengerHotelStatus(ctx, p.ContextID, domain.AccommodationCanceledOffer); err != nil {
			return CancelResult{}, err
		}
		p.HotelStatus = domain.AccommodationCanceledOffer
		return CancelResult{
			Passengers:   []domain.Passenger{p},
			Status:       domain.AccommodationCanceledOffer,
			CanceledDate: now,
		}, nil
	}

	voucher, err := s.repo.GetVoucherForUpdate(ctx, *p.VoucherID)
	if err != nil {
		return CancelResult{}, err
	}
	if voucher.Provider == domain.ProviderEAN {
		return CancelResult{}, domain.ErrPassengerCannotCancel
	}
	if voucher.PaymentUnlocked() {
		return CancelResult{}, domain.ErrPaymentUnlocked
	}
	if voucher.Status != domain.VoucherStatusAccepted {
		return CancelResult{}, domain.ErrPassengerCannotCancel
	}

	if err := s.repo.UpdateVoucherCancellation(ctx, voucher.ID, domain.VoucherStatusCanceledVoucher, now); err != nil {
		return CancelResult{}, err
	}
	canceled, err := s.repo.CancelPassengersByVoucher(ctx, voucher.ID, domain.AccommodationCanceledVoucher)
	if err != nil {
		return CancelResult{}, err
	}
	return CancelResult{
		Passengers:   canceled,
		Status:       domain.AccommodationCanceledVoucher,
		CanceledDate: now,
	}, nil
}

// DeclineByPassenger declines an offered hotel accommodation. Declined is
// terminal on the hotel axis.
func (s *CancelService) DeclineByPassenger(ctx context.Context, contextID string) (domain.Passenger, error) {
	if contextID == "" {
		return domain.Passenger{}, domain.ErrInvalidID
	}

	var result domain.Passenger
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.repo.GetPassengerForUpdate(txCtx, contextID)
		if err != nil {
			return err
		}
		if p.HotelStatus != domain.AccommodationOffered {
			return domain.ErrPassengerCannotDecline
		}
		if err := s.repo.UpdatePassengerHotelStatus(txCtx, p.ContextID, domain.AccommodationDeclined); err != nil {
			return err
		}
		p.HotelStatus = domain.AccommodationDeclined
		result = p
		return nil
	})
	if err != nil {
		return domain.Passenger{}, err
	}
	return result, nil
}

// UnlockPayment marks the voucher's payment card as unlocked at the hotel.
// The key must match the voucher's check-in key. Unlock and cancellation
// are mutually exclusive; once unlocked the voucher can never be canceled.
func (s *CancelService) UnlockPayment(ctx context.Context, voucherID, hotelKey string) (domain.Voucher, error) {
	if voucherID == "" {
		return domain.Voucher{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Voucher

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		voucher, err := s.repo.GetVoucherForUpdate(txCtx, voucherID)
		if err != nil {
			return err
		}
		if voucher.CheckInKey != hotelKey {
			return domain.ErrInvalidCheckInKey
		}
		if voucher.PaymentUnlocked() {
			result = voucher
			return nil
		}
		if voucher.Status == domain.VoucherStatusCanceledVoucher || voucher.Status == domain.VoucherStatusCanceledOffer {
			return domain.ErrVoucherCanceled
		}
		if err := s.repo.SetVoucherUnlocked(txCtx, voucher.ID, now); err != nil {
			return err
		}
		voucher.UnlockedAt = &now
		result = voucher
		return nil
	})
	if err != nil {
		return domain.Voucher{}, err
	}

	s.logger.Info().
		Str("voucher_id", voucherID).
		Msg("voucher payment unlocked")

	return result, nil
}
