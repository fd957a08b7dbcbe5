package app

import (
	"context"

	"github.com/stormx/accommodation/internal/domain"
)

type VoucherRepository interface {
	GetVoucher(ctx context.Context, voucherID string, airlineID int64) (domain.Voucher, error)
	ListPassengersByVoucher(ctx context.Context, voucherID string) ([]domain.Passenger, error)
}

// VoucherService serves read-only voucher projections. Reads are
// tenant-scoped: a voucher belonging to another airline is reported as not
// found, never as forbidden.
type VoucherService struct {
	repo VoucherRepository
}

func NewVoucherService(repo VoucherRepository) *VoucherService {
	return &VoucherService{repo: repo}
}

type VoucherProjection struct {
	Voucher    domain.Voucher
	Passengers []domain.Passenger
}

func (s *VoucherService) GetVoucher(ctx context.Context, voucherID string, airlineID int64) (VoucherProjection, error) {
	if voucherID == "" {
		return VoucherProjection{}, domain.ErrInvalidID
	}
	voucher, err := s.repo.GetVoucher(ctx, voucherID, airlineID)
	if err != nil {
		return VoucherProjection{}, err
	}
	passengers, err := s.repo.ListPassengersByVoucher(ctx, voucherID)
	if err != nil {
		return VoucherProjection{}, err
	}
	return VoucherProjection{Voucher: voucher, Passengers: passengers}, nil
}
