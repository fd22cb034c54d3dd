package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	"github.com/ezmeo/wheel-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// ErrCouponNotFound is returned when a coupon code resolves to nothing
var ErrCouponNotFound = errors.New("coupon not found")

// CouponService materializes redeemable codes for winning spins. Issuance is
// idempotent per spin: retrying with the same idempotency key returns the
// coupon issued the first time instead of minting a second code.
type CouponService interface {
	IssueForSpin(ctx context.Context, configID primitive.ObjectID, prize *models.Prize, idempotencyKey string) (*models.Coupon, error)
	// VoidByKey deletes the coupon issued under the given key, if any. Called
	// when the spin that earned the code failed before it was recorded; a code
	// without a ledger row must not stay redeemable.
	VoidByKey(ctx context.Context, idempotencyKey string) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	ListByConfig(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error)
}

// Compile-time check to ensure CouponServiceImpl implements CouponService
var _ CouponService = (*CouponServiceImpl)(nil)

// CouponServiceImpl implements CouponService
type CouponServiceImpl struct {
	couponRepo repositories.CouponRepository
	cfg        *config.Config
}

// NewCouponService creates a new CouponServiceImpl
func NewCouponService(couponRepo repositories.CouponRepository, cfg *config.Config) *CouponServiceImpl {
	return &CouponServiceImpl{
		couponRepo: couponRepo,
		cfg:        cfg,
	}
}

// IssueForSpin issues the coupon a winning segment awards. The code is the
// segment's template prefix plus a random suffix, e.g. "WHEEL-7KQ2M9AF". A
// suffix collision (unique index on code) is retried once with fresh entropy;
// a collision on the idempotency key means this spin already has a coupon and
// that coupon is returned instead.
func (s *CouponServiceImpl) IssueForSpin(ctx context.Context, configID primitive.ObjectID, prize *models.Prize, idempotencyKey string) (*models.Coupon, error) {
	if prize.Coupon == nil {
		return nil, fmt.Errorf("prize %q has no coupon template", prize.Name)
	}

	// Retry-safe: a re-issued spin returns its existing coupon.
	existing, err := s.couponRepo.FindByIdempotencyKey(ctx, idempotencyKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing coupon: %w", err)
	}

	spec := prize.Coupon
	var expiresAt *time.Time
	if spec.ValidDays > 0 {
		t := time.Now().AddDate(0, 0, spec.ValidDays)
		expiresAt = &t
	}

	prefix := strings.ToUpper(strings.TrimSpace(spec.CodePrefix))
	if prefix == "" {
		prefix = "WHEEL"
	}

	for attempt := 0; attempt < 2; attempt++ {
		suffix, err := utils.GenerateCouponSuffix(s.cfg.Wheel.CouponCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate coupon code: %w", err)
		}
		coupon := &models.Coupon{
			Code:           prefix + "-" + suffix,
			ConfigID:       configID,
			PrizeID:        prize.ID,
			IdempotencyKey: idempotencyKey,
			DiscountKind:   spec.DiscountKind,
			DiscountValue:  spec.DiscountValue,
			ExpiresAt:      expiresAt,
		}
		err = s.couponRepo.Create(ctx, coupon)
		if err == nil {
			return coupon, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			// Either the code suffix collided (retry) or a concurrent retry of
			// the same spin won the insert (return theirs).
			if existing, findErr := s.couponRepo.FindByIdempotencyKey(ctx, idempotencyKey); findErr == nil {
				return existing, nil
			}
			slog.Warn("coupon code collision, regenerating", "prefix", prefix, "attempt", attempt)
			continue
		}
		return nil, fmt.Errorf("failed to persist coupon: %w", err)
	}
	return nil, errors.New("failed to generate a unique coupon code")
}

// VoidByKey deletes the coupon issued under the given key
func (s *CouponServiceImpl) VoidByKey(ctx context.Context, idempotencyKey string) error {
	return s.couponRepo.DeleteByIdempotencyKey(ctx, idempotencyKey)
}

// GetByCode looks up an issued coupon
func (s *CouponServiceImpl) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	return coupon, nil
}

// ListByConfig returns a page of a campaign's issued coupons
func (s *CouponServiceImpl) ListByConfig(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error) {
	return s.couponRepo.FindByConfigID(ctx, configID, page, limit)
}
