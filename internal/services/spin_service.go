package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	"github.com/ezmeo/wheel-backend/internal/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Validation errors: caller mistakes, rejected before any side effect.
var (
	ErrUserNameTooShort = errors.New("name must be at least 2 characters")
	ErrMissingContact   = errors.New("either email or phone is required")
)

// NotEligibleError carries the eligibility refusal through the error return so
// the handler can surface the reason code. Ineligibility is an expected
// business outcome, not a system failure, and creates no ledger entry.
type NotEligibleError struct {
	Result *models.EligibilityResult
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("not eligible to spin: %s", e.Result.Reason)
}

// SpinRequest is the input to Spin
type SpinRequest struct {
	ConfigRef   string // id hex or lookup key; empty means the default wheel
	UserName    string
	UserEmail   string
	UserPhone   string
	Fingerprint string
	IPAddress   string
	UserAgent   string
}

// SpinService executes spins against a wheel configuration
type SpinService interface {
	// Spin re-validates eligibility, draws a prize, takes stock, issues a
	// coupon when the prize calls for one, and appends the ledger record. Any
	// failure before the ledger insert leaves no visible state change.
	Spin(ctx context.Context, req SpinRequest) (*models.SpinResult, error)

	// Validate runs the advisory eligibility check for the validate action.
	// The result only drives the client UI; Spin re-checks everything.
	Validate(ctx context.Context, configRef, email, phone, fingerprint string) (*models.EligibilityResult, error)

	// History returns a page of a campaign's ledger, newest first
	History(ctx context.Context, configRef string, page, limit int) ([]*models.Spin, error)

	// Stats aggregates a campaign's ledger
	Stats(ctx context.Context, configRef string) (*models.SpinStats, error)
}

// Compile-time check to ensure SpinServiceImpl implements SpinService
var _ SpinService = (*SpinServiceImpl)(nil)

// SpinServiceImpl orchestrates the spin pipeline
type SpinServiceImpl struct {
	configRepo  repositories.WheelConfigRepository
	prizeRepo   repositories.PrizeRepository
	spinRepo    repositories.SpinRepository
	eligibility EligibilityService
	coupons     CouponService
	cfg         *config.Config
	rng         Rand
}

// NewSpinService creates a new SpinServiceImpl. Pass a seeded Rand for
// reproducible draws in tests; nil uses the concurrency-safe global source.
func NewSpinService(
	configRepo repositories.WheelConfigRepository,
	prizeRepo repositories.PrizeRepository,
	spinRepo repositories.SpinRepository,
	eligibility EligibilityService,
	coupons CouponService,
	cfg *config.Config,
	rng Rand,
) *SpinServiceImpl {
	if rng == nil {
		rng = GlobalRand{}
	}
	return &SpinServiceImpl{
		configRepo:  configRepo,
		prizeRepo:   prizeRepo,
		spinRepo:    spinRepo,
		eligibility: eligibility,
		coupons:     coupons,
		cfg:         cfg,
		rng:         rng,
	}
}

// Spin executes one spin attempt end to end
func (s *SpinServiceImpl) Spin(ctx context.Context, req SpinRequest) (*models.SpinResult, error) {
	userName := strings.TrimSpace(req.UserName)
	if len([]rune(userName)) < 2 {
		return nil, ErrUserNameTooShort
	}
	identity := models.NewIdentity(req.UserEmail, req.UserPhone, req.Fingerprint)
	if !identity.HasContact() {
		return nil, ErrMissingContact
	}

	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, req.ConfigRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		return nil, err
	}

	// Never trust a prior validate call across the round trip.
	eligibility, err := s.eligibility.Check(ctx, wheelConfig, identity)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanSpin {
		return nil, &NotEligibleError{Result: eligibility}
	}

	prizes, err := s.prizeRepo.FindActiveByConfigID(ctx, wheelConfig.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}

	prize, stockTaken, err := s.drawWithStock(ctx, prizes, wheelConfig.ProbabilityMode)
	if err != nil {
		return nil, err
	}

	spinNumber, err := s.spinRepo.CountByIdentity(ctx, wheelConfig.ID, identity)
	if err != nil {
		if stockTaken {
			s.restoreStock(ctx, prize)
		}
		return nil, fmt.Errorf("failed to number spin: %w", err)
	}
	spinNumber++

	isWinner := prize != nil && prize.PrizeType != models.PrizeTypeNone

	spin := &models.Spin{
		ConfigID:        wheelConfig.ID,
		UserName:        userName,
		UserEmail:       identity.Email,
		UserPhone:       identity.Phone,
		FingerprintHash: identity.Fingerprint,
		IdentityKey:     identity.Key(),
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
		IsWinner:        isWinner,
		SpinNumber:      spinNumber,
	}
	if prize != nil {
		spin.PrizeID = &prize.ID
		spin.PrizeName = prize.Name
	}

	result := &models.SpinResult{
		IsWinner: isWinner,
		Message:  "Better luck next time!",
	}
	if isWinner {
		pub := prize.Public()
		result.Prize = &pub
		result.Message = fmt.Sprintf("Congratulations! You won %s", prize.Name)
	}

	// Coupon issuance is a soft dependency: losing the ledger record would hurt
	// abuse prevention more than a missing code hurts the winner, so issuer
	// failures downgrade the message instead of failing the spin. The key is
	// unique per execution; concurrent spins of the same identity never share
	// a code.
	var couponKey string
	if isWinner && prize.Coupon != nil {
		couponKey = uuid.NewString()
		coupon, err := s.coupons.IssueForSpin(ctx, wheelConfig.ID, prize, couponKey)
		if err != nil {
			slog.Error("coupon issuance failed, recording win without code",
				"error", err, "configId", wheelConfig.ID, "prizeId", prize.ID)
			result.Message = fmt.Sprintf("Congratulations! You won %s. Your coupon could not be issued automatically; our team will follow up.", prize.Name)
			couponKey = ""
		} else {
			spin.CouponCode = coupon.Code
			result.CouponCode = coupon.Code
		}
	}

	if err := s.insertSpin(ctx, wheelConfig, identity, spin); err != nil {
		// The decrement, the coupon and the ledger insert are one unit of work;
		// give the unit back so neither inventory nor a live code leaks.
		if stockTaken {
			s.restoreStock(ctx, prize)
		}
		s.voidCoupon(ctx, couponKey)
		return nil, err
	}

	if wheelConfig.MaxSpinsPerUser > 0 {
		remaining := wheelConfig.MaxSpinsPerUser - spin.SpinNumber
		if remaining < 0 {
			remaining = 0
		}
		result.RemainingSpins = remaining
	} else {
		result.RemainingSpins = models.UnlimitedSpins
	}

	slog.Info("spin recorded",
		"configId", wheelConfig.ID,
		"spinNumber", spin.SpinNumber,
		"isWinner", isWinner,
		"prize", spin.PrizeName,
		"email", utils.MaskContact(identity.Email),
		"phone", utils.MaskContact(identity.Phone))
	return result, nil
}

// insertSpin appends the ledger record. The unique index on
// (configId, identityKey, spinNumber) is the storage backstop for spin caps: a
// duplicate key means a concurrent spin from the same identity claimed this
// slot between the count and the insert. The cap is re-checked and the record
// renumbered once; a second conflict or a failed re-check refuses the spin.
func (s *SpinServiceImpl) insertSpin(ctx context.Context, wheelConfig *models.WheelConfig, identity models.Identity, spin *models.Spin) error {
	err := s.spinRepo.Create(ctx, spin)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to record spin: %w", err)
	}

	slog.Info("spin slot race lost, renumbering",
		"configId", wheelConfig.ID, "spinNumber", spin.SpinNumber)

	eligibility, checkErr := s.eligibility.Check(ctx, wheelConfig, identity)
	if checkErr != nil {
		return checkErr
	}
	if !eligibility.CanSpin {
		return &NotEligibleError{Result: eligibility}
	}

	count, countErr := s.spinRepo.CountByIdentity(ctx, wheelConfig.ID, identity)
	if countErr != nil {
		return fmt.Errorf("failed to number spin: %w", countErr)
	}
	spin.SpinNumber = count + 1
	if err := s.spinRepo.Create(ctx, spin); err != nil {
		return fmt.Errorf("failed to record spin: %w", err)
	}
	return nil
}

func (s *SpinServiceImpl) voidCoupon(ctx context.Context, idempotencyKey string) {
	if idempotencyKey == "" {
		return
	}
	if err := s.coupons.VoidByKey(ctx, idempotencyKey); err != nil {
		slog.Error("failed to void coupon for unrecorded spin", "error", err)
	}
}

// drawWithStock selects a prize and secures a unit of its stock. Losing the
// conditional decrement means a concurrent spin exhausted the prize between
// selection and decrement; the loser re-draws from the remaining pool instead
// of awarding an unavailable prize. Reports whether stock was actually taken.
func (s *SpinServiceImpl) drawWithStock(ctx context.Context, prizes []*models.Prize, mode models.ProbabilityMode) (*models.Prize, bool, error) {
	pool := prizes
	attempts := s.cfg.Wheel.MaxDrawAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		prize := SelectPrize(pool, mode, s.rng)
		if prize == nil {
			return nil, false, nil
		}
		if prize.PrizeType == models.PrizeTypeNone || prize.IsUnlimitedStock {
			return prize, false, nil
		}

		err := s.prizeRepo.DecrementStock(ctx, prize.ID)
		if err == nil {
			return prize, true, nil
		}
		if !errors.Is(err, repositories.ErrStockExhausted) {
			return nil, false, fmt.Errorf("failed to decrement stock: %w", err)
		}

		slog.Info("stock race lost, re-drawing", "prizeId", prize.ID, "attempt", attempt+1)
		pool = withoutPrize(pool, prize)
	}

	// Every attempt lost its race; treat the spin as a non-winning outcome
	// rather than surfacing contention to the user.
	return nil, false, nil
}

func (s *SpinServiceImpl) restoreStock(ctx context.Context, prize *models.Prize) {
	if prize == nil {
		return
	}
	if err := s.prizeRepo.RestoreStock(ctx, prize.ID); err != nil {
		slog.Error("failed to restore prize stock", "error", err, "prizeId", prize.ID)
	}
}

func withoutPrize(pool []*models.Prize, exclude *models.Prize) []*models.Prize {
	remaining := make([]*models.Prize, 0, len(pool))
	for _, p := range pool {
		if p.ID != exclude.ID {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

// Validate runs the advisory eligibility check
func (s *SpinServiceImpl) Validate(ctx context.Context, configRef, email, phone, fingerprint string) (*models.EligibilityResult, error) {
	identity := models.NewIdentity(email, phone, fingerprint)
	if identity.IsEmpty() {
		return nil, ErrMissingIdentity
	}
	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, configRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			// An unknown campaign is simply one nobody can spin.
			return &models.EligibilityResult{
				CanSpin: false,
				Reason:  models.ReasonCampaignInactive,
				Message: "This campaign is not active",
			}, nil
		}
		return nil, err
	}
	return s.eligibility.Check(ctx, wheelConfig, identity)
}

// History returns a page of a campaign's ledger
func (s *SpinServiceImpl) History(ctx context.Context, configRef string, page, limit int) ([]*models.Spin, error) {
	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, configRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		return nil, err
	}
	return s.spinRepo.FindByConfigID(ctx, wheelConfig.ID, page, limit)
}

// Stats aggregates a campaign's ledger
func (s *SpinServiceImpl) Stats(ctx context.Context, configRef string) (*models.SpinStats, error) {
	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, configRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		return nil, err
	}
	return s.spinRepo.Stats(ctx, wheelConfig.ID)
}
