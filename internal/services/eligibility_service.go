package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// ErrMissingIdentity is returned when a requester supplies no identity channel
// at all. This is a caller mistake, rejected before any storage query.
var ErrMissingIdentity = errors.New("at least one of email, phone or fingerprint is required")

// ErrConfigNotFound is returned when a configuration reference resolves to nothing
var ErrConfigNotFound = errors.New("wheel configuration not found")

// EligibilityService decides whether an identity may spin right now. The check
// is advisory for the validate endpoint and re-executed inside SpinService
// before anything is committed; a validate response must never be trusted
// across the round trip.
type EligibilityService interface {
	// Check resolves the configuration and applies the campaign window, global
	// cap, per-user cap and cooldown rules in that order. Storage failures are
	// returned as errors, never as a permissive result (fail closed).
	Check(ctx context.Context, config *models.WheelConfig, identity models.Identity) (*models.EligibilityResult, error)
}

// Compile-time check to ensure EligibilityServiceImpl implements EligibilityService
var _ EligibilityService = (*EligibilityServiceImpl)(nil)

// EligibilityServiceImpl implements EligibilityService over the spin ledger
type EligibilityServiceImpl struct {
	spinRepo repositories.SpinRepository
	clock    repositories.Clock
}

// NewEligibilityService creates a new EligibilityServiceImpl
func NewEligibilityService(spinRepo repositories.SpinRepository, clock repositories.Clock) *EligibilityServiceImpl {
	if clock == nil {
		clock = repositories.SystemClock{}
	}
	return &EligibilityServiceImpl{
		spinRepo: spinRepo,
		clock:    clock,
	}
}

// Check applies the eligibility rules for one identity against one campaign
func (s *EligibilityServiceImpl) Check(ctx context.Context, config *models.WheelConfig, identity models.Identity) (*models.EligibilityResult, error) {
	if identity.IsEmpty() {
		return nil, ErrMissingIdentity
	}

	now := s.clock.Now()

	if config == nil || !config.IsActive {
		return refused(models.ReasonCampaignInactive, "This campaign is not active"), nil
	}
	if !config.IsRunningAt(now) {
		return refused(models.ReasonCampaignNotRunning, "This campaign is not currently running"), nil
	}

	if config.MaxTotalSpins > 0 {
		total, err := s.spinRepo.CountByConfig(ctx, config.ID)
		if err != nil {
			slog.Error("eligibility: global spin count failed", "error", err, "configId", config.ID)
			return nil, fmt.Errorf("failed to count campaign spins: %w", err)
		}
		if total >= config.MaxTotalSpins {
			return refused(models.ReasonGlobalLimitReached, "All spins for this campaign have been used"), nil
		}
	}

	used, err := s.spinRepo.CountByIdentity(ctx, config.ID, identity)
	if err != nil {
		slog.Error("eligibility: identity spin count failed", "error", err, "configId", config.ID)
		return nil, fmt.Errorf("failed to count identity spins: %w", err)
	}

	remaining := models.UnlimitedSpins
	if config.MaxSpinsPerUser > 0 {
		if used >= config.MaxSpinsPerUser {
			return refused(models.ReasonPersonalLimit, "You have used all your spins"), nil
		}
		remaining = config.MaxSpinsPerUser - used
	}

	if config.CooldownHours > 0 && used > 0 {
		last, err := s.spinRepo.FindLastByIdentity(ctx, config.ID, identity)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error("eligibility: last spin lookup failed", "error", err, "configId", config.ID)
			return nil, fmt.Errorf("failed to find last spin: %w", err)
		}
		if last != nil {
			cooldown := time.Duration(config.CooldownHours) * time.Hour
			elapsed := now.Sub(last.CreatedAt)
			if elapsed < cooldown {
				result := refused(models.ReasonCooldownActive, "Please wait before spinning again")
				result.RemainingCooldownSeconds = int64((cooldown - elapsed).Seconds())
				result.SpinsRemaining = remaining
				return result, nil
			}
		}
	}

	return &models.EligibilityResult{
		CanSpin:        true,
		SpinsRemaining: remaining,
	}, nil
}

func refused(reason models.EligibilityReason, message string) *models.EligibilityResult {
	return &models.EligibilityResult{
		CanSpin: false,
		Reason:  reason,
		Message: message,
	}
}

// ResolveConfigRef resolves a client-supplied configuration reference: an empty
// ref falls back to the well-known default key, a valid ObjectID hex is looked
// up by id, anything else is treated as a lookup key.
func ResolveConfigRef(ctx context.Context, configRepo repositories.WheelConfigRepository, ref, defaultKey string) (*models.WheelConfig, error) {
	if ref == "" {
		ref = defaultKey
	}
	var (
		config *models.WheelConfig
		err    error
	)
	if id, idErr := primitive.ObjectIDFromHex(ref); idErr == nil {
		config, err = configRepo.FindByID(ctx, id)
	} else {
		config, err = configRepo.FindByKey(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to load wheel configuration: %w", err)
	}
	return config, nil
}
