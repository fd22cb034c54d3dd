package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// ErrPrizeNotFound is returned when a prize id resolves to nothing
var ErrPrizeNotFound = errors.New("prize not found")

// PublicWheel is the client-facing bundle for rendering the wheel
type PublicWheel struct {
	Config models.PublicWheelConfig `json:"config"`
	Prizes []models.PublicPrize     `json:"prizes"`
}

// AdminWheel is the back-office bundle: full configuration plus full segments
type AdminWheel struct {
	Config *models.WheelConfig `json:"config"`
	Prizes []*models.Prize     `json:"prizes"`
}

// WheelService provides the configuration/prize read paths and the back-office
// CRUD surface. The public read path strips stock counters and weights so the
// wheel cannot be reverse-engineered or stock-sniped from the storefront.
type WheelService interface {
	GetPublicWheel(ctx context.Context, configRef string) (*PublicWheel, error)
	GetWheel(ctx context.Context, configRef string) (*AdminWheel, error)

	CreateConfig(ctx context.Context, cfg *models.WheelConfig) error
	UpdateConfig(ctx context.Context, cfg *models.WheelConfig) error
	DeleteConfig(ctx context.Context, id primitive.ObjectID) error
	ListConfigs(ctx context.Context) ([]*models.WheelConfig, error)

	CreatePrize(ctx context.Context, prize *models.Prize) error
	UpdatePrize(ctx context.Context, prize *models.Prize) error
	DeletePrize(ctx context.Context, id primitive.ObjectID) error
}

// Compile-time check to ensure WheelServiceImpl implements WheelService
var _ WheelService = (*WheelServiceImpl)(nil)

// WheelServiceImpl implements WheelService
type WheelServiceImpl struct {
	configRepo repositories.WheelConfigRepository
	prizeRepo  repositories.PrizeRepository
	cfg        *config.Config
}

// NewWheelService creates a new WheelServiceImpl
func NewWheelService(configRepo repositories.WheelConfigRepository, prizeRepo repositories.PrizeRepository, cfg *config.Config) *WheelServiceImpl {
	return &WheelServiceImpl{
		configRepo: configRepo,
		prizeRepo:  prizeRepo,
		cfg:        cfg,
	}
}

// GetPublicWheel returns the stripped storefront view. Inactive campaigns are
// reported as not found so the storefront cannot probe upcoming promotions.
func (s *WheelServiceImpl) GetPublicWheel(ctx context.Context, configRef string) (*PublicWheel, error) {
	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, configRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		return nil, err
	}
	if !wheelConfig.IsActive {
		return nil, ErrConfigNotFound
	}

	prizes, err := s.prizeRepo.FindActiveByConfigID(ctx, wheelConfig.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}

	public := &PublicWheel{
		Config: wheelConfig.Public(),
		Prizes: make([]models.PublicPrize, 0, len(prizes)),
	}
	for _, p := range prizes {
		public.Prizes = append(public.Prizes, p.Public())
	}
	return public, nil
}

// GetWheel returns the full back-office view of a configuration
func (s *WheelServiceImpl) GetWheel(ctx context.Context, configRef string) (*AdminWheel, error) {
	wheelConfig, err := ResolveConfigRef(ctx, s.configRepo, configRef, s.cfg.Wheel.DefaultKey)
	if err != nil {
		return nil, err
	}
	prizes, err := s.prizeRepo.FindByConfigID(ctx, wheelConfig.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}
	return &AdminWheel{Config: wheelConfig, Prizes: prizes}, nil
}

// CreateConfig creates a campaign configuration
func (s *WheelServiceImpl) CreateConfig(ctx context.Context, cfg *models.WheelConfig) error {
	if cfg.Key == "" {
		cfg.Key = s.cfg.Wheel.DefaultKey
	}
	if cfg.ProbabilityMode == "" {
		cfg.ProbabilityMode = models.ProbabilityModePercentage
	}
	if err := validateProbabilityMode(cfg.ProbabilityMode); err != nil {
		return err
	}
	if err := s.configRepo.Create(ctx, cfg); err != nil {
		return fmt.Errorf("failed to create wheel configuration: %w", err)
	}
	slog.Info("wheel configuration created", "configId", cfg.ID, "key", cfg.Key)
	return nil
}

// UpdateConfig updates a campaign configuration
func (s *WheelServiceImpl) UpdateConfig(ctx context.Context, cfg *models.WheelConfig) error {
	if err := validateProbabilityMode(cfg.ProbabilityMode); err != nil {
		return err
	}
	if _, err := s.configRepo.FindByID(ctx, cfg.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrConfigNotFound
		}
		return fmt.Errorf("failed to load wheel configuration: %w", err)
	}
	return s.configRepo.Update(ctx, cfg)
}

// DeleteConfig deletes a campaign configuration. Its spins stay in the ledger.
func (s *WheelServiceImpl) DeleteConfig(ctx context.Context, id primitive.ObjectID) error {
	return s.configRepo.Delete(ctx, id)
}

// ListConfigs returns all campaign configurations
func (s *WheelServiceImpl) ListConfigs(ctx context.Context) ([]*models.WheelConfig, error) {
	return s.configRepo.FindAll(ctx)
}

// CreatePrize creates a wheel segment
func (s *WheelServiceImpl) CreatePrize(ctx context.Context, prize *models.Prize) error {
	if err := validatePrize(prize); err != nil {
		return err
	}
	if _, err := s.configRepo.FindByID(ctx, prize.ConfigID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrConfigNotFound
		}
		return fmt.Errorf("failed to load wheel configuration: %w", err)
	}
	if !prize.IsUnlimitedStock && prize.StockRemaining == 0 {
		prize.StockRemaining = prize.StockTotal
	}
	return s.prizeRepo.Create(ctx, prize)
}

// UpdatePrize updates a wheel segment (stock counters excluded, see repository)
func (s *WheelServiceImpl) UpdatePrize(ctx context.Context, prize *models.Prize) error {
	if err := validatePrize(prize); err != nil {
		return err
	}
	if _, err := s.prizeRepo.FindByID(ctx, prize.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to load prize: %w", err)
	}
	return s.prizeRepo.Update(ctx, prize)
}

// DeletePrize deletes a wheel segment
func (s *WheelServiceImpl) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	return s.prizeRepo.Delete(ctx, id)
}

func validateProbabilityMode(mode models.ProbabilityMode) error {
	switch mode {
	case models.ProbabilityModePercentage, models.ProbabilityModeWeight:
		return nil
	default:
		return fmt.Errorf("unknown probability mode %q", mode)
	}
}

// validatePrize enforces the tagged-union shape of the prize payload: coupon
// fields only on coupon/discount segments, a product reference only on product
// segments, nothing on "none" segments.
func validatePrize(prize *models.Prize) error {
	if prize.Name == "" {
		return errors.New("prize name is required")
	}
	if prize.ProbabilityValue < 0 {
		return errors.New("probability value cannot be negative")
	}
	switch prize.PrizeType {
	case models.PrizeTypeCoupon, models.PrizeTypeDiscount:
		if prize.Coupon == nil {
			return fmt.Errorf("%s prize requires a coupon template", prize.PrizeType)
		}
		if prize.ProductID != "" {
			return fmt.Errorf("%s prize cannot reference a product", prize.PrizeType)
		}
		if prize.Coupon.DiscountKind != models.DiscountKindPercent && prize.Coupon.DiscountKind != models.DiscountKindFixed {
			return fmt.Errorf("unknown discount kind %q", prize.Coupon.DiscountKind)
		}
		if prize.Coupon.DiscountValue <= 0 {
			return errors.New("discount value must be positive")
		}
	case models.PrizeTypeProduct:
		if prize.ProductID == "" {
			return errors.New("product prize requires a product reference")
		}
		if prize.Coupon != nil {
			return errors.New("product prize cannot carry coupon fields")
		}
	case models.PrizeTypeNone:
		if prize.Coupon != nil || prize.ProductID != "" {
			return errors.New("none prize cannot carry an award payload")
		}
	default:
		return fmt.Errorf("unknown prize type %q", prize.PrizeType)
	}
	return nil
}
