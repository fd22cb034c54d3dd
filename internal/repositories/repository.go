package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ezmeo/wheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStockExhausted is returned by PrizeRepository.DecrementStock when the
// conditional decrement matched no document, i.e. a concurrent spin took the
// last unit. Callers treat it as "stock ran out a moment earlier" and fall back.
var ErrStockExhausted = errors.New("prize stock exhausted")

// WheelConfigRepository defines the interface for wheel configuration operations
type WheelConfigRepository interface {
	Create(ctx context.Context, config *models.WheelConfig) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WheelConfig, error)
	FindByKey(ctx context.Context, key string) (*models.WheelConfig, error)
	FindAll(ctx context.Context) ([]*models.WheelConfig, error)
	Update(ctx context.Context, config *models.WheelConfig) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PrizeRepository defines the interface for prize (wheel segment) operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	// FindByConfigID returns all segments for a configuration sorted by displayOrder
	FindByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error)
	// FindActiveByConfigID returns active segments sorted by displayOrder
	FindActiveByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock atomically takes one unit of finite stock. Returns
	// ErrStockExhausted when no stock remains; the decrement is conditional on
	// stockRemaining > 0 so the counter can never go negative.
	DecrementStock(ctx context.Context, id primitive.ObjectID) error
	// RestoreStock gives one unit back, used to roll back a decrement when the
	// ledger insert that should have accompanied it fails.
	RestoreStock(ctx context.Context, id primitive.ObjectID) error
}

// SpinRepository defines the interface for the append-only spin ledger
type SpinRepository interface {
	Create(ctx context.Context, spin *models.Spin) error
	CountByConfig(ctx context.Context, configID primitive.ObjectID) (int64, error)
	// CountByIdentity counts prior spins whose fingerprint, email, or phone
	// matches any channel of the given identity (OR-match abuse heuristic).
	CountByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (int64, error)
	// FindLastByIdentity returns the identity's most recent spin, or
	// mongo.ErrNoDocuments when it has never spun.
	FindLastByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (*models.Spin, error)
	FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Spin, error)
	Stats(ctx context.Context, configID primitive.ObjectID) (*models.SpinStats, error)
}

// CouponRepository defines the interface for issued-coupon persistence
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Coupon, error)
	FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error)
	// DeleteByIdempotencyKey removes the coupon issued under the given key.
	// Used to void a code whose spin never reached the ledger.
	DeleteByIdempotencyKey(ctx context.Context, key string) error
}

// AdminUserRepository defines the interface for back-office account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
}

// Clock abstracts time for eligibility decisions so cooldown windows are
// testable without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
