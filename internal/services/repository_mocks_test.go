package services

import (
	"context"
	"time"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockWheelConfigRepository is a mock implementation of repositories.WheelConfigRepository
type MockWheelConfigRepository struct {
	mock.Mock
}

func (m *MockWheelConfigRepository) Create(ctx context.Context, config *models.WheelConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockWheelConfigRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WheelConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WheelConfig), args.Error(1)
}

func (m *MockWheelConfigRepository) FindByKey(ctx context.Context, key string) (*models.WheelConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WheelConfig), args.Error(1)
}

func (m *MockWheelConfigRepository) FindAll(ctx context.Context) ([]*models.WheelConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WheelConfig), args.Error(1)
}

func (m *MockWheelConfigRepository) Update(ctx context.Context, config *models.WheelConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockWheelConfigRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPrizeRepository is a mock implementation of repositories.PrizeRepository
type MockPrizeRepository struct {
	mock.Mock
}

func (m *MockPrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *MockPrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prize), args.Error(1)
}

func (m *MockPrizeRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error) {
	args := m.Called(ctx, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prize), args.Error(1)
}

func (m *MockPrizeRepository) FindActiveByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error) {
	args := m.Called(ctx, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prize), args.Error(1)
}

func (m *MockPrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *MockPrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrizeRepository) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrizeRepository) RestoreStock(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSpinRepository is a mock implementation of repositories.SpinRepository
type MockSpinRepository struct {
	mock.Mock
}

func (m *MockSpinRepository) Create(ctx context.Context, spin *models.Spin) error {
	args := m.Called(ctx, spin)
	return args.Error(0)
}

func (m *MockSpinRepository) CountByConfig(ctx context.Context, configID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, configID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpinRepository) CountByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (int64, error) {
	args := m.Called(ctx, configID, identity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpinRepository) FindLastByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (*models.Spin, error) {
	args := m.Called(ctx, configID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spin), args.Error(1)
}

func (m *MockSpinRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Spin, error) {
	args := m.Called(ctx, configID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Spin), args.Error(1)
}

func (m *MockSpinRepository) Stats(ctx context.Context, configID primitive.ObjectID) (*models.SpinStats, error) {
	args := m.Called(ctx, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpinStats), args.Error(1)
}

// MockCouponRepository is a mock implementation of repositories.CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Coupon, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) DeleteByIdempotencyKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error) {
	args := m.Called(ctx, configID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Coupon), args.Error(1)
}

// MockCouponService is a mock implementation of CouponService
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) IssueForSpin(ctx context.Context, configID primitive.ObjectID, prize *models.Prize, idempotencyKey string) (*models.Coupon, error) {
	args := m.Called(ctx, configID, prize, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponService) VoidByKey(ctx context.Context, idempotencyKey string) error {
	args := m.Called(ctx, idempotencyKey)
	return args.Error(0)
}

func (m *MockCouponService) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponService) ListByConfig(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error) {
	args := m.Called(ctx, configID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Coupon), args.Error(1)
}

// MockAdminUserRepository is a mock implementation of repositories.AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) Update(ctx context.Context, user *models.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// fixedClock is a Clock pinned to one instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
