package handlers

import (
	"context"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/services"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockWheelService is a mock implementation of services.WheelService
type MockWheelService struct {
	mock.Mock
}

func (m *MockWheelService) GetPublicWheel(ctx context.Context, configRef string) (*services.PublicWheel, error) {
	args := m.Called(ctx, configRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PublicWheel), args.Error(1)
}

func (m *MockWheelService) GetWheel(ctx context.Context, configRef string) (*services.AdminWheel, error) {
	args := m.Called(ctx, configRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminWheel), args.Error(1)
}

func (m *MockWheelService) CreateConfig(ctx context.Context, cfg *models.WheelConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockWheelService) UpdateConfig(ctx context.Context, cfg *models.WheelConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockWheelService) DeleteConfig(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWheelService) ListConfigs(ctx context.Context) ([]*models.WheelConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WheelConfig), args.Error(1)
}

func (m *MockWheelService) CreatePrize(ctx context.Context, prize *models.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *MockWheelService) UpdatePrize(ctx context.Context, prize *models.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *MockWheelService) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSpinService is a mock implementation of services.SpinService
type MockSpinService struct {
	mock.Mock
}

func (m *MockSpinService) Spin(ctx context.Context, req services.SpinRequest) (*models.SpinResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpinResult), args.Error(1)
}

func (m *MockSpinService) Validate(ctx context.Context, configRef, email, phone, fingerprint string) (*models.EligibilityResult, error) {
	args := m.Called(ctx, configRef, email, phone, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EligibilityResult), args.Error(1)
}

func (m *MockSpinService) History(ctx context.Context, configRef string, page, limit int) ([]*models.Spin, error) {
	args := m.Called(ctx, configRef, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Spin), args.Error(1)
}

func (m *MockSpinService) Stats(ctx context.Context, configRef string) (*models.SpinStats, error) {
	args := m.Called(ctx, configRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpinStats), args.Error(1)
}

// MockCouponService is a mock implementation of services.CouponService
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
