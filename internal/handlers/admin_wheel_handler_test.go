package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type adminFixture struct {
	wheelService  *MockWheelService
	spinService   *MockSpinService
	couponService *MockCouponService
	router        *gin.Engine
}

func newAdminFixture() *adminFixture {
	gin.SetMode(gin.TestMode)
	f := &adminFixture{
		wheelService:  new(MockWheelService),
		spinService:   new(MockSpinService),
		couponService: new(MockCouponService),
	}
	h := NewAdminWheelHandler(f.wheelService, f.spinService, f.couponService)
	r := gin.New()
	r.GET("/admin/wheel/configs", h.ListConfigs)
	r.POST("/admin/wheel/configs", h.CreateConfig)
	r.GET("/admin/wheel/configs/:ref", h.GetWheel)
	r.PUT("/admin/wheel/configs/:ref", h.UpdateConfig)
	r.DELETE("/admin/wheel/configs/:ref", h.DeleteConfig)
	r.GET("/admin/wheel/configs/:ref/stats", h.GetSpinStats)
	r.GET("/admin/wheel/configs/:ref/coupons", h.ListCoupons)
	r.POST("/admin/wheel/prizes", h.CreatePrize)
	r.PUT("/admin/wheel/prizes/:id", h.UpdatePrize)
	r.GET("/admin/wheel/coupons/:code", h.GetCoupon)
	f.router = r
	return f
}

func TestAdminGetWheelIncludesStock(t *testing.T) {
	f := newAdminFixture()
	cfg := &models.WheelConfig{ID: primitive.NewObjectID(), Name: "Summer Wheel", MaxSpinsPerUser: 3}
	prize := &models.Prize{
		ID:               primitive.NewObjectID(),
		Name:             "10% off",
		PrizeType:        models.PrizeTypeCoupon,
		ProbabilityValue: 42,
		StockTotal:       100,
		StockRemaining:   7,
	}
	f.wheelService.On("GetWheel", mock.Anything, "summer").
		Return(&services.AdminWheel{Config: cfg, Prizes: []*models.Prize{prize}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/wheel/configs/summer", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The back office sees what the storefront must not.
	assert.Contains(t, w.Body.String(), "stockRemaining")
	assert.Contains(t, w.Body.String(), "probabilityValue")
	assert.Contains(t, w.Body.String(), "maxSpinsPerUser")
}

func TestAdminCreateConfig(t *testing.T) {
	f := newAdminFixture()
	f.wheelService.On("CreateConfig", mock.Anything, mock.MatchedBy(func(cfg *models.WheelConfig) bool {
		return cfg.Name == "Black Friday" && cfg.MaxSpinsPerUser == 1
	})).Return(nil)

	w := postJSON(f.router, "/admin/wheel/configs", gin.H{
		"name":            "Black Friday",
		"isActive":        true,
		"maxSpinsPerUser": 1,
		"probabilityMode": "weight",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminCreateConfigRequiresName(t *testing.T) {
	f := newAdminFixture()

	w := postJSON(f.router, "/admin/wheel/configs", gin.H{"isActive": true})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.wheelService.AssertNotCalled(t, "CreateConfig")
}

func TestAdminUpdateConfigRejectsBadID(t *testing.T) {
	f := newAdminFixture()

	payload, _ := json.Marshal(gin.H{"name": "Renamed"})
	req := httptest.NewRequest(http.MethodPut, "/admin/wheel/configs/not-a-hex-id", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")
}

func TestAdminCreatePrizeRejectsBadConfigID(t *testing.T) {
	f := newAdminFixture()

	w := postJSON(f.router, "/admin/wheel/prizes", gin.H{
		"configId":  "not-a-hex-id",
		"name":      "10% off",
		"prizeType": "coupon",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid configId format")
	f.wheelService.AssertNotCalled(t, "CreatePrize")
}

func TestAdminCreatePrizeUnknownConfig(t *testing.T) {
	f := newAdminFixture()
	f.wheelService.On("CreatePrize", mock.Anything, mock.Anything).Return(services.ErrConfigNotFound)

	w := postJSON(f.router, "/admin/wheel/prizes", gin.H{
		"configId":  primitive.NewObjectID().Hex(),
		"name":      "10% off",
		"prizeType": "coupon",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGetSpinStats(t *testing.T) {
	f := newAdminFixture()
	f.spinService.On("Stats", mock.Anything, "summer").Return(&models.SpinStats{
		TotalSpins:   120,
		TotalWinners: 30,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/wheel/configs/summer/stats", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stats models.SpinStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(120), stats.TotalSpins)
	assert.Equal(t, int64(30), stats.TotalWinners)
}

func TestAdminListCoupons(t *testing.T) {
	f := newAdminFixture()
	cfg := &models.WheelConfig{ID: primitive.NewObjectID(), Name: "Summer Wheel"}
	f.wheelService.On("GetWheel", mock.Anything, "summer").
		Return(&services.AdminWheel{Config: cfg, Prizes: []*models.Prize{}}, nil)
	f.couponService.On("ListByConfig", mock.Anything, cfg.ID, 1, 50).
		Return([]*models.Coupon{{Code: "WHEEL-7KQ2M9AF", ConfigID: cfg.ID}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/wheel/configs/summer/coupons", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "WHEEL-7KQ2M9AF")
}

func TestAdminListCouponsUnknownConfig(t *testing.T) {
	f := newAdminFixture()
	f.wheelService.On("GetWheel", mock.Anything, "ghost").Return(nil, services.ErrConfigNotFound)

	req := httptest.NewRequest(http.MethodGet, "/admin/wheel/configs/ghost/coupons", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.couponService.AssertNotCalled(t, "ListByConfig")
}

func TestAdminGetCouponNotFound(t *testing.T) {
	f := newAdminFixture()
	f.couponService.On("GetByCode", mock.Anything, "WHEEL-MISSING1").Return(nil, services.ErrCouponNotFound)

	req := httptest.NewRequest(http.MethodGet, "/admin/wheel/coupons/WHEEL-MISSING1", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
