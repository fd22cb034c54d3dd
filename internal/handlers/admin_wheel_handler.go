package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminWheelHandler handles the back-office wheel endpoints
type AdminWheelHandler struct {
	wheelService  services.WheelService
	spinService   services.SpinService
	couponService services.CouponService
}

// NewAdminWheelHandler creates a new AdminWheelHandler
func NewAdminWheelHandler(wheelService services.WheelService, spinService services.SpinService, couponService services.CouponService) *AdminWheelHandler {
	return &AdminWheelHandler{
		wheelService:  wheelService,
		spinService:   spinService,
		couponService: couponService,
	}
}

// --- Configurations ---

// ListConfigs handles GET /admin/wheel/configs
func (h *AdminWheelHandler) ListConfigs(c *gin.Context) {
	configs, err := h.wheelService.ListConfigs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list configurations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": configs})
}

// GetWheel handles GET /admin/wheel/configs/:ref — full view including stock
func (h *AdminWheelHandler) GetWheel(c *gin.Context) {
	wheel, err := h.wheelService.GetWheel(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}
	c.JSON(http.StatusOK, wheel)
}

// ConfigRequest is the body for creating/updating a configuration
type ConfigRequest struct {
	Key                  string                 `json:"key"`
	Name                 string                 `json:"name" binding:"required"`
	IsActive             bool                   `json:"isActive"`
	StartDate            *time.Time             `json:"startDate"`
	EndDate              *time.Time             `json:"endDate"`
	MaxTotalSpins        int64                  `json:"maxTotalSpins"`
	MaxSpinsPerUser      int64                  `json:"maxSpinsPerUser"`
	CooldownHours        int                    `json:"cooldownHours"`
	ProbabilityMode      models.ProbabilityMode `json:"probabilityMode"`
	RequireMembership    bool                   `json:"requireMembership"`
	RequireEmailVerified bool                   `json:"requireEmailVerified"`
	SegmentCount         int                    `json:"segmentCount"`
	Colors               []string               `json:"colors"`
}

func (r *ConfigRequest) toModel() *models.WheelConfig {
	return &models.WheelConfig{
		Key:                  r.Key,
		Name:                 r.Name,
		IsActive:             r.IsActive,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		MaxTotalSpins:        r.MaxTotalSpins,
		MaxSpinsPerUser:      r.MaxSpinsPerUser,
		CooldownHours:        r.CooldownHours,
		ProbabilityMode:      r.ProbabilityMode,
		RequireMembership:    r.RequireMembership,
		RequireEmailVerified: r.RequireEmailVerified,
		SegmentCount:         r.SegmentCount,
		Colors:               r.Colors,
	}
}

// CreateConfig handles POST /admin/wheel/configs
func (h *AdminWheelHandler) CreateConfig(c *gin.Context) {
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config := req.toModel()
	if err := h.wheelService.CreateConfig(c.Request.Context(), config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, config)
}

// UpdateConfig handles PUT /admin/wheel/configs/:ref
func (h *AdminWheelHandler) UpdateConfig(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("ref"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config := req.toModel()
	config.ID = id
	if err := h.wheelService.UpdateConfig(c.Request.Context(), config); err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, config)
}

// DeleteConfig handles DELETE /admin/wheel/configs/:ref
func (h *AdminWheelHandler) DeleteConfig(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("ref"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := h.wheelService.DeleteConfig(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete configuration"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Prizes ---

// PrizeRequest is the body for creating/updating a prize
type PrizeRequest struct {
	ConfigID         string             `json:"configId" binding:"required"`
	Name             string             `json:"name" binding:"required"`
	Description      string             `json:"description"`
	PrizeType        models.PrizeType   `json:"prizeType" binding:"required"`
	Coupon           *models.CouponSpec `json:"coupon"`
	ProductID        string             `json:"productId"`
	ProbabilityValue float64            `json:"probabilityValue"`
	StockTotal       int64              `json:"stockTotal"`
	IsUnlimitedStock bool               `json:"isUnlimitedStock"`
	DisplayOrder     int                `json:"displayOrder"`
	IsActive         bool               `json:"isActive"`
	ColorHex         string             `json:"colorHex"`
	IconEmoji        string             `json:"iconEmoji"`
	ImageURL         string             `json:"imageUrl"`
}

func (r *PrizeRequest) toModel() (*models.Prize, error) {
	configID, err := primitive.ObjectIDFromHex(r.ConfigID)
	if err != nil {
		return nil, errors.New("invalid configId format")
	}
	return &models.Prize{
		ConfigID:         configID,
		Name:             r.Name,
		Description:      r.Description,
		PrizeType:        r.PrizeType,
		Coupon:           r.Coupon,
		ProductID:        r.ProductID,
		ProbabilityValue: r.ProbabilityValue,
		StockTotal:       r.StockTotal,
		IsUnlimitedStock: r.IsUnlimitedStock,
		DisplayOrder:     r.DisplayOrder,
		IsActive:         r.IsActive,
		ColorHex:         r.ColorHex,
		IconEmoji:        r.IconEmoji,
		ImageURL:         r.ImageURL,
	}, nil
}

// CreatePrize handles POST /admin/wheel/prizes
func (h *AdminWheelHandler) CreatePrize(c *gin.Context) {
	var req PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.wheelService.CreatePrize(c.Request.Context(), prize); err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /admin/wheel/prizes/:id
func (h *AdminWheelHandler) UpdatePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var req PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize.ID = id
	if err := h.wheelService.UpdatePrize(c.Request.Context(), prize); err != nil {
		if errors.Is(err, services.ErrPrizeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prize not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /admin/wheel/prizes/:id
func (h *AdminWheelHandler) DeletePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := h.wheelService.DeletePrize(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prize"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Ledger ---

// GetSpinHistory handles GET /admin/wheel/configs/:ref/spins
func (h *AdminWheelHandler) GetSpinHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	spins, err := h.spinService.History(c.Request.Context(), c.Param("ref"), page, limit)
	if err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load spin history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"spins": spins, "page": page, "limit": limit})
}

// GetSpinStats handles GET /admin/wheel/configs/:ref/stats
func (h *AdminWheelHandler) GetSpinStats(c *gin.Context) {
	stats, err := h.spinService.Stats(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load spin stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListCoupons handles GET /admin/wheel/configs/:ref/coupons
func (h *AdminWheelHandler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	wheel, err := h.wheelService.GetWheel(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}

	coupons, err := h.couponService.ListByConfig(c.Request.Context(), wheel.Config.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons, "page": page, "limit": limit})
}

// GetCoupon handles GET /admin/wheel/coupons/:code
func (h *AdminWheelHandler) GetCoupon(c *gin.Context) {
	coupon, err := h.couponService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up coupon"})
		return
	}
	c.JSON(http.StatusOK, coupon)
}
