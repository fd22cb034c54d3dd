package handlers

import (
	"errors"
	"net/http"

	"github.com/ezmeo/wheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WheelHandler handles the public storefront wheel endpoints
type WheelHandler struct {
	wheelService services.WheelService
	spinService  services.SpinService
}

// NewWheelHandler creates a new WheelHandler
func NewWheelHandler(wheelService services.WheelService, spinService services.SpinService) *WheelHandler {
	return &WheelHandler{
		wheelService: wheelService,
		spinService:  spinService,
	}
}

// GetWheel handles GET /wheel. The config id is optional; the default campaign
// is served when it is omitted. The response is the public shape: stock
// counters and probability weights are never exposed here.
func (h *WheelHandler) GetWheel(c *gin.Context) {
	wheel, err := h.wheelService.GetPublicWheel(c.Request.Context(), c.Query("configId"))
	if err != nil {
		if errors.Is(err, services.ErrConfigNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Wheel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load wheel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  wheel.Config,
		"prizes":  wheel.Prizes,
	})
}

// ValidateRequest is the body of POST /wheel/validate
type ValidateRequest struct {
	ConfigID    string `json:"configId"`
	UserEmail   string `json:"userEmail"`
	UserPhone   string `json:"userPhone"`
	Fingerprint string `json:"fingerprint"`
}

// Validate handles POST /wheel/validate. The result is advisory, used by the
// storefront to enable or disable the spin button; Spin re-checks everything.
func (h *WheelHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.spinService.Validate(c.Request.Context(), req.ConfigID, req.UserEmail, req.UserPhone, req.Fingerprint)
	if err != nil {
		if errors.Is(err, services.ErrMissingIdentity) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                  true,
		"canSpin":                  result.CanSpin,
		"reason":                   result.Reason,
		"message":                  result.Message,
		"spinsRemaining":           result.SpinsRemaining,
		"remainingCooldownSeconds": result.RemainingCooldownSeconds,
	})
}

// SpinRequest is the body of POST /wheel/spin
type SpinRequest struct {
	ConfigID    string `json:"configId"`
	UserName    string `json:"userName" binding:"required"`
	UserEmail   string `json:"userEmail"`
	UserPhone   string `json:"userPhone"`
	Fingerprint string `json:"fingerprint"`
}

// Spin handles POST /wheel/spin
func (h *WheelHandler) Spin(c *gin.Context) {
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.spinService.Spin(c.Request.Context(), services.SpinRequest{
		ConfigRef:   req.ConfigID,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		UserPhone:   req.UserPhone,
		Fingerprint: req.Fingerprint,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		var notEligible *services.NotEligibleError
		switch {
		case errors.Is(err, services.ErrUserNameTooShort),
			errors.Is(err, services.ErrMissingContact),
			errors.Is(err, services.ErrMissingIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.As(err, &notEligible):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   notEligible.Result.Reason,
				"message": notEligible.Result.Message,
			})
		case errors.Is(err, services.ErrConfigNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Wheel not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"isWinner":       result.IsWinner,
		"prize":          result.Prize,
		"couponCode":     result.CouponCode,
		"remainingSpins": result.RemainingSpins,
		"message":        result.Message,
	})
}
