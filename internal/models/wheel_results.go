package models

// EligibilityReason is a machine-checkable reason code for a refused spin
type EligibilityReason string

const (
	ReasonCampaignInactive   EligibilityReason = "campaign_inactive"
	ReasonCampaignNotRunning EligibilityReason = "campaign_not_running"
	ReasonGlobalLimitReached EligibilityReason = "global_limit_reached"
	ReasonPersonalLimit      EligibilityReason = "personal_limit_reached"
	ReasonCooldownActive     EligibilityReason = "cooldown_active"
)

// UnlimitedSpins is the SpinsRemaining sentinel when no per-user cap is set
const UnlimitedSpins int64 = -1

// EligibilityResult is the outcome of an eligibility check. Ineligibility is a
// business outcome, not an error: storage failures are returned separately.
type EligibilityResult struct {
	CanSpin                  bool              `json:"canSpin"`
	Reason                   EligibilityReason `json:"reason,omitempty"`
	Message                  string            `json:"message,omitempty"`
	SpinsRemaining           int64             `json:"spinsRemaining"`
	RemainingCooldownSeconds int64             `json:"remainingCooldownSeconds,omitempty"`
}

// SpinResult is the outcome of an executed spin
type SpinResult struct {
	IsWinner       bool         `json:"isWinner"`
	Prize          *PublicPrize `json:"prize,omitempty"`
	CouponCode     string       `json:"couponCode,omitempty"`
	RemainingSpins int64        `json:"remainingSpins"`
	Message        string       `json:"message"`
}
