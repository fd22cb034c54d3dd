package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProbabilityMode determines how prize probability values are interpreted
type ProbabilityMode string

const (
	// ProbabilityModePercentage treats probability values as 0-100 percentages
	ProbabilityModePercentage ProbabilityMode = "percentage"
	// ProbabilityModeWeight treats probability values as arbitrary relative weights
	ProbabilityModeWeight ProbabilityMode = "weight"
)

// DefaultWheelConfigKey is the well-known lookup key used when a client does not
// supply a configuration id.
const DefaultWheelConfigKey = "default"

// WheelConfig represents one promotional lucky-wheel campaign
type WheelConfig struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key                  string             `bson:"key" json:"key"` // stable lookup key, e.g. "default"
	Name                 string             `bson:"name" json:"name"`
	IsActive             bool               `bson:"isActive" json:"isActive"`
	StartDate            *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate              *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	MaxTotalSpins        int64              `bson:"maxTotalSpins" json:"maxTotalSpins"` // 0 = unlimited
	MaxSpinsPerUser      int64              `bson:"maxSpinsPerUser" json:"maxSpinsPerUser"`
	CooldownHours        int                `bson:"cooldownHours" json:"cooldownHours"`
	ProbabilityMode      ProbabilityMode    `bson:"probabilityMode" json:"probabilityMode"`
	RequireMembership    bool               `bson:"requireMembership" json:"requireMembership"`
	RequireEmailVerified bool               `bson:"requireEmailVerified" json:"requireEmailVerified"`
	SegmentCount         int                `bson:"segmentCount" json:"segmentCount"`
	Colors               []string           `bson:"colors" json:"colors"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsRunningAt reports whether the campaign window covers the given instant.
// A missing boundary leaves that side of the window open.
func (c *WheelConfig) IsRunningAt(t time.Time) bool {
	if c.StartDate != nil && t.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.After(*c.EndDate) {
		return false
	}
	return true
}

// PublicWheelConfig is the client-facing view of a configuration. Limits and
// probability internals are stripped so the wheel cannot be reverse-engineered.
type PublicWheelConfig struct {
	ID                   primitive.ObjectID `json:"id"`
	Name                 string             `json:"name"`
	IsActive             bool               `json:"isActive"`
	SegmentCount         int                `json:"segments"`
	Colors               []string           `json:"colors"`
	RequireMembership    bool               `json:"requireMembership"`
	RequireEmailVerified bool               `json:"requireEmailVerified"`
	StartDate            *time.Time         `json:"startDate,omitempty"`
	EndDate              *time.Time         `json:"endDate,omitempty"`
}

// Public returns the stripped client-facing view of the configuration
func (c *WheelConfig) Public() PublicWheelConfig {
	return PublicWheelConfig{
		ID:                   c.ID,
		Name:                 c.Name,
		IsActive:             c.IsActive,
		SegmentCount:         c.SegmentCount,
		Colors:               c.Colors,
		RequireMembership:    c.RequireMembership,
		RequireEmailVerified: c.RequireEmailVerified,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
	}
}
