package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the pseudo-identity a spin requester presents. Matching is the
// union of the three channels: a prior spin counts against this identity if its
// fingerprint, email, or phone matches. The policy lives here so eligibility and
// ledger code stay agnostic to how identities are resolved.
type Identity struct {
	Email       string
	Phone       string
	Fingerprint string
}

// NewIdentity normalizes the raw identity fields (trimmed, email lowercased)
func NewIdentity(email, phone, fingerprint string) Identity {
	return Identity{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Phone:       strings.TrimSpace(phone),
		Fingerprint: strings.TrimSpace(fingerprint),
	}
}

// IsEmpty reports whether no identity channel was supplied at all
func (id Identity) IsEmpty() bool {
	return id.Email == "" && id.Phone == "" && id.Fingerprint == ""
}

// HasContact reports whether at least one of email/phone is present
func (id Identity) HasContact() bool {
	return id.Email != "" || id.Phone != ""
}

// Key returns the canonical channel recorded on ledger rows: fingerprint when
// present, otherwise email, otherwise phone. Concurrent spins presenting the
// same channels map to the same key, which the ledger's unique slot index
// turns into a storage-level conflict.
func (id Identity) Key() string {
	if id.Fingerprint != "" {
		return id.Fingerprint
	}
	if id.Email != "" {
		return id.Email
	}
	return id.Phone
}

// Spin is one immutable ledger record of a spin attempt. Records are created
// exactly once per completed spin and never updated or deleted afterwards; both
// abuse detection and statistics depend on the ledger being append-only.
type Spin struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	ConfigID        primitive.ObjectID  `bson:"configId" json:"configId"`
	PrizeID         *primitive.ObjectID `bson:"prizeId,omitempty" json:"prizeId,omitempty"`
	UserName        string              `bson:"userName" json:"userName"`
	UserEmail       string              `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserPhone       string              `bson:"userPhone,omitempty" json:"userPhone,omitempty"`
	FingerprintHash string              `bson:"fingerprintHash" json:"fingerprintHash"`
	IdentityKey     string              `bson:"identityKey" json:"-"` // canonical channel, one ledger slot per (config, key, spinNumber)
	IPAddress       string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent       string              `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	IsWinner        bool                `bson:"isWinner" json:"isWinner"`
	PrizeName       string              `bson:"prizeName,omitempty" json:"prizeName,omitempty"` // snapshot at spin time
	CouponCode      string              `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	SpinNumber      int64               `bson:"spinNumber" json:"spinNumber"` // 1-based per identity
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}

// Identity returns the pseudo-identity recorded on the spin
func (s *Spin) Identity() Identity {
	return NewIdentity(s.UserEmail, s.UserPhone, s.FingerprintHash)
}

// SpinStats is an aggregate view over a configuration's ledger
type SpinStats struct {
	TotalSpins   int64            `json:"totalSpins"`
	TotalWinners int64            `json:"totalWinners"`
	UniqueUsers  int64            `json:"uniqueUsers"`
	ByPrize      []PrizeSpinCount `json:"byPrize"`
}

// PrizeSpinCount is the per-prize slice of SpinStats
type PrizeSpinCount struct {
	PrizeID   primitive.ObjectID `bson:"_id" json:"prizeId"`
	PrizeName string             `bson:"prizeName" json:"prizeName"`
	Count     int64              `bson:"count" json:"count"`
}
