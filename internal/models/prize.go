package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeType identifies what a winning segment awards
type PrizeType string

const (
	PrizeTypeCoupon   PrizeType = "coupon"   // issues a redeemable coupon code
	PrizeTypeProduct  PrizeType = "product"  // references a catalog product
	PrizeTypeDiscount PrizeType = "discount" // flat discount, no code template
	PrizeTypeNone     PrizeType = "none"     // deliberate non-winning segment
)

// DiscountKind distinguishes percentage coupons from fixed-amount coupons
type DiscountKind string

const (
	DiscountKindPercent DiscountKind = "percent"
	DiscountKindFixed   DiscountKind = "fixed"
)

// CouponSpec describes the coupon a winning segment issues. Only meaningful when
// the prize type is "coupon" or "discount".
type CouponSpec struct {
	CodePrefix    string       `bson:"codePrefix" json:"codePrefix"` // e.g. "WHEEL"
	DiscountKind  DiscountKind `bson:"discountKind" json:"discountKind"`
	DiscountValue float64      `bson:"discountValue" json:"discountValue"`
	ValidDays     int          `bson:"validDays" json:"validDays"` // 0 = no expiry
}

// Prize represents one wheel segment belonging to a configuration
type Prize struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ConfigID         primitive.ObjectID `bson:"configId" json:"configId"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	PrizeType        PrizeType          `bson:"prizeType" json:"prizeType"`
	Coupon           *CouponSpec        `bson:"coupon,omitempty" json:"coupon,omitempty"`
	ProductID        string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ProbabilityValue float64            `bson:"probabilityValue" json:"probabilityValue"`
	StockTotal       int64              `bson:"stockTotal" json:"stockTotal"`
	StockRemaining   int64              `bson:"stockRemaining" json:"stockRemaining"`
	IsUnlimitedStock bool               `bson:"isUnlimitedStock" json:"isUnlimitedStock"`
	DisplayOrder     int                `bson:"displayOrder" json:"displayOrder"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	ColorHex         string             `bson:"colorHex,omitempty" json:"colorHex,omitempty"`
	IconEmoji        string             `bson:"iconEmoji,omitempty" json:"iconEmoji,omitempty"`
	ImageURL         string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InStock reports whether the prize can still be awarded
func (p *Prize) InStock() bool {
	return p.IsUnlimitedStock || p.StockRemaining > 0
}

// Awardable reports whether the prize may appear in the weighted draw pool
func (p *Prize) Awardable() bool {
	if !p.IsActive {
		return false
	}
	// "none" segments carry no inventory and are always drawable
	if p.PrizeType == PrizeTypeNone {
		return true
	}
	return p.InStock()
}

// PublicPrize is the client-facing view of a segment. Weights and stock counters
// are stripped so segments cannot be stock-sniped.
type PublicPrize struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	PrizeType    PrizeType          `json:"prizeType"`
	ColorHex     string             `json:"colorHex,omitempty"`
	IconEmoji    string             `json:"iconEmoji,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty"`
	DisplayOrder int                `json:"displayOrder"`
}

// Public returns the stripped client-facing view of the prize
func (p *Prize) Public() PublicPrize {
	return PublicPrize{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PrizeType:    p.PrizeType,
		ColorHex:     p.ColorHex,
		IconEmoji:    p.IconEmoji,
		ImageURL:     p.ImageURL,
		DisplayOrder: p.DisplayOrder,
	}
}
