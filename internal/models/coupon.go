package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a redeemable code materialized for a winning spin. Redemption is
// handled by the discount subsystem; this service only issues and looks up codes.
type Coupon struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code           string             `bson:"code" json:"code"` // unique index
	ConfigID       primitive.ObjectID `bson:"configId" json:"configId"`
	PrizeID        primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	IdempotencyKey string             `bson:"idempotencyKey" json:"-"` // unique index; one coupon per spin
	DiscountKind   DiscountKind       `bson:"discountKind" json:"discountKind"`
	DiscountValue  float64            `bson:"discountValue" json:"discountValue"`
	ExpiresAt      *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
