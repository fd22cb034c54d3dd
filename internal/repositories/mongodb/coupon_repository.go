package mongodb

import (
	"context"
	"time"

	"github.com/ezmeo/wheel-backend/internal/models"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CouponRepository implements repositories.CouponRepository
type CouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(db *mongo.Database) repositories.CouponRepository {
	return &CouponRepository{
		collection: db.Collection("wheel_coupons"),
	}
}

// Create inserts an issued coupon. The unique indexes on code and
// idempotencyKey (see EnsureIndexes) make duplicate issuance a storage-level
// conflict rather than an application-level check.
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return err
	}
	coupon.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByCode finds a coupon by its redeemable code
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByIdempotencyKey finds the coupon already issued for a spin, if any
func (r *CouponRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&coupon)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// DeleteByIdempotencyKey removes the coupon issued under the given key. Deleting
// a key that was never issued is a no-op.
func (r *CouponRepository) DeleteByIdempotencyKey(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"idempotencyKey": key})
	return err
}

// FindByConfigID returns a page of a configuration's issued coupons, newest first
func (r *CouponRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Coupon, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"configId": configID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []*models.Coupon{}
	}
	return coupons, nil
}
