package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the wheel subsystem depends on. The unique
// coupon indexes are load-bearing: they turn duplicate issuance into a storage
// conflict instead of trusting application-level checks. Safe to call on every
// startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("wheel_configs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("wheel_prizes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "configId", Value: 1}, {Key: "displayOrder", Value: 1}},
	})
	if err != nil {
		return err
	}

	// Ledger lookups are always per configuration plus one identity channel.
	// The unique slot index is the storage backstop for spin caps: concurrent
	// spins from the same identity compute the same spinNumber, and only one
	// insert of that slot can land.
	_, err = db.Collection("wheel_spins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "configId", Value: 1}, {Key: "identityKey", Value: 1}, {Key: "spinNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "configId", Value: 1}, {Key: "fingerprintHash", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "configId", Value: 1}, {Key: "userEmail", Value: 1}}},
		{Keys: bson.D{{Key: "configId", Value: 1}, {Key: "userPhone", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("wheel_coupons").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("admin_users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
