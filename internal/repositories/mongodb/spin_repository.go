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

// SpinRepository implements repositories.SpinRepository over the append-only
// spin ledger. There is deliberately no Update or Delete: ledger rows are
// immutable once written.
type SpinRepository struct {
	collection *mongo.Collection
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *mongo.Database) repositories.SpinRepository {
	return &SpinRepository{
		collection: db.Collection("wheel_spins"),
	}
}

// identityFilter builds the OR-match over fingerprint/email/phone. A spin
// belongs to an identity if any supplied channel matches; empty channels are
// skipped so they cannot match other users' empty fields.
func identityFilter(configID primitive.ObjectID, identity models.Identity) bson.M {
	var or []bson.M
	if identity.Fingerprint != "" {
		or = append(or, bson.M{"fingerprintHash": identity.Fingerprint})
	}
	if identity.Email != "" {
		or = append(or, bson.M{"userEmail": identity.Email})
	}
	if identity.Phone != "" {
		or = append(or, bson.M{"userPhone": identity.Phone})
	}
	return bson.M{"configId": configID, "$or": or}
}

// Create appends a spin record to the ledger
func (r *SpinRepository) Create(ctx context.Context, spin *models.Spin) error {
	spin.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, spin)
	if err != nil {
		return err
	}
	spin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// CountByConfig counts all spins recorded for a configuration
func (r *SpinRepository) CountByConfig(ctx context.Context, configID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"configId": configID})
}

// CountByIdentity counts an identity's prior spins for a configuration
func (r *SpinRepository) CountByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (int64, error) {
	if identity.IsEmpty() {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, identityFilter(configID, identity))
}

// FindLastByIdentity returns the identity's most recent spin
func (r *SpinRepository) FindLastByIdentity(ctx context.Context, configID primitive.ObjectID, identity models.Identity) (*models.Spin, error) {
	if identity.IsEmpty() {
		return nil, mongo.ErrNoDocuments
	}
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	var spin models.Spin
	err := r.collection.FindOne(ctx, identityFilter(configID, identity), opts).Decode(&spin)
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// FindByConfigID returns a page of a configuration's spins, newest first
func (r *SpinRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID, page, limit int) ([]*models.Spin, error) {
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

	var spins []*models.Spin
	if err := cursor.All(ctx, &spins); err != nil {
		return nil, err
	}
	if spins == nil {
		spins = []*models.Spin{}
	}
	return spins, nil
}

// Stats aggregates the configuration's ledger into totals and per-prize counts
func (r *SpinRepository) Stats(ctx context.Context, configID primitive.ObjectID) (*models.SpinStats, error) {
	stats := &models.SpinStats{ByPrize: []models.PrizeSpinCount{}}

	total, err := r.CountByConfig(ctx, configID)
	if err != nil {
		return nil, err
	}
	stats.TotalSpins = total

	winners, err := r.collection.CountDocuments(ctx, bson.M{"configId": configID, "isWinner": true})
	if err != nil {
		return nil, err
	}
	stats.TotalWinners = winners

	// Distinct fingerprints approximate unique users; identities that cleared
	// their fingerprint but reused a contact channel are still one ledger trail.
	fingerprints, err := r.collection.Distinct(ctx, "fingerprintHash", bson.M{"configId": configID})
	if err != nil {
		return nil, err
	}
	stats.UniqueUsers = int64(len(fingerprints))

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"configId": configID, "isWinner": true, "prizeId": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$prizeId",
			"prizeName": bson.M{"$first": "$prizeName"},
			"count":     bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &stats.ByPrize); err != nil {
		return nil, err
	}
	return stats, nil
}
