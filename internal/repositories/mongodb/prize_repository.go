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

// PrizeRepository implements repositories.PrizeRepository
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("wheel_prizes"),
	}
}

// Create creates a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	prize.CreatedAt = time.Now()
	prize.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, prize)
	if err != nil {
		return err
	}
	prize.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// FindByConfigID returns all segments for a configuration sorted by displayOrder
func (r *PrizeRepository) FindByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{"configId": configID})
}

// FindActiveByConfigID returns active segments sorted by displayOrder
func (r *PrizeRepository) FindActiveByConfigID(ctx context.Context, configID primitive.ObjectID) ([]*models.Prize, error) {
	return r.find(ctx, bson.M{"configId": configID, "isActive": true})
}

func (r *PrizeRepository) find(ctx context.Context, filter bson.M) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.M{"displayOrder": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.Prize{}
	}
	return prizes, nil
}

// Update updates a prize. Stock counters are managed through DecrementStock and
// RestoreStock only; Update deliberately leaves stockRemaining untouched so an
// admin edit racing a spin cannot undo a decrement.
func (r *PrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":             prize.Name,
		"description":      prize.Description,
		"prizeType":        prize.PrizeType,
		"coupon":           prize.Coupon,
		"productId":        prize.ProductID,
		"probabilityValue": prize.ProbabilityValue,
		"stockTotal":       prize.StockTotal,
		"isUnlimitedStock": prize.IsUnlimitedStock,
		"displayOrder":     prize.DisplayOrder,
		"isActive":         prize.IsActive,
		"colorHex":         prize.ColorHex,
		"iconEmoji":        prize.IconEmoji,
		"imageUrl":         prize.ImageURL,
		"updatedAt":        prize.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": prize.ID}, update)
	return err
}

// Delete deletes a prize
func (r *PrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DecrementStock atomically takes one unit of finite stock. The filter requires
// stockRemaining > 0, so two concurrent winners of the last unit cannot both
// succeed: the loser matches no document and gets ErrStockExhausted.
func (r *PrizeRepository) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":            id,
		"stockRemaining": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"stockRemaining": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return repositories.ErrStockExhausted
	}
	return nil
}

// RestoreStock gives one unit back after a failed ledger insert. Capped at
// stockTotal so a double restore cannot inflate inventory.
func (r *PrizeRepository) RestoreStock(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":   id,
		"$expr": bson.M{"$lt": bson.A{"$stockRemaining", "$stockTotal"}},
	}
	update := bson.M{
		"$inc": bson.M{"stockRemaining": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
