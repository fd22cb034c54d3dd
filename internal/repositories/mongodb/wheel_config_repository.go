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

// WheelConfigRepository implements repositories.WheelConfigRepository
type WheelConfigRepository struct {
	collection *mongo.Collection
}

// NewWheelConfigRepository creates a new WheelConfigRepository
func NewWheelConfigRepository(db *mongo.Database) repositories.WheelConfigRepository {
	return &WheelConfigRepository{
		collection: db.Collection("wheel_configs"),
	}
}

// Create creates a new wheel configuration
func (r *WheelConfigRepository) Create(ctx context.Context, config *models.WheelConfig) error {
	config.CreatedAt = time.Now()
	config.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, config)
	if err != nil {
		return err
	}
	config.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a wheel configuration by ID
func (r *WheelConfigRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WheelConfig, error) {
	var config models.WheelConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// FindByKey finds a wheel configuration by its stable lookup key
func (r *WheelConfigRepository) FindByKey(ctx context.Context, key string) (*models.WheelConfig, error) {
	var config models.WheelConfig
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// FindAll returns all wheel configurations, newest first
func (r *WheelConfigRepository) FindAll(ctx context.Context) ([]*models.WheelConfig, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*models.WheelConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []*models.WheelConfig{}
	}
	return configs, nil
}

// Update updates a wheel configuration
func (r *WheelConfigRepository) Update(ctx context.Context, config *models.WheelConfig) error {
	config.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": config.ID}, config)
	return err
}

// Delete deletes a wheel configuration
func (r *WheelConfigRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
