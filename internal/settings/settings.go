package settings

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Settings is the single store configuration document. There is exactly
// one per deployment, keyed by a fixed document name.
type Settings struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName             string             `bson:"store_name" json:"store_name"`
	ContactEmail          string             `bson:"contact_email" json:"contact_email"`
	ContactPhone          string             `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Currency              string             `bson:"currency" json:"currency"`
	TaxRate               float64            `bson:"tax_rate" json:"tax_rate"`
	FreeShippingThreshold float64            `bson:"free_shipping_threshold" json:"free_shipping_threshold"`
	FlatShippingFee       float64            `bson:"flat_shipping_fee" json:"flat_shipping_fee"`
	MaintenanceMode       bool               `bson:"maintenance_mode" json:"maintenance_mode"`
	UpdatedAt             time.Time          `bson:"updated_at" json:"updated_at"`
}

// Defaults returns the settings used before an admin has saved any.
func Defaults() *Settings {
	return &Settings{
		StoreName:             "ConstruMat",
		Currency:              "RON",
		TaxRate:               0.19,
		FreeShippingThreshold: 200,
		FlatShippingFee:       20,
	}
}

// Repository persists the settings document.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// MongoRepository implements Repository backed by MongoDB.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("settings")}
}

// Get returns the stored settings, or the defaults when none are saved.
func (r *MongoRepository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save upserts the single settings document.
func (r *MongoRepository) Save(ctx context.Context, s *Settings) error {
	s.UpdatedAt = time.Now()

	filter := bson.M{}
	if !s.ID.IsZero() {
		filter = bson.M{"_id": s.ID}
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, s, opts)
	return err
}
