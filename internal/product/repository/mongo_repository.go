package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/construmat/backend/internal/product/domain"
)

const collectionName = "products"

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection(collectionName)}
}

func (r *MongoProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// List returns a page ordered by creation time descending, _id breaking
// ties, with an opaque cursor for the next page.
func (r *MongoProductRepository) List(ctx context.Context, filter domain.Filter, pageSize int, cursor string) (*domain.Page, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}

	if cursor != "" {
		createdAt, lastID, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		query["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": createdAt}},
			bson.M{"created_at": createdAt, "_id": bson.M{"$lt": lastID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(pageSize) + 1)

	cur, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	page := &domain.Page{}
	if len(products) > pageSize {
		products = products[:pageSize]
		last := products[len(products)-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
	}
	page.Products = products
	return page, nil
}

func (r *MongoProductRepository) FindByTag(ctx context.Context, tag string) ([]domain.Product, error) {
	cur, err := r.collection.Find(ctx, bson.M{"tags": tag})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// FindByCategory returns active products in a category, best sellers first.
func (r *MongoProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sales", Value: -1}})
	cur, err := r.collection.Find(ctx, bson.M{
		"category": category,
		"status":   domain.StatusActive,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// AdjustStock applies an atomic increment (positive or negative) to stock.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// encodeCursor packs the sort position of the last document of a page into
// an opaque forward-only token.
func encodeCursor(createdAt time.Time, id primitive.ObjectID) string {
	raw := fmt.Sprintf("%d:%s", createdAt.UnixNano(), id.Hex())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, primitive.ObjectID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("invalid cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("invalid cursor format")
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(parts[1])
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("invalid cursor id: %w", err)
	}
	return time.Unix(0, nanos), id, nil
}
