package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/construmat/backend/internal/order/domain"
)

const (
	ordersCollection   = "orders"
	productsCollection = "products"
)

type MongoOrderRepository struct {
	client   *mongo.Client
	orders   *mongo.Collection
	products *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		client:   db.Client(),
		orders:   db.Collection(ordersCollection),
		products: db.Collection(productsCollection),
	}
}

// Create inserts the order and applies the per-item stock decrement and
// sales increment in a single transaction. Either the order and every
// counter adjustment become visible together, or nothing does.
func (r *MongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		for _, item := range order.Items {
			_, err := r.products.UpdateOne(sc,
				bson.M{"_id": item.ProductID},
				bson.M{
					"$inc": bson.M{"stock": -item.Quantity, "sales": item.Quantity},
					"$set": bson.M{"updated_at": time.Now()},
				},
			)
			if err != nil {
				return nil, fmt.Errorf("failed to adjust product %s: %w", item.ProductID.Hex(), err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("order creation failed: %w", err)
	}
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindAll lists orders newest first, with optional filters.
func (r *MongoOrderRepository) FindAll(ctx context.Context, filter domain.Filter) ([]domain.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		created := bson.M{}
		if !filter.From.IsZero() {
			created["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			created["$lte"] = filter.To
		}
		query["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.orders.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.FindAll(ctx, domain.Filter{UserID: userID})
}

func (r *MongoOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	_, err := r.orders.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// CancelWithRestock persists the cancelled order and restores stock for
// every item in one transaction. The sales counter is left as-is.
func (r *MongoOrderRepository) CancelWithRestock(ctx context.Context, order *domain.Order) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.orders.ReplaceOne(sc, bson.M{"_id": order.ID}, order); err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		for _, item := range order.Items {
			_, err := r.products.UpdateOne(sc,
				bson.M{"_id": item.ProductID},
				bson.M{
					"$inc": bson.M{"stock": item.Quantity},
					"$set": bson.M{"updated_at": time.Now()},
				},
			)
			if err != nil {
				return nil, fmt.Errorf("failed to restock product %s: %w", item.ProductID.Hex(), err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("order cancellation failed: %w", err)
	}
	return nil
}
