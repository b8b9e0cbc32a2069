package repository

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	UserID     string               `bson:"user"`
	TotalPrice float64              `bson:"totalPrice"`
	Items      []basketItemDocument `bson:"items"`
	CreatedAt  time.Time            `bson:"createdAt"`
}

func (d orderDocument) toModel() models.Order {
	return models.Order{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		TotalPrice: d.TotalPrice,
		Items:      toItemModels(d.Items),
		CreatedAt:  d.CreatedAt,
	}
}

// MongoOrderRepository implements OrderRepository on the orders collection
type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := orderDocument{
		ID:         primitive.NewObjectID(),
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Items:      toItemDocuments(order.Items),
		CreatedAt:  createdAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classifyMongoError(err)
	}
	*order = doc.toModel()
	return nil
}

func (r *MongoOrderRepository) ListByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.D{{Key: "user", Value: userID}})
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoOrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return classifyMongoError(err)
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.D) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongoError(err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongoError(err)
	}

	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toModel())
	}
	return orders, nil
}
