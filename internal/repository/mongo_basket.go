package repository

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type basketItemDocument struct {
	ID     string  `bson:"_id"`
	Title  string  `bson:"title"`
	Amount int     `bson:"amount"`
	Price  float64 `bson:"price"`
	FoodID string  `bson:"foodId"`
}

type basketDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    string               `bson:"userID"`
	Items     []basketItemDocument `bson:"items"`
	Version   int64                `bson:"version"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func toItemDocuments(items []models.BasketItem) []basketItemDocument {
	docs := make([]basketItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, basketItemDocument(item))
	}
	return docs
}

func toItemModels(docs []basketItemDocument) []models.BasketItem {
	items := make([]models.BasketItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.BasketItem(doc))
	}
	return items
}

func (d basketDocument) toModel() *models.Basket {
	return &models.Basket{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Items:     toItemModels(d.Items),
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoBasketRepository implements BasketRepository on the baskets
// collection. Items are embedded, so every write replaces the item array
// of a single document, guarded by the version field.
type MongoBasketRepository struct {
	coll *mongo.Collection
}

func NewMongoBasketRepository(db *mongo.Database) *MongoBasketRepository {
	return &MongoBasketRepository{coll: db.Collection(basketsCollection)}
}

func (r *MongoBasketRepository) GetByUserID(ctx context.Context, userID string) (*models.Basket, error) {
	var doc basketDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "userID", Value: userID}}).Decode(&doc); err != nil {
		return nil, classifyMongoError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoBasketRepository) Create(ctx context.Context, basket *models.Basket) error {
	now := time.Now().UTC()
	doc := basketDocument{
		ID:        primitive.NewObjectID(),
		UserID:    basket.UserID,
		Items:     toItemDocuments(basket.Items),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classifyMongoError(err)
	}
	*basket = *doc.toModel()
	return nil
}

func (r *MongoBasketRepository) Update(ctx context.Context, basket *models.Basket) error {
	now := time.Now().UTC()
	filter := bson.D{
		{Key: "userID", Value: basket.UserID},
		{Key: "version", Value: basket.Version},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "items", Value: toItemDocuments(basket.Items)},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return classifyMongoError(err)
	}

	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "userID", Value: basket.UserID}})
		if err != nil {
			return classifyMongoError(err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	basket.Version++
	basket.UpdatedAt = now
	return nil
}

func (r *MongoBasketRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return classifyMongoError(err)
}
