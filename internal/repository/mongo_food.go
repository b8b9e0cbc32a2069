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

type foodDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d foodDocument) toModel() models.Food {
	return models.Food{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoFoodRepository implements FoodRepository on the foods collection
type MongoFoodRepository struct {
	coll *mongo.Collection
}

func NewMongoFoodRepository(db *mongo.Database) *MongoFoodRepository {
	return &MongoFoodRepository{coll: db.Collection(foodsCollection)}
}

func (r *MongoFoodRepository) GetAll(ctx context.Context) ([]models.Food, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoFoodRepository) GetByID(ctx context.Context, id string) (*models.Food, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc foodDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, classifyMongoError(err)
	}
	food := doc.toModel()
	return &food, nil
}

func (r *MongoFoodRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Food, error) {
	found := make(map[string]models.Food, len(ids))
	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return found, nil
	}

	foods, err := r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return nil, err
	}
	for _, food := range foods {
		found[food.ID] = food
	}
	return found, nil
}

func (r *MongoFoodRepository) Create(ctx context.Context, food *models.Food) error {
	now := time.Now().UTC()
	doc := foodDocument{
		ID:          primitive.NewObjectID(),
		Title:       food.Title,
		Description: food.Description,
		Price:       food.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classifyMongoError(err)
	}
	*food = doc.toModel()
	return nil
}

func (r *MongoFoodRepository) Update(ctx context.Context, food *models.Food) error {
	oid, err := parseObjectID(food.ID)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: food.Title},
		{Key: "description", Value: food.Description},
		{Key: "price", Value: food.Price},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc foodDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		return classifyMongoError(err)
	}
	*food = doc.toModel()
	return nil
}

func (r *MongoFoodRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return classifyMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFoodRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return classifyMongoError(err)
}

func (r *MongoFoodRepository) find(ctx context.Context, filter bson.D) ([]models.Food, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongoError(err)
	}

	var docs []foodDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongoError(err)
	}

	foods := make([]models.Food, 0, len(docs))
	for _, doc := range docs {
		foods = append(foods, doc.toModel())
	}
	return foods, nil
}
