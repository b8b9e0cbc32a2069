package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoFoodRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "test." + foodsCollection

	mt.Run("get by id found", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Pizza"},
			{Key: "description", Value: "cheesy"},
			{Key: "price", Value: 10.5},
			{Key: "createdAt", Value: time.Now().UTC()},
		}))

		food, err := repo.GetByID(ctx, oid.Hex())
		if err != nil {
			mt.Fatalf("GetByID() unexpected error = %v", err)
		}
		if food.ID != oid.Hex() || food.Title != "Pizza" || food.Price != 10.5 {
			mt.Errorf("GetByID() = %+v", food)
		}
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.GetByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
			mt.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)

		if _, err := repo.GetByID(ctx, "not-an-object-id"); !errors.Is(err, ErrNotFound) {
			mt.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		food := &models.Food{Title: "Pizza", Price: 10}
		if err := repo.Create(ctx, food); err != nil {
			mt.Fatalf("Create() unexpected error = %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(food.ID); err != nil {
			mt.Errorf("Create() id = %q, want an object id", food.ID)
		}
		if food.CreatedAt.IsZero() {
			mt.Error("Create() did not set createdAt")
		}
	})

	mt.Run("create duplicate title", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.foods index: title_1",
		}))

		err := repo.Create(ctx, &models.Food{Title: "Pizza"})
		if !errors.Is(err, ErrDuplicateKey) {
			mt.Errorf("Create() error = %v, want ErrDuplicateKey", err)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoFoodRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.Delete(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
			mt.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestMongoBasketRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "test." + basketsCollection

	basket := func() *models.Basket {
		return &models.Basket{
			UserID:  "u1",
			Version: 3,
			Items:   []models.BasketItem{{ID: "i1", FoodID: "f1", Amount: 2, Price: 10}},
		}
	}

	mt.Run("version matches", func(mt *mtest.T) {
		repo := NewMongoBasketRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		b := basket()
		if err := repo.Update(ctx, b); err != nil {
			mt.Fatalf("Update() unexpected error = %v", err)
		}
		if b.Version != 4 {
			mt.Errorf("version = %d, want 4", b.Version)
		}
	})

	mt.Run("stale version", func(mt *mtest.T) {
		repo := NewMongoBasketRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		b := basket()
		if err := repo.Update(ctx, b); !errors.Is(err, ErrVersionConflict) {
			mt.Errorf("Update() error = %v, want ErrVersionConflict", err)
		}
		if b.Version != 3 {
			mt.Errorf("version changed on conflict: %d", b.Version)
		}
	})

	mt.Run("basket gone", func(mt *mtest.T) {
		repo := NewMongoBasketRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		if err := repo.Update(ctx, basket()); !errors.Is(err, ErrNotFound) {
			mt.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func TestMongoBasketRepository_GetByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test." + basketsCollection

	mt.Run("decodes embedded items", func(mt *mtest.T) {
		repo := NewMongoBasketRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "userID", Value: "u1"},
			{Key: "version", Value: int64(2)},
			{Key: "items", Value: bson.A{
				bson.D{
					{Key: "_id", Value: "i1"},
					{Key: "title", Value: "Pizza"},
					{Key: "amount", Value: 5},
					{Key: "price", Value: 10.0},
					{Key: "foodId", Value: "f1"},
				},
			}},
		}))

		b, err := repo.GetByUserID(context.Background(), "u1")
		if err != nil {
			mt.Fatalf("GetByUserID() unexpected error = %v", err)
		}
		if b.ID != oid.Hex() || b.Version != 2 || len(b.Items) != 1 {
			mt.Fatalf("GetByUserID() = %+v", b)
		}
		if item := b.Items[0]; item.ID != "i1" || item.Amount != 5 || item.FoodID != "f1" {
			mt.Errorf("item = %+v", item)
		}
	})
}

func TestClassifyMongoError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, ErrNotFound},
		{"wrapped no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), ErrNotFound},
		{"deadline", context.DeadlineExceeded, ErrUnavailable},
		{"disconnected", mongo.ErrClientDisconnected, ErrUnavailable},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, ErrDuplicateKey},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMongoError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("classifyMongoError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyMongoError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseObjectIDs(t *testing.T) {
	valid := primitive.NewObjectID()

	got := parseObjectIDs([]string{valid.Hex(), "bad", ""})
	if len(got) != 1 || got[0] != valid {
		t.Errorf("parseObjectIDs() = %v, want [%s]", got, valid.Hex())
	}
}
