package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"returnit_backend/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

// Collection names match the document store the web client writes to.
const (
	lostCollection  = "reportedItems"
	foundCollection = "foundItems"
)

// ItemRepository reads and writes lost/found reports in the document store.
// The matching engine only uses the read side; writes serve the report
// endpoints.
type ItemRepository interface {
	Create(ctx context.Context, kind models.ItemKind, item *models.Item) (string, error)
	FindByID(ctx context.Context, kind models.ItemKind, id string) (*models.Item, error)
	Delete(ctx context.Context, kind models.ItemKind, id string) error

	// ListLostByUser returns every lost report owned by userID.
	ListLostByUser(ctx context.Context, userID string) ([]models.Item, error)
	// ListFoundByUser returns every found report submitted by userID.
	ListFoundByUser(ctx context.Context, userID string) ([]models.Item, error)
	// ListAllFound returns the entire found pool, unfiltered. The ranking
	// engine gates by distance and similarity in memory.
	ListAllFound(ctx context.Context) ([]models.Item, error)
	// ListAllLost returns the entire lost pool (nearby browse).
	ListAllLost(ctx context.Context) ([]models.Item, error)
}

type mongoItemRepository struct {
	db *mongo.Database
}

func NewItemRepository(db *mongo.Database) ItemRepository {
	return &mongoItemRepository{db: db}
}

func (r *mongoItemRepository) collection(kind models.ItemKind) *mongo.Collection {
	if kind == models.ItemKindFound {
		return r.db.Collection(foundCollection)
	}
	return r.db.Collection(lostCollection)
}

func (r *mongoItemRepository) Create(ctx context.Context, kind models.ItemKind, item *models.Item) (string, error) {
	res, err := r.collection(kind).InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("insert %s item: %w", kind, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert %s item: unexpected id type %T", kind, res.InsertedID)
	}
	item.ID = oid
	return oid.Hex(), nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, kind models.ItemKind, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var item models.Item
	err = r.collection(kind).FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s item: %w", kind, err)
	}
	return &item, nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, kind models.ItemKind, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrItemNotFound
	}

	res, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s item: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *mongoItemRepository) ListLostByUser(ctx context.Context, userID string) ([]models.Item, error) {
	return r.list(ctx, models.ItemKindLost, bson.M{"userId": userID})
}

func (r *mongoItemRepository) ListFoundByUser(ctx context.Context, userID string) ([]models.Item, error) {
	return r.list(ctx, models.ItemKindFound, bson.M{"userId": userID})
}

func (r *mongoItemRepository) ListAllFound(ctx context.Context) ([]models.Item, error) {
	return r.list(ctx, models.ItemKindFound, bson.M{})
}

func (r *mongoItemRepository) ListAllLost(ctx context.Context) ([]models.Item, error) {
	return r.list(ctx, models.ItemKindLost, bson.M{})
}

func (r *mongoItemRepository) list(ctx context.Context, kind models.ItemKind, filter bson.M) ([]models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection(kind).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", kind, err)
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s items: %w", kind, err)
	}
	return items, nil
}
