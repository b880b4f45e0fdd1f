package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

type storeDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Name      string              `bson:"name"`
	Email     string              `bson:"email,omitempty"`
	Address   string              `bson:"address,omitempty"`
	OwnerID   *primitive.ObjectID `bson:"owner_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

func (d *storeDoc) toDomain() domain.Store {
	s := domain.Store{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Address:   d.Address,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if d.OwnerID != nil {
		s.OwnerID = d.OwnerID.Hex()
	}
	return s
}

type storeAggregateDoc struct {
	Store         storeDoc `bson:",inline"`
	AverageRating *float64 `bson:"average_rating"`
	RatingCount   int64    `bson:"rating_count"`
}

var storeSortFields = map[string]string{
	"name":          "name",
	"email":         "email",
	"address":       "address",
	"createdAt":     "created_at",
	"averageRating": "average_rating",
	"ratingCount":   "rating_count",
}

type StoreRepository struct {
	coll *mongo.Collection
}

var _ ports.StoreRepository = (*StoreRepository)(nil)

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(collectionStores)}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	doc := storeDoc{
		ID:        primitive.NewObjectID(),
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
	if store.OwnerID != "" {
		oid, ok := objectID(store.OwnerID)
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		doc.OwnerID = &oid
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storageErr("insert store", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	var doc storeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, storageErr("find store", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error) {
	oid, ok := objectID(ownerID)
	if !ok {
		return []*domain.Store{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": oid}, opts)
	if err != nil {
		return nil, storageErr("list owner stores", err)
	}
	var docs []storeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode stores", err)
	}

	out := make([]*domain.Store, 0, len(docs))
	for i := range docs {
		s := docs[i].toDomain()
		out = append(out, &s)
	}
	return out, nil
}

// ListWithAggregates joins each store with its ratings and reduces them to
// an average and a count. $avg over no ratings yields null.
func (r *StoreRepository) ListWithAggregates(ctx context.Context, f ports.ListStoresFilter) ([]domain.StoreAggregate, error) {
	if f.Limit == 0 {
		return []domain.StoreAggregate{}, nil
	}

	match := bson.M{}
	if f.Search != "" {
		re := containsRegex(f.Search)
		or := bson.A{bson.M{"name": re}, bson.M{"address": re}}
		if f.SearchEmail {
			or = append(or, bson.M{"email": re})
		}
		match["$or"] = or
	}

	field, ok := storeSortFields[f.SortBy]
	if !ok {
		field = "name"
	}
	lower := field == "name" || field == "email" || field == "address"

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionRatings,
			"localField":   "_id",
			"foreignField": "store_id",
			"as":           "ratings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"average_rating": bson.M{"$avg": "$ratings.rating"},
			"rating_count":   bson.M{"$size": "$ratings"},
		}}},
		{{Key: "$project", Value: bson.M{"ratings": 0}}},
	}
	pipeline = append(pipeline, sortStages(field, lower, f.Desc)...)
	pipeline = append(pipeline, pageStages(f.Offset, f.Limit)...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageErr("aggregate stores", err)
	}
	var docs []storeAggregateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode store aggregates", err)
	}

	out := make([]domain.StoreAggregate, 0, len(docs))
	for i := range docs {
		out = append(out, domain.StoreAggregate{
			Store:         docs[i].Store.toDomain(),
			AverageRating: docs[i].AverageRating,
			RatingCount:   docs[i].RatingCount,
		})
	}
	return out, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storageErr("count stores", err)
	}
	return n, nil
}
