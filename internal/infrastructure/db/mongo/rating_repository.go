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

type ratingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	StoreID   primitive.ObjectID `bson:"store_id"`
	Value     int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *ratingDoc) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		StoreID:   d.StoreID.Hex(),
		Value:     d.Value,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type raterDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	StoreID    primitive.ObjectID `bson:"store_id"`
	Value      int                `bson:"rating"`
	RaterName  string             `bson:"rater_name"`
	RaterEmail string             `bson:"rater_email"`
}

type RatingRepository struct {
	coll *mongo.Collection
}

var _ ports.RatingRepository = (*RatingRepository)(nil)

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(collectionRatings)}
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	uid, ok1 := objectID(userID)
	sid, ok2 := objectID(storeID)
	if !ok1 || !ok2 {
		return nil, domain.ErrRatingNotFound
	}
	var doc ratingDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": uid, "store_id": sid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, storageErr("find rating", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a rating. The unique (user_id, store_id) index rejects a
// second row for the same pair.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	uid, ok := objectID(rating.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	sid, ok := objectID(rating.StoreID)
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	doc := ratingDoc{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		StoreID:   sid,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRating
		}
		return nil, storageErr("insert rating", err)
	}
	return doc.toDomain(), nil
}

func (r *RatingRepository) UpdateValue(ctx context.Context, id string, value int, at time.Time) (*domain.Rating, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	var doc ratingDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"rating": value, "updated_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, storageErr("update rating", err)
	}
	return doc.toDomain(), nil
}

func (r *RatingRepository) ValuesByUser(ctx context.Context, userID string, storeIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(storeIDs))
	uid, ok := objectID(userID)
	if !ok || len(storeIDs) == 0 {
		return out, nil
	}
	filter := bson.M{"user_id": uid, "store_id": bson.M{"$in": objectIDs(storeIDs)}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"store_id": 1, "rating": 1}))
	if err != nil {
		return nil, storageErr("find user ratings", err)
	}
	var docs []ratingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode user ratings", err)
	}
	for _, d := range docs {
		out[d.StoreID.Hex()] = d.Value
	}
	return out, nil
}

// ListByStores returns the ratings of the given stores with the rater's name
// and email, oldest first.
func (r *RatingRepository) ListByStores(ctx context.Context, storeIDs []string) ([]domain.RatingWithRater, error) {
	out := []domain.RatingWithRater{}
	if len(storeIDs) == 0 {
		return out, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": bson.M{"$in": objectIDs(storeIDs)}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "rater",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$rater", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"store_id":    1,
			"rating":      1,
			"rater_name":  "$rater.name",
			"rater_email": "$rater.email",
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageErr("list store ratings", err)
	}
	var docs []raterDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode store ratings", err)
	}
	for _, d := range docs {
		out = append(out, domain.RatingWithRater{
			ID:         d.ID.Hex(),
			StoreID:    d.StoreID.Hex(),
			Value:      d.Value,
			RaterName:  d.RaterName,
			RaterEmail: d.RaterEmail,
		})
	}
	return out, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storageErr("count ratings", err)
	}
	return n, nil
}
