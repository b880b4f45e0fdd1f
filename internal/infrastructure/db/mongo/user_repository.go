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

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Role         string             `bson:"role"`
	Address      string             `bson:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Role:      domain.Role(d.Role),
		Address:   d.Address,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// publicProjection keeps the password hash out of ordinary reads.
var publicProjection = bson.M{"password_hash": 0}

var userSortFields = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"address":   "address",
	"createdAt": "created_at",
}

type UserRepository struct {
	coll *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         string(user.Role),
		Address:      user.Address,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, storageErr("insert user", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(publicProjection)).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	return r.findCredentials(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindCredentialsByID(ctx context.Context, id string) (*domain.UserCredentials, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findCredentials(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findCredentials(ctx context.Context, filter bson.M) (*domain.UserCredentials, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find credentials", err)
	}
	return &domain.UserCredentials{User: *doc.toDomain(), PasswordHash: doc.PasswordHash}, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    at,
	}})
	if err != nil {
		return storageErr("update password", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	if f.Limit == 0 {
		return []*domain.User{}, nil
	}

	match := bson.M{}
	if f.Role != "" {
		match["role"] = string(f.Role)
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		match["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}, bson.M{"address": re}}
	}

	field, ok := userSortFields[f.SortBy]
	if !ok {
		field = "name"
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$project", Value: publicProjection}},
	}
	pipeline = append(pipeline, sortStages(field, field != "created_at", f.Desc)...)
	pipeline = append(pipeline, pageStages(f.Offset, f.Limit)...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode users", err)
	}

	out := make([]*domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}
