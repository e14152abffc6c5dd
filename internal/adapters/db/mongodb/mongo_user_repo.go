package mongodb

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepo struct {
	users *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{users: db.Collection("users")}
}

// EnsureIndexes creates the unique index on email. Concurrent signups with the
// same address are resolved by this index, not by application-level locking.
func (m *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return customErrors.WrapInternal(err, "EnsureIndexes")
	}
	return nil
}

func (m *MongoUserRepo) CreateUser(ctx context.Context, user model.User) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := m.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, customErrors.ErrAlreadyExists
		}
		return primitive.NilObjectID, customErrors.WrapInternal(err, "CreateUser")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, customErrors.WrapInternal(errors.New("inserted id is not an ObjectID"), "CreateUser")
	}
	return id, nil
}

func (m *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByEmail")
	}
	return u, nil
}

func (m *MongoUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var u model.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err := m.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}
	return u, nil
}

func (m *MongoUserRepo) UpdateProfilePic(ctx context.Context, id primitive.ObjectID, url string) (model.User, error) {
	update := bson.M{"$set": bson.M{
		"profilePic": url,
		"updatedAt":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var u model.User
	err := m.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UpdateProfilePic")
	}
	return u, nil
}
