package repo

import (
	"context"

	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepo interface {
	// CreateUser inserts a new user. A second insert with the same email fails
	// with errors.ErrAlreadyExists, distinct from any other failure.
	CreateUser(ctx context.Context, u model.User) (primitive.ObjectID, error)

	// GetUserByEmail returns the full record including the password hash.
	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	// GetUserByID returns the record with the password field excluded.
	GetUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)

	// UpdateProfilePic persists a new avatar URL and returns the updated record.
	UpdateProfilePic(ctx context.Context, id primitive.ObjectID, url string) (model.User, error)
}
