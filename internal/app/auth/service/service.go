package service

import (
	"context"

	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service interface {
	Signup(ctx context.Context, d dto.SignupDTO) (model.User, error)

	Login(ctx context.Context, d dto.LoginDTO) (model.User, error)

	UpdateProfile(ctx context.Context, userID primitive.ObjectID, d dto.UpdateProfileDTO) (model.User, error)
}

// Uploader stores an image payload with the external image host and returns a
// durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
}
