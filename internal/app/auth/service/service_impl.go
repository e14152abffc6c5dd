package service

import (
	"context"
	"errors"

	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"github.com/Miraines/ChirpChat/auth-service/internal/repo"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt embeds a random per-user salt into the hash at this cost.
const passwordHashCost = 10

type authService struct {
	userRepo repo.UserRepo
	uploader Uploader
	v        *validator.Validate
}

func New(userRepo repo.UserRepo, uploader Uploader, v *validator.Validate) Service {
	return &authService{userRepo: userRepo, uploader: uploader, v: v}
}

func (a *authService) Signup(ctx context.Context, d dto.SignupDTO) (model.User, error) {
	if err := a.v.Struct(d); err != nil {
		return model.User{}, invalidArgument(err)
	}

	_, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if err == nil {
		return model.User{}, customErrors.ErrAlreadyExists
	}
	if !customErrors.IsNotFound(err) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), passwordHashCost)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Signup")
	}

	user := model.User{
		Email:    d.Email,
		FullName: d.FullName,
		Password: string(hash),
	}

	// The pre-check above races against concurrent signups; the store's unique
	// index is the real arbiter and surfaces as ErrAlreadyExists here.
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, err
	}

	user.ID = id
	user.Password = ""
	return user, nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.User, error) {
	if err := a.v.Struct(d); err != nil {
		return model.User{}, invalidArgument(err)
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if customErrors.IsNotFound(err) {
		// Same error as a wrong password so the response does not reveal
		// which part failed.
		return model.User{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(d.Password)) != nil {
		return model.User{}, customErrors.ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

func (a *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, d dto.UpdateProfileDTO) (model.User, error) {
	if d.ProfilePic == "" {
		return model.User{}, customErrors.NewInvalidArgument("Profile pic is required")
	}

	url, err := a.uploader.Upload(ctx, d.ProfilePic)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UpdateProfile")
	}

	return a.userRepo.UpdateProfilePic(ctx, userID, url)
}

// invalidArgument translates validator failures into the client-facing
// messages the API contract fixes.
func invalidArgument(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return customErrors.NewInvalidArgument(err.Error())
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return customErrors.NewInvalidArgument("All fields are required")
		}
	}
	for _, fe := range fieldErrs {
		switch {
		case fe.Field() == "Password" && fe.Tag() == "min":
			return customErrors.NewInvalidArgument("Password must be at least 6 characters long")
		case fe.Tag() == "email":
			return customErrors.NewInvalidArgument("Invalid email format")
		}
	}
	return customErrors.NewInvalidArgument(err.Error())
}
