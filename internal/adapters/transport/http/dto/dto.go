package dto

import "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"

type SignupDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileDTO struct {
	ProfilePic string `json:"profilePic"`
}

// UserResponse is the public user shape. The password hash has no field here,
// so it can never serialize.
type UserResponse struct {
	ID         string `json:"_id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	ProfilePic string `json:"profilePic"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID.Hex(),
		Email:      u.Email,
		FullName:   u.FullName,
		ProfilePic: u.ProfilePic,
	}
}
