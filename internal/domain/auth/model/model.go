package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity record persisted in the users collection.
// Password always holds the bcrypt hash, never the plaintext.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	FullName   string             `bson:"fullName"`
	Password   string             `bson:"password,omitempty"`
	ProfilePic string             `bson:"profilePic"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
