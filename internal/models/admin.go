package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin accounts are created directly in the database and bypass the
// blocked/deleted/verified gates in the Verify middleware.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password,omitempty" json:"-"`

	RefreshTokens []string `bson:"refreshToken" json:"-"`
}
