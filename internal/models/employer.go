package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Avatar      string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FirstName   string `bson:"first_name" json:"first_name"`
	LastName    string `bson:"last_name" json:"last_name"`
	CompanyName string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Email       string `bson:"email" json:"email"`
	Password    string `bson:"password,omitempty" json:"-"`

	EncryptOTP string `bson:"encryptOTP,omitempty" json:"-"`

	ContactNumber string `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Timezone      string `bson:"timezone,omitempty" json:"timezone,omitempty"`

	RefreshTokens []string `bson:"refreshToken" json:"-"`

	IsVerified bool `bson:"isverified" json:"isVerified"`
	IsDeleted  bool `bson:"isDeleted" json:"isDeleted"`
	IsBlocked  bool `bson:"isBlocked" json:"isBlocked"`
}
