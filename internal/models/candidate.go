package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Candidate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Avatar    string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password,omitempty" json:"-"`

	// EncryptOTP holds the sealed one-time-code blob for forgot-password and
	// email-verification flows; empty when no challenge is outstanding.
	EncryptOTP string `bson:"encryptOTP,omitempty" json:"-"`

	// "countryOfRecidence" is kept as stored in existing documents.
	CountryOfResidence string `bson:"countryOfRecidence,omitempty" json:"countryOfResidence,omitempty"`
	CountryOfBirth     string `bson:"countryOfBirth,omitempty" json:"countryOfBirth,omitempty"`
	Timezone           string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	ContactNumber      string `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Whatsapp           string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Telegram           string `bson:"telegram,omitempty" json:"telegram,omitempty"`
	Skype              string `bson:"skype,omitempty" json:"skype,omitempty"`
	Other              string `bson:"other,omitempty" json:"other,omitempty"`

	AboutVideo  string `bson:"aboutVideo,omitempty" json:"aboutVideo,omitempty"`
	CV          string `bson:"cv,omitempty" json:"cv,omitempty"`
	CoverLetter string `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`

	// RefreshTokens is the session registry: every signed refresh token the
	// principal currently holds. Revoking a session removes its entry.
	RefreshTokens []string `bson:"refreshToken" json:"-"`

	IsVerified bool `bson:"isverified" json:"isVerified"`
	IsDeleted  bool `bson:"isDeleted" json:"isDeleted"`
	IsBlocked  bool `bson:"isBlocked" json:"isBlocked"`
}
