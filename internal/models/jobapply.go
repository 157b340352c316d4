package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobApplication snapshots the candidate profile at apply time so later
// profile edits don't rewrite submitted applications.
type JobApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	CandidateID primitive.ObjectID `bson:"candidateId" json:"candidateId"`
	JobID       primitive.ObjectID `bson:"jobId" json:"jobId"`

	FirstName          string     `bson:"first_name" json:"first_name"`
	LastName           string     `bson:"last_name" json:"last_name"`
	Email              string     `bson:"email" json:"email"`
	CountryOfResidence string     `bson:"countryOfRecidence,omitempty" json:"countryOfResidence,omitempty"`
	CountryOfBirth     string     `bson:"countryOfBirth,omitempty" json:"countryOfBirth,omitempty"`
	Timezone           string     `bson:"timezone,omitempty" json:"timezone,omitempty"`
	ContactNumber      string     `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	AvailabilityDate   *time.Time `bson:"availabilityDate,omitempty" json:"availabilityDate,omitempty"`

	AboutVideo  string `bson:"aboutVideo,omitempty" json:"aboutVideo,omitempty"`
	CV          string `bson:"cv,omitempty" json:"cv,omitempty"`
	CoverLetter string `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
}
