package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types within a test.
const (
	QuestionEssay   = 0
	QuestionChoice  = 1
	QuestionBoolean = 2
)

// Test is an employer-built assessment attached to a job.
type Test struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	EmployerID primitive.ObjectID `bson:"employerId" json:"employerId"`
	JobID      primitive.ObjectID `bson:"jobId,omitempty" json:"jobId,omitempty"`
	TestName   string             `bson:"testName" json:"testName"`
	// TestTime is the allotted duration in minutes.
	TestTime          int        `bson:"testTime" json:"testTime"`
	NoQuestionWarning bool       `bson:"noQuestionWarning" json:"noQuestionWarning"`
	Questions         []Question `bson:"questions,omitempty" json:"questions,omitempty"`
}

type Question struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type         int                `bson:"type" json:"type"`
	QuestionText string             `bson:"questionText" json:"questionText"`
	WordLimit    int                `bson:"wordLimit,omitempty" json:"wordLimit,omitempty"`
	Options      []string           `bson:"options,omitempty" json:"options,omitempty"`
	// CorrectAnswer is the index of the right option for choice questions.
	CorrectAnswer *int   `bson:"correctAnswer,omitempty" json:"correctAnswer,omitempty"`
	AllowFile     bool   `bson:"allowFile,omitempty" json:"allowFile,omitempty"`
	FileAnswer    string `bson:"fileAnswer,omitempty" json:"fileAnswer,omitempty"`
	Answer        string `bson:"answer,omitempty" json:"answer,omitempty"`
	// IsCorrect is nil until marked (automatically for choice/boolean,
	// by the employer for essays).
	IsCorrect *bool `bson:"isCorrect" json:"isCorrect"`
}

// TestResult is a candidate's submitted test for one job application.
type TestResult struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	JobApplyID    primitive.ObjectID `bson:"jobApplyId" json:"jobApplyId"`
	CandidateID   primitive.ObjectID `bson:"candidateId" json:"candidateId"`
	RecordedVideo string             `bson:"recordedVideo,omitempty" json:"recordedVideo,omitempty"`
	Questions     []Question         `bson:"questions" json:"questions"`
}
