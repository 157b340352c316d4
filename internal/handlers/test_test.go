package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/remotehire/remotehire-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestMarkObjectiveQuestions(t *testing.T) {
	t.Parallel()

	choiceID := primitive.NewObjectID()
	boolID := primitive.NewObjectID()
	essayID := primitive.NewObjectID()

	defined := []models.Question{
		{ID: choiceID, Type: models.QuestionChoice, Options: []string{"a", "b", "c"}, CorrectAnswer: intPtr(1)},
		{ID: boolID, Type: models.QuestionBoolean, CorrectAnswer: intPtr(0)},
		{ID: essayID, Type: models.QuestionEssay},
	}
	submitted := []models.Question{
		{ID: choiceID, Answer: "1"},
		{ID: boolID, Answer: "1"},
		{ID: essayID, Answer: "a long form answer"},
	}

	markObjectiveQuestions(submitted, defined)

	if assert.NotNil(t, submitted[0].IsCorrect) {
		assert.True(t, *submitted[0].IsCorrect, "matching choice answer should be correct")
	}
	if assert.NotNil(t, submitted[1].IsCorrect) {
		assert.False(t, *submitted[1].IsCorrect, "wrong boolean answer should be incorrect")
	}
	assert.Nil(t, submitted[2].IsCorrect, "essays wait for the employer")
}

func TestMarkObjectiveQuestionsUnknownAndMalformed(t *testing.T) {
	t.Parallel()

	knownID := primitive.NewObjectID()
	defined := []models.Question{
		{ID: knownID, Type: models.QuestionChoice, CorrectAnswer: intPtr(2)},
	}
	submitted := []models.Question{
		{ID: primitive.NewObjectID(), Answer: "2"}, // not part of the test
		{ID: knownID, Answer: "not a number"},
	}

	markObjectiveQuestions(submitted, defined)

	assert.Nil(t, submitted[0].IsCorrect)
	if assert.NotNil(t, submitted[1].IsCorrect) {
		assert.False(t, *submitted[1].IsCorrect)
	}
}
