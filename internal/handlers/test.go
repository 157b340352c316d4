package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/database"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/models"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

func tests() *mongo.Collection {
	return database.DB.Collection("tests")
}

func testResults() *mongo.Collection {
	return database.DB.Collection("testresults")
}

func jobApplies() *mongo.Collection {
	return database.DB.Collection("jobapplies")
}

// GetTestForPerform returns the test attached to the candidate's own job
// application, with answers and marking state stripped.
func GetTestForPerform(w http.ResponseWriter, r *http.Request) {
	candidateID, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}
	jobApplyID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("jobApplyId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid jobApplyId")
		return
	}

	var application models.JobApplication
	err = jobApplies().FindOne(r.Context(),
		bson.M{"_id": jobApplyID, "candidateId": candidateID},
	).Decode(&application)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "job application not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	var test models.Test
	err = tests().FindOne(r.Context(), bson.M{"jobId": application.JobID}).Decode(&test)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "no test attached to this job")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	// The candidate must not see correct answers or previous marking.
	for i := range test.Questions {
		test.Questions[i].CorrectAnswer = nil
		test.Questions[i].Answer = ""
		test.Questions[i].FileAnswer = ""
		test.Questions[i].IsCorrect = nil
	}

	utils.WriteSuccess(w, http.StatusOK, "test fetched", test)
}

type SubmitTestRequest struct {
	JobApplyID    string            `json:"jobApplyId"`
	RecordedVideo string            `json:"recordedVideo,omitempty"`
	Questions     []models.Question `json:"questions"`
}

// SubmitTest records a candidate's answers. Choice and boolean questions are
// marked immediately against the stored test; essays wait for the employer.
func SubmitTest(w http.ResponseWriter, r *http.Request) {
	candidateID, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}

	var req SubmitTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	jobApplyID, err := primitive.ObjectIDFromHex(req.JobApplyID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid jobApplyId")
		return
	}

	var application models.JobApplication
	err = jobApplies().FindOne(r.Context(),
		bson.M{"_id": jobApplyID, "candidateId": candidateID},
	).Decode(&application)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "job application not found")
		return
	}

	err = testResults().FindOne(r.Context(),
		bson.M{"jobApplyId": jobApplyID, "candidateId": candidateID},
	).Err()
	if err == nil {
		utils.WriteError(w, http.StatusBadRequest, "test already submitted")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	var test models.Test
	if err := tests().FindOne(r.Context(), bson.M{"jobId": application.JobID}).Decode(&test); err == nil {
		markObjectiveQuestions(req.Questions, test.Questions)
	}

	now := time.Now()
	result := models.TestResult{
		ID:            primitive.NewObjectID(),
		CreatedAt:     now,
		UpdatedAt:     now,
		JobApplyID:    jobApplyID,
		CandidateID:   candidateID,
		RecordedVideo: req.RecordedVideo,
		Questions:     req.Questions,
	}
	if _, err := testResults().InsertOne(r.Context(), result); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to submit test")
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, "test submitted successfully", result)
}

// markObjectiveQuestions grades choice and boolean answers in place by
// matching each submitted question against the test definition.
func markObjectiveQuestions(submitted, defined []models.Question) {
	byID := make(map[primitive.ObjectID]models.Question, len(defined))
	for _, q := range defined {
		byID[q.ID] = q
	}
	for i := range submitted {
		def, found := byID[submitted[i].ID]
		if !found || def.Type == models.QuestionEssay || def.CorrectAnswer == nil {
			continue
		}
		answered, err := strconv.Atoi(submitted[i].Answer)
		correct := err == nil && answered == *def.CorrectAnswer
		submitted[i].IsCorrect = &correct
	}
}

// GetSubmittedTest returns a candidate's submitted test for an employer to
// review.
func GetSubmittedTest(w http.ResponseWriter, r *http.Request) {
	jobApplyID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("jobApplyId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid jobApplyId")
		return
	}
	candidateID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("candidateId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid candidateId")
		return
	}

	var result models.TestResult
	err = testResults().FindOne(r.Context(),
		bson.M{"jobApplyId": jobApplyID, "candidateId": candidateID},
	).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "submitted test not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if assetService != nil {
		if result.RecordedVideo != "" {
			if url, err := assetService.SignedURL(r.Context(), result.RecordedVideo); err == nil {
				result.RecordedVideo = url
			}
		}
		for i := range result.Questions {
			if result.Questions[i].FileAnswer == "" {
				continue
			}
			if url, err := assetService.SignedURL(r.Context(), result.Questions[i].FileAnswer); err == nil {
				result.Questions[i].FileAnswer = url
			}
		}
	}

	utils.WriteSuccess(w, http.StatusOK, "submitted test fetched", result)
}

type MarkQuestionRequest struct {
	TestResultID string `json:"testResultId"`
	QuestionID   string `json:"questionId"`
	IsCorrect    bool   `json:"isCorrect"`
}

// MarkQuestionCorrectUnCorrect lets an employer mark one essay answer in a
// submitted test.
func MarkQuestionCorrectUnCorrect(w http.ResponseWriter, r *http.Request) {
	var req MarkQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resultID, err := primitive.ObjectIDFromHex(req.TestResultID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid testResultId")
		return
	}
	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid questionId")
		return
	}

	result, err := testResults().UpdateOne(r.Context(),
		bson.M{"_id": resultID, "questions._id": questionID},
		bson.M{"$set": bson.M{"questions.$.isCorrect": req.IsCorrect, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to mark question")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusBadRequest, "question not found in submitted test")
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, "question marked", nil)
}
