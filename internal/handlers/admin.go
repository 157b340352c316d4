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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/remotehire/remotehire-backend/internal/database"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/models"
	"github.com/remotehire/remotehire-backend/internal/services"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

func admins() *mongo.Collection {
	return database.DB.Collection(services.AdminCollection)
}

// AdminLogin authenticates an admin and issues a session. Admin accounts
// carry no blocked/deleted/verified gates.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var admin models.Admin
	err := admins().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, admin.Password)
	if err != nil || !ok {
		utils.WriteError(w, http.StatusBadRequest, "incorrect password")
		return
	}

	pair, err := issueAndRegisterSession(r.Context(), services.AdminCollection, admin.ID.Hex())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, "logIn success", map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"admin":        admin,
	})
}

// ListCandidates returns a page of candidate accounts for moderation.
// Supports ?page, ?limit and an optional ?filter matched against name and
// email.
func ListCandidates(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if q := r.URL.Query().Get("filter"); q != "" {
		pattern := primitive.Regex{Pattern: q, Options: "i"}
		filter["$or"] = []bson.M{
			{"first_name": pattern},
			{"last_name": pattern},
			{"email": pattern},
		}
	}

	total, err := candidates().CountDocuments(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := candidates().Find(r.Context(), filter, opts)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer cursor.Close(r.Context())

	list := []models.Candidate{}
	if err := cursor.All(r.Context(), &list); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "candidates fetched", map[string]interface{}{
		"candidates": list,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// ToggleCandidateBlock flips isBlocked on the candidate given by ?id.
func ToggleCandidateBlock(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	var candidate models.Candidate
	if err := candidates().FindOne(r.Context(), bson.M{"_id": id}).Decode(&candidate); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "candidate does not exist")
		return
	}

	blocked := !candidate.IsBlocked
	_, err = candidates().UpdateOne(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isBlocked": blocked, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to update candidate")
		return
	}

	message := "candidate unblocked"
	if blocked {
		message = "candidate blocked"
	}
	utils.WriteSuccess(w, http.StatusOK, message, map[string]bool{"isBlocked": blocked})
}

// SoftDeleteCandidate marks the candidate deleted and revokes every
// outstanding session. The document itself is retained.
func SoftDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	result, err := candidates().UpdateOne(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isDeleted": true, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete candidate")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusBadRequest, "candidate does not exist")
		return
	}

	if err := services.RevokeAllSessions(r.Context(), services.CandidateCollection, id); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to revoke sessions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "candidate deleted", nil)
}

// UnblockIP lifts a rate-limit block for the IP given by ?ip.
func UnblockIP(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		utils.WriteError(w, http.StatusBadRequest, "ip is required")
		return
	}

	blocked, err := middleware.IsIPBlocked(ip)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to check ip")
		return
	}
	if !blocked {
		utils.WriteError(w, http.StatusBadRequest, "ip is not blocked")
		return
	}

	if err := middleware.UnblockIP(ip); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to unblock ip")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "ip unblocked", nil)
}

type UpdateEmailRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UpdateCandidateEmail changes a candidate's email after checking no other
// account already holds it.
func UpdateCandidateEmail(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid candidate id")
		return
	}
	if req.Email == "" {
		utils.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	err = candidates().FindOne(r.Context(), bson.M{"email": req.Email, "_id": bson.M{"$ne": id}}).Err()
	if err == nil {
		utils.WriteError(w, http.StatusBadRequest, "email already in use")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	result, err := candidates().UpdateOne(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email": req.Email, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to update email")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusBadRequest, "candidate does not exist")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "email updated successfully", nil)
}
