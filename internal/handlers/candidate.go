package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/database"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/models"
	"github.com/remotehire/remotehire-backend/internal/services"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

type CandidateSignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type CompletePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CandidateUpdateRequest struct {
	Avatar             string `json:"avatar,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	CountryOfResidence string `json:"countryOfResidence,omitempty"`
	CountryOfBirth     string `json:"countryOfBirth,omitempty"`
	Timezone           string `json:"timezone,omitempty"`
	ContactNumber      string `json:"contactNumber,omitempty"`
	Whatsapp           string `json:"whatsapp,omitempty"`
	Telegram           string `json:"telegram,omitempty"`
	Skype              string `json:"skype,omitempty"`
	Other              string `json:"other,omitempty"`
	AboutVideo         string `json:"aboutVideo,omitempty"`
	CV                 string `json:"cv,omitempty"`
	CoverLetter        string `json:"coverLetter,omitempty"`
}

func candidates() *mongo.Collection {
	return database.DB.Collection(services.CandidateCollection)
}

// SignupCandidate creates a candidate account, issues a session and sends a
// verification OTP to the supplied email.
func SignupCandidate(w http.ResponseWriter, r *http.Request) {
	var req CandidateSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "first_name, last_name, email and password are required")
		return
	}

	err := candidates().FindOne(r.Context(), bson.M{"email": req.Email}).Err()
	if err == nil {
		utils.WriteError(w, http.StatusBadRequest, "you are already signed up, please login")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := time.Now()
	candidate := models.Candidate{
		ID:            primitive.NewObjectID(),
		CreatedAt:     now,
		UpdatedAt:     now,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      hashedPassword,
		RefreshTokens: []string{},
	}
	if _, err := candidates().InsertOne(r.Context(), candidate); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "error creating candidate")
		return
	}

	pair, err := issueAndRegisterSession(r.Context(), services.CandidateCollection, candidate.ID.Hex())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	sendAccountOTP(r.Context(), services.CandidateCollection, candidate.ID, req.Email, "[RemoteHire] Verify your email")

	utils.WriteSuccess(w, http.StatusAccepted, "signUp success", map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"candidate":    candidate,
	})
}

// VerifySignupCandidate marks the account verified once the signup OTP
// matches.
func VerifySignupCandidate(w http.ResponseWriter, r *http.Request) {
	verifyAccountOTP(w, r, candidates())
}

// LoginCandidate authenticates credentials and issues a fresh session.
func LoginCandidate(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var candidate models.Candidate
	err := candidates().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&candidate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, candidate.Password)
	if err != nil || !ok {
		utils.WriteError(w, http.StatusBadRequest, "incorrect password")
		return
	}

	pair, err := issueAndRegisterSession(r.Context(), services.CandidateCollection, candidate.ID.Hex())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, "logIn success", map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"candidate":    candidate,
	})
}

// GetCandidateProfile returns the authenticated candidate's profile with
// signed asset URLs.
func GetCandidateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}

	var candidate models.Candidate
	if err := candidates().FindOne(r.Context(), bson.M{"_id": id}).Decode(&candidate); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "candidate does not exist")
		return
	}

	signCandidateAssets(r.Context(), &candidate)
	utils.WriteSuccess(w, http.StatusOK, "Candidate Profile fetched", candidate)
}

// UpdateCandidateProfile applies a partial profile update. File fields must
// reference objects that already exist in the bucket and are not used by
// any other record.
func UpdateCandidateProfile(w http.ResponseWriter, r *http.Request) {
	var req CandidateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}

	var current models.Candidate
	if err := candidates().FindOne(r.Context(), bson.M{"_id": id}).Decode(&current); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "candidate does not exist")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	fields := map[string]string{
		"first_name":         req.FirstName,
		"last_name":          req.LastName,
		"countryOfRecidence": req.CountryOfResidence,
		"countryOfBirth":     req.CountryOfBirth,
		"timezone":           req.Timezone,
		"contactNumber":      req.ContactNumber,
		"whatsapp":           req.Whatsapp,
		"telegram":           req.Telegram,
		"skype":              req.Skype,
		"other":              req.Other,
		"coverLetter":        req.CoverLetter,
	}
	for key, value := range fields {
		if value != "" {
			set[key] = value
		}
	}

	assets := []struct {
		field    string
		incoming string
		current  string
	}{
		{"avatar", req.Avatar, current.Avatar},
		{"aboutVideo", req.AboutVideo, current.AboutVideo},
		{"cv", req.CV, current.CV},
	}
	var replaced []string
	for _, a := range assets {
		if a.incoming == "" {
			continue
		}
		name, ok, msg := checkIncomingAsset(r.Context(), a.incoming, a.current, "candidate "+a.field)
		if !ok {
			utils.WriteError(w, http.StatusBadRequest, msg)
			return
		}
		set[a.field] = name
		if a.current != "" && a.current != name {
			replaced = append(replaced, a.current)
		}
	}

	var updated models.Candidate
	err = candidates().FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	cleanupReplacedAssets(r.Context(), replaced)

	signCandidateAssets(r.Context(), &updated)
	utils.WriteSuccess(w, http.StatusOK, "profile updated successfully", updated)
}

// SendForgetOTPCandidate seals a fresh code onto the account and emails it.
func SendForgetOTPCandidate(w http.ResponseWriter, r *http.Request) {
	sendStoredOTP(w, r, candidates(), services.CandidateCollection, "[RemoteHire] Password reset code", "sendForgetOTP success")
}

// VerifyOTPCandidate checks a supplied code against the account's stored
// challenge without consuming it.
func VerifyOTPCandidate(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var candidate models.Candidate
	err := candidates().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&candidate)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}

	if err := otpService.Verify(candidate.EncryptOTP, req.OTP); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "OTP verified", nil)
}

// ResetPasswordCandidate sets a new password after OTP confirmation, clears
// the challenge and revokes every outstanding session.
func ResetPasswordCandidate(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var candidate models.Candidate
	err := candidates().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&candidate)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}
	if candidate.EncryptOTP == "" {
		utils.WriteError(w, http.StatusBadRequest, "send otp first")
		return
	}

	if err := otpService.Verify(candidate.EncryptOTP, req.OTP); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	_, err = candidates().UpdateOne(r.Context(),
		bson.M{"_id": candidate.ID},
		bson.M{"$set": bson.M{
			"password":     hashedPassword,
			"encryptOTP":   "",
			"refreshToken": []string{},
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "password reset successfully", nil)
}

// SendVerifyEmailOTPCandidate issues an email-verification challenge.
func SendVerifyEmailOTPCandidate(w http.ResponseWriter, r *http.Request) {
	sendStoredOTP(w, r, candidates(), services.CandidateCollection, "[RemoteHire] Verify your email", "verification OTP sent")
}

// VerifyAccountByOTPCandidate flips isVerified once the emailed code
// matches.
func VerifyAccountByOTPCandidate(w http.ResponseWriter, r *http.Request) {
	verifyAccountOTP(w, r, candidates())
}

// CompleteProfileWithPassword lets an invited candidate set an initial
// password. Rejected when one is already set.
func CompleteProfileWithPassword(w http.ResponseWriter, r *http.Request) {
	var req CompletePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var candidate models.Candidate
	err := candidates().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&candidate)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}
	if candidate.Password != "" {
		utils.WriteError(w, http.StatusBadRequest, "password already set")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	_, err = candidates().UpdateOne(r.Context(),
		bson.M{"_id": candidate.ID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to set password")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "profile updated successfully", nil)
}

// CandidateDashboard returns application statistics for the authenticated
// candidate.
func CandidateDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}

	applied, err := database.DB.Collection("jobapplies").CountDocuments(r.Context(), bson.M{"candidateId": id})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	testsSubmitted, err := database.DB.Collection("testresults").CountDocuments(r.Context(), bson.M{"candidateId": id})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "dashboard fetched", map[string]int64{
		"jobsApplied":    applied,
		"testsSubmitted": testsSubmitted,
	})
}

// --- shared helpers for candidate/employer account flows ---

// issueAndRegisterSession mints a token pair and appends the refresh token
// to the principal's session registry.
func issueAndRegisterSession(ctx context.Context, collectionName, principalID string) (*auth.TokenPair, error) {
	pair, err := tokenService.IssueSession(principalID)
	if err != nil {
		return nil, err
	}
	if err := services.AppendSessionToken(ctx, collectionName, principalID, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// sendAccountOTP seals a new challenge onto the account and emails the
// code. Delivery failure is logged, not surfaced: the client can re-request.
func sendAccountOTP(ctx context.Context, collectionName string, id primitive.ObjectID, email, subject string) {
	blob, code, err := otpService.Issue(email)
	if err != nil {
		log.Printf("otp: failed to issue code for %s: %v", email, err)
		return
	}
	_, err = database.DB.Collection(collectionName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"encryptOTP": blob}},
	)
	if err != nil {
		log.Printf("otp: failed to store challenge for %s: %v", email, err)
		return
	}
	if emailService == nil {
		log.Printf("otp: email service not configured, code for %s not delivered", email)
		return
	}
	if err := emailService.SendOTP(email, subject, code); err != nil {
		log.Printf("otp: failed to send code to %s: %v", email, err)
	}
}

// sendStoredOTP is the request-facing wrapper around sendAccountOTP.
func sendStoredOTP(w http.ResponseWriter, r *http.Request, col *mongo.Collection, collectionName, subject, successMessage string) {
	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := col.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&doc)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}

	sendAccountOTP(r.Context(), collectionName, doc.ID, req.Email, subject)
	utils.WriteSuccess(w, http.StatusOK, successMessage, nil)
}

// verifyAccountOTP confirms the stored challenge and marks the account
// verified, consuming the blob.
func verifyAccountOTP(w http.ResponseWriter, r *http.Request, col *mongo.Collection) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var doc struct {
		ID         primitive.ObjectID `bson:"_id"`
		EncryptOTP string             `bson:"encryptOTP"`
	}
	err := col.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&doc)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}

	if err := otpService.Verify(doc.EncryptOTP, req.OTP); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = col.UpdateOne(r.Context(),
		bson.M{"_id": doc.ID},
		bson.M{"$set": bson.M{"isverified": true, "encryptOTP": "", "updated_at": time.Now()}},
	)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to verify account")
		return
	}
	utils.WriteSuccess(w, http.StatusAccepted, "account verified successfully", nil)
}

// checkIncomingAsset resolves an asset URL to its object key and verifies
// it exists in the bucket and is not referenced elsewhere. Returns the key.
func checkIncomingAsset(ctx context.Context, incomingURL, currentKey, fieldName string) (string, bool, string) {
	if assetService == nil {
		return "", false, "file storage not available"
	}
	name := services.FileNames([]string{incomingURL})[0]

	exists, err := assetService.Exists(ctx, []string{name})
	if err != nil || !exists[0] {
		return "", false, "file does not exist in storage"
	}

	if name != currentKey {
		msg, ok, err := services.CheckDuplicateAssetUsage(ctx, []string{name}, fieldName)
		if err != nil || !ok {
			return "", false, msg
		}
	}
	return name, true, ""
}

// cleanupReplacedAssets removes bucket objects no record references anymore.
// Best-effort: the profile update already succeeded, so failures only log.
// Keys still referenced elsewhere (application snapshots, test answers) are
// kept.
func cleanupReplacedAssets(ctx context.Context, keys []string) {
	if assetService == nil || len(keys) == 0 {
		return
	}
	var orphaned []string
	for _, key := range keys {
		_, unused, err := services.CheckDuplicateAssetUsage(ctx, []string{key}, "replaced file")
		if err != nil {
			log.Printf("assets: usage check for %s failed: %v", key, err)
			continue
		}
		if unused {
			orphaned = append(orphaned, key)
		}
	}
	if len(orphaned) == 0 {
		return
	}
	if err := assetService.DeleteObjects(ctx, orphaned); err != nil {
		log.Printf("assets: failed to delete replaced objects: %v", err)
	}
}

// signCandidateAssets replaces stored object keys with signed URLs for the
// response. Signing failures leave the bare key in place.
func signCandidateAssets(ctx context.Context, candidate *models.Candidate) {
	if assetService == nil {
		return
	}
	for _, field := range []*string{&candidate.Avatar, &candidate.AboutVideo, &candidate.CV, &candidate.CoverLetter} {
		if *field == "" {
			continue
		}
		if url, err := assetService.SignedURL(ctx, *field); err == nil {
			*field = url
		}
	}
}
