package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/database"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/models"
	"github.com/remotehire/remotehire-backend/internal/services"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

type EmployerSignupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func employers() *mongo.Collection {
	return database.DB.Collection(services.EmployerCollection)
}

// SignupEmployer creates an employer account, issues a session and sends a
// verification OTP.
func SignupEmployer(w http.ResponseWriter, r *http.Request) {
	var req EmployerSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "first_name, last_name, email and password are required")
		return
	}

	err := employers().FindOne(r.Context(), bson.M{"email": req.Email}).Err()
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
	employer := models.Employer{
		ID:            primitive.NewObjectID(),
		CreatedAt:     now,
		UpdatedAt:     now,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CompanyName:   req.CompanyName,
		Email:         req.Email,
		Password:      hashedPassword,
		RefreshTokens: []string{},
	}
	if _, err := employers().InsertOne(r.Context(), employer); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "error creating employer")
		return
	}

	pair, err := issueAndRegisterSession(r.Context(), services.EmployerCollection, employer.ID.Hex())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	sendAccountOTP(r.Context(), services.EmployerCollection, employer.ID, req.Email, "[RemoteHire] Verify your email")

	utils.WriteSuccess(w, http.StatusAccepted, "signUp success", map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"employer":     employer,
	})
}

// VerifySignupEmployer marks the employer account verified once the signup
// OTP matches.
func VerifySignupEmployer(w http.ResponseWriter, r *http.Request) {
	verifyAccountOTP(w, r, employers())
}

// LoginEmployer authenticates credentials and issues a fresh session.
func LoginEmployer(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var employer models.Employer
	err := employers().FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&employer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.WriteError(w, http.StatusBadRequest, "account not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, employer.Password)
	if err != nil || !ok {
		utils.WriteError(w, http.StatusBadRequest, "incorrect password")
		return
	}

	pair, err := issueAndRegisterSession(r.Context(), services.EmployerCollection, employer.ID.Hex())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	utils.WriteSuccess(w, http.StatusAccepted, "logIn success", map[string]interface{}{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"employer":     employer,
	})
}

// GetEmployerProfile returns the authenticated employer's profile.
func GetEmployerProfile(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, auth.ErrUnknownPrincipal.Error())
		return
	}

	var employer models.Employer
	if err := employers().FindOne(r.Context(), bson.M{"_id": id}).Decode(&employer); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "employer does not exist")
		return
	}

	if assetService != nil && employer.Avatar != "" {
		if url, err := assetService.SignedURL(r.Context(), employer.Avatar); err == nil {
			employer.Avatar = url
		}
	}
	utils.WriteSuccess(w, http.StatusOK, "Employer Profile fetched", employer)
}

// SendForgetOTPEmployer seals a password-reset challenge onto the employer
// account and emails the code.
func SendForgetOTPEmployer(w http.ResponseWriter, r *http.Request) {
	sendStoredOTP(w, r, employers(), services.EmployerCollection, "[RemoteHire] Password reset code", "sendForgetOTP success")
}
