package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/remotehire/remotehire-backend/internal/handlers"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/services"
)

func SetupRoutes(r *chi.Mux) {
	candidateOnly := middleware.Verify(services.Principals(services.CandidateCollection)...)
	employerOnly := middleware.Verify(services.Principals(services.EmployerCollection)...)
	adminOnly := middleware.Verify(services.Principals(services.AdminCollection)...)

	// Candidate account routes
	r.Post("/api/v1/candidate/signup", handlers.SignupCandidate)
	r.Post("/api/v1/candidate/verifySignup", handlers.VerifySignupCandidate)
	r.Post("/api/v1/candidate/login", handlers.LoginCandidate)
	r.Post("/api/v1/candidate/sendForgetOTP", handlers.SendForgetOTPCandidate)
	r.Post("/api/v1/candidate/verifyOTP", handlers.VerifyOTPCandidate)
	r.Post("/api/v1/candidate/resetPassword", handlers.ResetPasswordCandidate)
	r.Post("/api/v1/candidate/sendVerifyEmailOTP", handlers.SendVerifyEmailOTPCandidate)
	r.Post("/api/v1/candidate/verifyAccountByOTP", handlers.VerifyAccountByOTPCandidate)
	r.Post("/api/v1/candidate/password", handlers.CompleteProfileWithPassword)
	r.Get("/api/v1/candidate/refreshToken", handlers.RefreshHandler(services.CandidateCollection))
	r.With(candidateOnly).Get("/api/v1/candidate", handlers.GetCandidateProfile)
	r.With(candidateOnly).Put("/api/v1/candidate", handlers.UpdateCandidateProfile)
	r.With(candidateOnly).Get("/api/v1/candidate/dashboard", handlers.CandidateDashboard)

	// Candidate moderation (admin sessions only)
	r.With(adminOnly).Get("/api/v1/candidate/admin", handlers.ListCandidates)
	r.With(adminOnly).Put("/api/v1/candidate/admin/toggleBlock", handlers.ToggleCandidateBlock)
	r.With(adminOnly).Delete("/api/v1/candidate/admin", handlers.SoftDeleteCandidate)
	r.With(adminOnly).Put("/api/v1/candidate/admin/update-email", handlers.UpdateCandidateEmail)

	// Employer account routes
	r.Post("/api/v1/employer/signup", handlers.SignupEmployer)
	r.Post("/api/v1/employer/verifySignup", handlers.VerifySignupEmployer)
	r.Post("/api/v1/employer/login", handlers.LoginEmployer)
	r.Post("/api/v1/employer/sendForgetOTP", handlers.SendForgetOTPEmployer)
	r.Get("/api/v1/employer/refreshToken", handlers.RefreshHandler(services.EmployerCollection))
	r.With(employerOnly).Get("/api/v1/employer", handlers.GetEmployerProfile)

	// Admin auth (accounts are created directly in the database)
	r.Post("/api/v1/admin/login", handlers.AdminLogin)
	r.Get("/api/v1/admin/refreshToken", handlers.RefreshHandler(services.AdminCollection))
	r.With(adminOnly).Put("/api/v1/admin/unblock-ip", handlers.UnblockIP)

	// Stateless OTP validation for clients holding their own blob
	r.Get("/api/v1/otp/validate", handlers.ValidateOTP)

	// Test routes
	r.With(candidateOnly).Get("/api/v1/test", handlers.GetTestForPerform)
	r.With(candidateOnly).Post("/api/v1/test", handlers.SubmitTest)
	r.With(employerOnly).Get("/api/v1/test/submitted", handlers.GetSubmittedTest)
	r.With(employerOnly).Put("/api/v1/test/markQuestionCorrectUnCorrect", handlers.MarkQuestionCorrectUnCorrect)

	// File upload (any authenticated principal)
	r.With(middleware.Verify(services.Principals(
		services.CandidateCollection,
		services.EmployerCollection,
		services.AdminCollection,
	)...)).Post("/api/v1/upload", handlers.UploadFile)
}
