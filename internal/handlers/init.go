package handlers

import (
	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/services"
	"github.com/remotehire/remotehire-backend/internal/storage"
)

// Package-level collaborators, wired once from main. assetService,
// emailService and uploadProvider may stay nil when their credentials are
// not configured; the handlers degrade per-feature in that case.
var (
	tokenService   *auth.TokenService
	otpService     *auth.OTPService
	emailService   *services.EmailService
	assetService   *services.AssetService
	uploadProvider storage.Provider
)

func Init(ts *auth.TokenService, otp *auth.OTPService) {
	tokenService = ts
	otpService = otp
}

func InitEmailService(svc *services.EmailService) { emailService = svc }

func InitAssetService(svc *services.AssetService) { assetService = svc }

func InitUploadProvider(p storage.Provider) { uploadProvider = p }

func newStore(collectionName string) auth.PrincipalStore {
	return services.NewPrincipalStore(collectionName)
}
