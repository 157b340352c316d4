package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/joho/godotenv"

	"github.com/go-chi/chi/v5"
	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/config"
	"github.com/remotehire/remotehire-backend/internal/database"
	"github.com/remotehire/remotehire-backend/internal/handlers"
	"github.com/remotehire/remotehire-backend/internal/middleware"
	"github.com/remotehire/remotehire-backend/internal/routes"
	"github.com/remotehire/remotehire-backend/internal/services"
	"github.com/remotehire/remotehire-backend/internal/storage"
	"github.com/remotehire/remotehire-backend/pkg/utils"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Tokens cannot be signed or verified without a secret; refuse to start.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set. Generate one with: openssl rand -base64 32")
	}

	// The encryption key seals OTP blobs; every account flow needs it.
	encryptionKey, err := utils.ParseEncryptionKey(cfg.EncryptionKey)
	if err != nil {
		log.Printf("ENCRYPTION_KEY is invalid: %v", err)
		log.Fatal("Key must be base64-encoded 32 bytes. Generate with: openssl rand -base64 32")
	}
	log.Println("✅ Encryption key configured")

	// Log connection attempt (without showing password)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Ensure MongoDB indexes (unique emails, refresh-token lookups)
	if err := services.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Wire the auth subsystem. Tokens carry no expiry; sessions end when the
	// refresh token leaves the registry.
	tokenService := auth.NewTokenService(cfg.JWTSecret, 0)
	otpService := auth.NewOTPService(encryptionKey, auth.DefaultOTPWindow)
	middleware.InitAuth(tokenService)
	handlers.Init(tokenService, otpService)

	// Outbound email for OTP delivery
	if emailService, err := services.NewEmailService(cfg); err != nil {
		log.Printf("Warning: email service not configured: %v", err)
		log.Println("OTP codes will be stored but not delivered")
	} else {
		handlers.InitEmailService(emailService)
		log.Println("✅ Email service initialized")
	}

	// S3 asset service (existence checks, signed URLs, duplicate detection)
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" && cfg.AWSBucketName != "" {
		assetService, err := services.NewAssetService(context.Background(), cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize asset service: %v", err)
			log.Println("File checks and signed URLs will not be available")
		} else {
			handlers.InitAssetService(assetService)
			log.Println("✅ Asset service initialized")
		}
	} else {
		log.Println("Warning: AWS credentials not found. File checks and signed URLs will not be available")
	}

	// Direct upload backend (S3 or Cloudinary by STORAGE_BACKEND)
	if provider, err := storage.NewProvider(context.Background(), cfg); err != nil {
		log.Printf("Warning: failed to initialize upload provider: %v", err)
		log.Println("File uploads will not be available")
	} else {
		handlers.InitUploadProvider(provider)
		log.Printf("✅ Upload provider initialized (%s)", cfg.StorageBackend)
	}

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → LoginRateLimit; non-production keeps the
	// Redis-based per-IP limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Printf("🚀 RemoteHire backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
