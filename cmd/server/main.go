// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/astraid/astraid/internal/config"
	"github.com/astraid/astraid/internal/domain"
	"github.com/astraid/astraid/internal/handlers"
	"github.com/astraid/astraid/internal/middleware"
	"github.com/astraid/astraid/internal/ratelimit"
	chatrepo "github.com/astraid/astraid/internal/repository/chat"
	guiderepo "github.com/astraid/astraid/internal/repository/guide"
	planrepo "github.com/astraid/astraid/internal/repository/plan"
	userrepo "github.com/astraid/astraid/internal/repository/user"
	"github.com/astraid/astraid/internal/services"
	"github.com/astraid/astraid/internal/services/admin_services"
	"github.com/astraid/astraid/internal/services/ai"
	chatservice "github.com/astraid/astraid/internal/services/chat"
	"github.com/astraid/astraid/internal/services/guide_services"
	"github.com/astraid/astraid/internal/services/plan_services"
	"github.com/astraid/astraid/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("astraid")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.TrainingGuide{},
		&domain.TrainingPlan{},
		&domain.TrainingPlanStep{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	guideRepo := guiderepo.NewGuideRepository(db)
	planRepo := planrepo.NewPlanRepository(db)

	// --- Services ---
	// A missing OLLAMA_URL or GEMMA_MODEL disables the chat flow only;
	// guides, auth, plans and admin keep working.
	var streamProvider ai.StreamProvider
	aiConfig := ai.DefaultConfig()
	aiConfig.BaseURL = cfg.OllamaURL
	aiConfig.Model = cfg.GemmaModel
	aiConfig.ResponseHeaderTimeout = time.Duration(cfg.OllamaTimeoutSeconds) * time.Second
	if provider, err := ai.NewOllamaProvider(aiConfig, logger); err != nil {
		log.Printf("WARNING: chat flow disabled: %v", err)
	} else {
		streamProvider = provider
	}

	chatService, err := chatservice.NewService(chatservice.DefaultConfig(), chatRepo, guideRepo, streamProvider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	userService := user_services.NewUserService(userRepo, logger)
	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)
	guideService := guide_services.NewGuideService(guideRepo, logger)
	planService := plan_services.NewPlanService(planRepo, logger)
	adminService := admin_services.NewAdminService(userRepo, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, authService)
	chatHandler := handlers.NewChatHandler(chatService)
	guideHandler := handlers.NewGuideHandler(guideService)
	planHandler := handlers.NewPlanHandler(planService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)
	optionalAuthMiddleware := middleware.NewOptionalJWTMiddleware(authService)
	adminMiddleware := middleware.RequireAdmin(userRepo)
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Stop()
	authRateLimit := middleware.RateLimitMiddleware(authLimiter, "auth")

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.Handle("/register", authRateLimit(http.HandlerFunc(authHandler.Register))).Methods("POST")
	r.Handle("/login", authRateLimit(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	r.HandleFunc("/api/guides", guideHandler.ListGuides).Methods("GET")
	r.HandleFunc("/api/guides/{slug}", guideHandler.GetGuideBySlug).Methods("GET")

	// --- Chat Routes (guests allowed; identity attached when present) ---
	chatRoutes := r.PathPrefix("/api").Subrouter()
	chatRoutes.Use(optionalAuthMiddleware)
	chatRoutes.HandleFunc("/chat", chatHandler.HandleChatTurn).Methods("POST")
	chatRoutes.HandleFunc("/chats/{id}", chatHandler.GetChatByID).Methods("GET")

	// --- Protected Routes (for signed-in users) ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/training-plans", planHandler.GetUserPlans).Methods("GET")
	api.HandleFunc("/training-plans", planHandler.CreatePlan).Methods("POST")

	// --- Admin Routes ---
	adminApiRoutes := r.PathPrefix("/api/admin").Subrouter()
	adminApiRoutes.Use(authMiddleware)
	adminApiRoutes.Use(adminMiddleware)
	adminApiRoutes.HandleFunc("/users", adminHandler.GetAllUsersHandler).Methods("GET")
	adminApiRoutes.HandleFunc("/users/{id:[0-9]+}/role", adminHandler.ChangeRoleHandler).Methods("PATCH")
	adminApiRoutes.HandleFunc("/users/{id:[0-9]+}/status", adminHandler.SetStatusHandler).Methods("PATCH")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("AstrAID server starting on port %s", cfg.ServerPort)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
