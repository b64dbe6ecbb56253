// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/chat"
	"github.com/imadgeboyega/datemate-backend/internal/common/database"
	"github.com/imadgeboyega/datemate-backend/internal/common/ratelimit"
	"github.com/imadgeboyega/datemate-backend/internal/config"
	"github.com/imadgeboyega/datemate-backend/internal/course"
	"github.com/imadgeboyega/datemate-backend/internal/generator"
	"github.com/imadgeboyega/datemate-backend/internal/onboarding"
	"github.com/imadgeboyega/datemate-backend/internal/quest"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting DateMate API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("✅ Configuration loaded (environment: %s)", cfg.Environment)

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL, database.DefaultPoolConfig)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	sqlxDB := database.WrapSQLX(db)
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	switch {
	case err != nil:
		log.Printf("⚠️  Redis unavailable (%v); recommendation cache and sign-in throttling disabled", err)
	case redisClient == nil:
		log.Println("⚠️  REDIS_URL not set; recommendation cache and sign-in throttling disabled")
	default:
		defer redisClient.Close()
		log.Println("✅ Connected to Redis")
	}

	// 5. Run migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Migrations completed")

	// 6. Auth
	log.Println("\n🔐 Step 6: Initializing authentication system...")
	authService := auth.NewService(
		auth.NewPostgresRepository(db),
		auth.NewAttemptTracker(redisClient, cfg.LoginAttemptsMax, cfg.LoginAttemptsWindow),
		&auth.Config{
			JWTSecret:          cfg.JWTSecret,
			AccessTokenExpiry:  cfg.AccessTokenExpiry,
			RefreshTokenExpiry: cfg.RefreshTokenExpiry,
			BCryptCost:         cfg.BCryptCost,
		},
	)
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Auth system initialized")

	// 7. Onboarding
	log.Println("\n🧭 Step 7: Initializing onboarding...")
	onboardingService := onboarding.NewService(onboarding.NewPostgresRepository(sqlxDB))
	onboardingHandler := onboarding.NewHandler(onboardingService)
	log.Println("✅ Onboarding initialized")

	// 8. LLM client (optional)
	log.Println("\n🤖 Step 8: Configuring LLM endpoint...")
	llmClient := generator.NewClient(generator.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	var (
		courseGenerator course.Generator
		chatModel       generator.Completer
	)
	if llmClient != nil {
		courseGenerator = generator.NewCourseGenerator(llmClient)
		chatModel = llmClient
		log.Printf("✅ LLM endpoint configured (model: %s)", cfg.LLMModel)
	} else {
		log.Println("⚠️  LLM_BASE_URL not set; course generation disabled, chat uses canned replies")
	}

	// 9. Courses
	log.Println("\n🗺️  Step 9: Initializing course store...")
	courseRepo := course.NewPostgresRepository(sqlxDB)
	courseService := course.NewService(
		courseRepo,
		onboardingService,
		courseGenerator,
		course.NewRedisCache(redisClient, cfg.RecommendationCacheTTL),
	)
	courseHandler := course.NewHandler(courseService)
	if cfg.SeedSampleCourses {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := course.SeedSampleCourses(seedCtx, courseRepo)
		cancel()
		if err != nil {
			log.Printf("⚠️  Failed to seed sample courses: %v", err)
		} else if n > 0 {
			log.Printf("✅ Seeded %d sample courses", n)
		}
	}
	log.Println("✅ Course store initialized")

	// 10. Quests
	log.Println("\n🏆 Step 10: Initializing quests...")
	var photos quest.PhotoStore
	if cfg.UseS3 {
		photos, err = quest.NewS3PhotoStore(cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("❌ Failed to initialize S3 photo storage: %v", err)
		}
		log.Printf("✅ Using S3 bucket %s for quest photos", cfg.S3BucketName)
	} else {
		photos = quest.NewLocalPhotoStore(cfg.LocalUploadDir, cfg.BaseURL+"/uploads")
		log.Printf("✅ Using local storage at %s for quest photos", cfg.LocalUploadDir)
	}
	questHandler := quest.NewHandler(quest.NewService(quest.NewPostgresRepository(sqlxDB), courseService, photos))

	// 11. Chat
	log.Println("\n💬 Step 11: Initializing chat...")
	chatHandler := chat.NewHandler(chat.NewService(chat.NewPostgresRepository(sqlxDB), onboardingService, chatModel))
	log.Println("✅ Chat initialized")

	// 12. Background jobs
	log.Println("\n⏱️  Step 12: Starting background jobs...")
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	generateLimiter := ratelimit.NewPerMinute(cfg.GenerateRatePerMinute, 1)
	chatLimiter := ratelimit.NewPerMinute(cfg.ChatRatePerMinute, 5)
	generateLimiter.StartCleanup(jobsCtx, 5*time.Minute)
	chatLimiter.StartCleanup(jobsCtx, 5*time.Minute)
	go startSessionCleanup(jobsCtx, authService, cfg.SessionCleanupInterval)
	log.Println("✅ Background jobs started")

	// 13. Routes
	log.Println("\n🛣️  Step 13: Setting up routes...")
	router := mux.NewRouter()

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	router.HandleFunc("/health", healthCheck(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authHandler.RegisterRoutes(router, authMiddleware)
	onboarding.RegisterRoutes(router, onboardingHandler, authMiddleware)
	chat.RegisterRoutes(router, chatHandler, authMiddleware, chatLimiter)

	questRouter := chi.NewRouter()
	quest.RegisterRoutes(questRouter, questHandler, authMiddleware)
	router.PathPrefix("/api/v1/quests").Handler(questRouter)

	course.RegisterRoutes(router, courseHandler, authMiddleware, generateLimiter)
	log.Println("   ✅ Auth, onboarding, chat, quest and course routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 14. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// startSessionCleanup drops sessions whose refresh token has expired
func startSessionCleanup(ctx context.Context, authService auth.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			n, err := authService.CleanupSessions(cleanupCtx)
			cancel()
			if err != nil {
				log.Printf("❌ Session cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("🧹 Removed %d expired sessions", n)
			}
		}
	}
}
