// Package main is the entry point for the Text Analyzer API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/app"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/config"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/handlers"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/logger"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/middleware"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/router"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Printf("🚀 Text Analyzer API %s starting...", Version)
	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, session_ttl=%s", cfg.Port, cfg.GinMode, cfg.SessionTTL)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Open the Session Store
	store, err := session.Open(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("❌ Failed to open session store: %v", err)
	}
	defer store.Close()
	log.Println("✅ Session store ready (in-memory)")

	// Step 3: Create Services
	dispatcher, err := app.NewDispatcher(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create services: %v", err)
	}
	log.Println("✅ Analysis services initialized")

	// Step 4: Rate Limiting
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	defer rateLimiter.Stop()
	if cfg.RateLimit > 0 {
		log.Printf("✅ Rate limit: %.1f req/s per client (burst %d)", cfg.RateLimit, cfg.RateBurst)
	} else {
		log.Println("⚠️  Rate limiting disabled (RATE_LIMIT=0)")
	}

	// Step 5: Setup HTTP Router
	h := handlers.NewHandler(store, dispatcher, cfg.JWTSecret, cfg.MaxUploadSize)
	r := router.Setup(h, rateLimiter, cfg.AllowedOrigins)

	// Step 6: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // speech synthesis of a long document takes a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 API docs: http://localhost:%s/api/docs", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 7: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
