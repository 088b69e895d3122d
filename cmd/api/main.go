package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hiring-assistant/config"
	_ "go-hiring-assistant/docs" // Important for Swagger
	"go-hiring-assistant/internal/app"
	v1 "go-hiring-assistant/internal/delivery/http/v1"
	"go-hiring-assistant/pkg/logger"
	"go-hiring-assistant/pkg/sessiontoken"

	"github.com/gin-gonic/gin"
)

// @title           Hiring Assistant API
// @version         1.0
// @description     Screening chatbot that collects candidate details, asks generated technical questions and scores the answers.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting hiring assistant", "port", cfg.Port, "flow", cfg.InterviewFlow)
	gin.SetMode(cfg.GinMode)

	// 3. Setup storage, providers and usecases
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	container, err := app.Build(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// 4. Session cookie signer
	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
	}
	signer := sessiontoken.NewSigner(secret, cfg.SessionTTL)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		InterviewUC: container.InterviewUC,
		ExportUC:    container.ExportUC,
		HealthUC:    container.HealthUC,
		Signer:      signer,
		Config:      cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Completion calls can take up to LLM_TIMEOUT twice per request
		WriteTimeout: 2*cfg.LLMTimeout + 10*time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(b)
}
