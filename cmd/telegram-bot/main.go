package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-fitness-coach/internal/app"
	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/database"
	"ai-fitness-coach/internal/llm"
	"ai-fitness-coach/internal/metrics"
	"ai-fitness-coach/internal/progress"
	"ai-fitness-coach/internal/storage"
	"ai-fitness-coach/internal/telegram"
	"ai-fitness-coach/internal/videolink"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	svc := coach.NewService(nil)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	switch {
	case err == nil:
		defer geminiClient.Close()
		svc = coach.NewService(geminiClient)
	case errors.Is(err, llm.ErrNoAPIKey):
		log.Println("GEMINI_API_KEY not set: plan generation will report a missing credential")
	default:
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	slots, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	logs := progress.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	application := app.NewApp(svc, slots, logs, metricsStore)
	if err := application.Restore(); err != nil {
		log.Fatalf("Failed to restore saved state: %v", err)
	}

	bot, err := telegram.NewBot(cfg, application, videolink.NewPreviewer(), metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
