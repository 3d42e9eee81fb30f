package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/Faeyinn/lestari.in---beyonder-team/config"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/chatbot"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/handler"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/messaging"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/repository"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sess := session.New()
	client := upstream.NewClient(cfg.Upstream.BaseURL)
	gemini := chatbot.NewGeminiClient(cfg.Gemini.APIKey).WithModel(cfg.Gemini.Model)

	// Optional notification pipeline: verified reports are recorded in a
	// Postgres outbox and published to RabbitMQ by a background worker.
	var outboxRepo *repository.OutboxRepository
	if cfg.MessagingEnabled {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.DBName,
		)

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Println("Connected to database")

		rmq, err := messaging.NewRabbitMQ(
			cfg.RabbitMQ.Host,
			cfg.RabbitMQ.Port,
			cfg.RabbitMQ.User,
			cfg.RabbitMQ.Password,
		)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		log.Println("Connected to RabbitMQ")

		outboxRepo = repository.NewOutboxRepository(db)

		worker := messaging.NewOutboxWorker(outboxRepo, rmq)
		worker.Start()
		defer worker.Stop()
	} else {
		log.Println("Messaging disabled; verification events will not be published")
	}

	// Initialize services
	authService := service.NewAuthService(client, sess)
	reportService := service.NewReportService(client, sess, outboxRepo)
	leaderboardService := service.NewLeaderboardService(client, sess)
	chatService := service.NewChatService(gemini, sess)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService, authService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	chatHandler := handler.NewChatHandler(chatService)

	// Setup Gin
	r := gin.Default()

	// Health check
	r.GET("/health", authHandler.Health)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Admin routes (session required)
	admin := r.Group("/", handler.RequireSession(sess))
	{
		admin.GET("/reports", reportHandler.List)
		admin.POST("/reports/refresh", reportHandler.Refresh)
		admin.GET("/reports/stats", reportHandler.Stats)
		admin.GET("/reports/summary", reportHandler.Summary)
		admin.GET("/reports/markers", reportHandler.Markers)
		admin.GET("/reports/:id", reportHandler.Detail)
		admin.POST("/reports/:id/verify", reportHandler.Verify)
		admin.POST("/reports/:id/reject", reportHandler.Reject)

		admin.GET("/leaderboard", leaderboardHandler.Top)
		admin.POST("/chat", chatHandler.Send)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Admin service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
