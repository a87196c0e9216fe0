package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/auth"
	"lead-capture-go/internal/broadcast"
	"lead-capture-go/internal/export"
	"lead-capture-go/internal/handler"
	"lead-capture-go/internal/notification"
	"lead-capture-go/internal/storage"
	"lead-capture-go/internal/subscription"
	"lead-capture-go/internal/table"
	"lead-capture-go/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Open the two stores
	stores, err := storage.Open(cfg.PrimaryDBPath, cfg.BroadcastDBPath)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	// Messaging capability
	telegramClient := notification.NewTelegramClient(notification.TelegramConfig{
		APIToken: cfg.TelegramBotToken,
		BaseURL:  cfg.TelegramAPIURL,
	})

	// Initialize services
	credentials := auth.NewCredentialStore(cfg.AdminPasswordHash)
	broadcastLog := broadcast.NewLog(stores.Log)
	tableManager := table.NewManager(stores.Primary, stores.Log)
	subscriptionService := subscription.NewService(stores.Primary, broadcastLog, telegramClient)
	dispatcher := broadcast.NewDispatcher(stores.Primary, broadcastLog, telegramClient)
	exporter := export.NewAdapter(tableManager)

	// Set up Gin router
	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	handler.NewRouter(router, handler.Services{
		Credentials:  credentials,
		Subscription: subscriptionService,
		Tables:       tableManager,
		Dispatcher:   dispatcher,
		Exporter:     exporter,
	})

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
