// @title           Custom Case Backend API
// @version         1.0.0
// @description     Backend API for a custom phone case storefront. Handles image uploads, design configuration and compositing, checkout via Stripe, and order fulfillment webhooks.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"custom-case-backend/docs"
	"custom-case-backend/internal/billing"
	"custom-case-backend/internal/config"
	"custom-case-backend/internal/configurator"
	"custom-case-backend/internal/database"
	"custom-case-backend/internal/handlers"
	"custom-case-backend/internal/middleware"
	"custom-case-backend/internal/services"
	"custom-case-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Point the swagger docs at the public host.
	if serverURL, err := url.Parse(cfg.ServerURL); err == nil && serverURL.Host != "" {
		docs.SwaggerInfo.Host = serverURL.Host
		if serverURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
	} else {
		defer migrator.Close()
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: Migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	stripeClient := billing.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	uploadService := services.NewUploadService(dbClient, storageClient, realtimeClient)
	designService := services.NewDesignService(dbClient, storageClient, realtimeClient, configurator.NewHTTPImageFetcher())
	checkoutService := services.NewCheckoutService(dbClient, stripeClient, realtimeClient, cfg.ServerURL)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	configurationsHandler := handlers.NewConfigurationsHandler(dbClient, storageClient)
	designHandler := handlers.NewDesignHandler(designService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	authHandler := handlers.NewAuthHandler(checkoutService)
	webhookHandler := handlers.NewStripeWebhookHandler(stripeClient, checkoutService)

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/auth/callback", authHandler.AuthCallback)

	api.POST("/configurations/upload", uploadHandler.Upload)
	api.GET("/configurations/:config_id", configurationsHandler.GetConfiguration)
	api.GET("/configurations/:config_id/image", configurationsHandler.GetImage)
	api.DELETE("/configurations/:config_id", configurationsHandler.DeleteConfiguration)
	api.PUT("/configurations/:config_id/options", configurationsHandler.SaveOptions)
	api.POST("/configurations/:config_id/finalize", designHandler.Finalize)

	api.POST("/checkout", checkoutHandler.CreateCheckoutSession)

	// Webhook (no auth, verified via Stripe signature)
	router.POST("/api/v1/webhooks/stripe", webhookHandler.HandleWebhook)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
