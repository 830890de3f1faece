package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukapos/backend/internal/config"
	"github.com/dukapos/backend/internal/database"
	"github.com/dukapos/backend/internal/handlers"
	mW "github.com/dukapos/backend/internal/middleware"
	"github.com/dukapos/backend/internal/services"
	"github.com/dukapos/backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	quickpayCfg := config.LoadQuickPayConfig()

	// Initialize storage
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// One-time schema patch linking receipts to POS invoices; idempotent,
	// safe on every startup.
	if err := store.ApplyReceiptLinkPatch(context.Background(), db); err != nil {
		log.Fatalf("Failed to apply receipt link patch: %v", err)
	}

	// Stores
	channelStore := store.NewChannelStore(db)
	providerStore := store.NewProviderStore(db)
	gatewayStore := store.NewGatewayStore(db)
	receiptStore := store.NewReceiptStore(db)
	invoiceStore := store.NewInvoiceStore(db)
	customerStore := store.NewCustomerStore(db)
	requestStore := store.NewPaymentRequestStore(db)

	// Services
	configService := services.NewConfigService(channelStore, providerStore, redisClient, quickpayCfg)
	paymentsService := services.NewPaymentsService(receiptStore, configService, quickpayCfg)
	reconcileService := services.NewReconcileService(receiptStore, invoiceStore, channelStore, configService)
	customerService := services.NewCustomerService(customerStore)
	requestService := services.NewPaymentRequestService(invoiceStore, providerStore, gatewayStore, requestStore, configService, redisClient, quickpayCfg)
	diagnosticsService := services.NewDiagnosticsService(channelStore, providerStore, gatewayStore, quickpayCfg)

	quickpayHandler := handlers.NewQuickPayHandler(
		configService, paymentsService, reconcileService,
		customerService, requestService, diagnosticsService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Diagnostics stays open so a misconfigured till can still be
		// inspected before auth is set up.
		r.Get("/quickpay/diagnostics", quickpayHandler.Diagnostics)

		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Post("/quickpay", quickpayHandler.Process)
			r.Get("/quickpay/payment-requests/{name}/qr", quickpayHandler.PaymentRequestQR)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
