package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/alphavelocity/moneyclip/internal/db"
	"github.com/alphavelocity/moneyclip/internal/handlers"
	"github.com/alphavelocity/moneyclip/internal/logger"
	"github.com/alphavelocity/moneyclip/internal/models"
	"github.com/alphavelocity/moneyclip/internal/repositories"
	"github.com/alphavelocity/moneyclip/internal/services"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Database connection
	config := db.NewConfig()
	database, err := db.Connect(config)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Test database connection
	if err := database.Health(); err != nil {
		zapLogger.Fatal("Database health check failed", zap.Error(err))
	}
	zapLogger.Info("Database connection established", zap.String("driver", config.Driver))

	// sqlite ledgers migrate in place; postgres deployments run migrations/
	if database.IsSQLite() {
		if err := database.AutoMigrate(&models.FXRate{}, &models.Asset{}, &models.Trade{}); err != nil {
			zapLogger.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Initialize repositories
	rateRepo := repositories.NewFXRateRepository(database)
	tradeRepo := repositories.NewTradeRepository(database)
	assetRepo := repositories.NewAssetRepository(database)

	// Initialize services
	fxService := services.NewFXService(rateRepo, zapLogger)
	portfolioService := services.NewPortfolioService(tradeRepo, assetRepo, zapLogger)

	// Initialize handlers
	fxHandler := handlers.NewFXHandler(fxService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// Setup HTTP server
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "moneyclip-valuation",
		})
	})

	// API endpoints
	router.HandleFunc("/api/fx/convert", fxHandler.HandleConvert)
	router.HandleFunc("/api/fx/rates", fxHandler.HandleRates)
	router.HandleFunc("/api/portfolio/gains", portfolioHandler.HandleGains)
	router.HandleFunc("/api/portfolio/trades", portfolioHandler.HandleTrades)
	router.HandleFunc("/api/portfolio/assets", portfolioHandler.HandleAssets)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	// Get port from environment
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	zapLogger.Info("Server starting", zap.String("port", port))
	zapLogger.Fatal("Server stopped", zap.Error(http.ListenAndServe(":"+port, corsHandler(router))))
}
