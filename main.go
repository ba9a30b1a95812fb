// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storepulse/api/database"
	"storepulse/api/handlers"
	"storepulse/api/middleware"
	"storepulse/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL: abandoned carts, statistics, reports, commerce tables ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- ClickHouse: the append-only event log ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Redis: optional cache in front of insights/dashboard ---
	redisClient, err := database.NewRedisClient()
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// --- Stores ---
	eventStore := store.NewEventStore(chClient)
	abandonmentStore := store.NewAbandonmentStore(dbClient.DB)
	orderLedger := store.NewOrderLedger(dbClient.DB)
	catalogStore := store.NewCatalogStore(dbClient.DB)
	productStats := store.NewProductStatsStore(dbClient.DB, eventStore, abandonmentStore, orderLedger, catalogStore)
	reportStore := store.NewReportStore(dbClient.DB)
	reportGenerator := store.NewReportGenerator(reportStore, orderLedger, abandonmentStore)
	insightsCache := store.NewInsightsCache(redisClient)

	// --- Handlers ---
	eventHandlers := handlers.NewEventHandlers(eventStore)
	abandonmentHandlers := handlers.NewAbandonmentHandlers(abandonmentStore)
	productStatsHandlers := handlers.NewProductStatsHandlers(productStats)
	reportHandlers := handlers.NewReportHandlers(reportStore, reportGenerator)
	insightsHandlers := handlers.NewInsightsHandlers(productStats, abandonmentStore, eventStore, insightsCache)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		analytics := api.Group("/analytics")
		{
			// Recording endpoints accept anonymous sessions; the actor id is
			// attached when a valid token is present.
			recording := analytics.Group("/")
			recording.Use(middleware.AuthOptional())
			{
				recording.POST("/events", eventHandlers.RecordEvent)
				recording.POST("/abandoned-carts/:cartId", abandonmentHandlers.Record)
			}

			// Read-side analytics require a valid identity token.
			protected := analytics.Group("/")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/events/user/:userId", eventHandlers.ListByActor)
				protected.GET("/events/kind/:kind", eventHandlers.ListByKind)
				protected.GET("/events/summary", eventHandlers.Summary)

				protected.GET("/abandoned-carts", abandonmentHandlers.List)
				protected.GET("/abandoned-carts/statistics", abandonmentHandlers.Statistics)
				protected.GET("/abandoned-carts/reasons", abandonmentHandlers.Reasons)

				protected.POST("/products/:productId/recompute", productStatsHandlers.Recompute)
				protected.GET("/products/top", productStatsHandlers.Top)
				protected.GET("/products/bottom", productStatsHandlers.Bottom)
				protected.GET("/products/trending", productStatsHandlers.Trending)

				protected.POST("/reports/generate", reportHandlers.Generate)
				protected.GET("/reports/period/:period", reportHandlers.GetByPeriod)
				protected.POST("/reports/compare", reportHandlers.Compare)

				protected.GET("/insights", insightsHandlers.Insights)
				protected.GET("/dashboard", insightsHandlers.Dashboard)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Analytics API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Analytics API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
