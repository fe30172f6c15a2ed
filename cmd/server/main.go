package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"                    // Loads .env files into the process environment
	"github.com/labstack/echo/v4"                 // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo built-in middleware (CORS)

	"github.com/bizmatch/miniapp-backend/internal/config"     // Internal config loader
	"github.com/bizmatch/miniapp-backend/internal/database"   // MySQL connection pool
	"github.com/bizmatch/miniapp-backend/internal/handler"    // HTTP handlers
	"github.com/bizmatch/miniapp-backend/internal/middleware" // Rate limiting and caching middleware
	"github.com/bizmatch/miniapp-backend/internal/queue"      // Background event consumer
	"github.com/bizmatch/miniapp-backend/internal/repository" // Data access layer
	"github.com/bizmatch/miniapp-backend/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil { // Bootstrap tables on an empty database
		log.Fatalf("schema: %v", err)
	}

	// Redis backs the rate limiter and the response cache.  A nil client
	// simply disables both; the API keeps working without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)       // Principal store
	requests := repository.NewRequestRepo(db) // Request store

	authHandler := handler.NewAuthHandler(cfg, users)
	userHandler := handler.NewUserHandler(users)
	requestHandler := handler.NewRequestHandler(requests)

	// Consume request.events in the background; the loop reconnects on its
	// own and never takes the HTTP server down with it.
	go func() {
		if err := queue.StartRequestConsumer(); err != nil {
			log.Printf("request consumer stopped: %v", err)
		}
	}()

	e := echo.New()      // Create Echo instance
	e.Use(echomw.CORS()) // The mini app is served from a different origin than the API
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, limiter)
	router.RegisterAPI(e, userHandler, requestHandler, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
