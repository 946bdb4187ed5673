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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/config"
	"github.com/paklite/bankportal/internal/database"
	"github.com/paklite/bankportal/internal/handlers"
	mW "github.com/paklite/bankportal/internal/middleware"
	"github.com/paklite/bankportal/internal/session"
	"github.com/paklite/bankportal/internal/web"
)

func main() {
	// Initialize config
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("api.base_url", "API_BASE_URL")
	viper.BindEnv("server.port", "PORT")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("session.cookie_name", "SESSION_COOKIE_NAME")
	viper.BindEnv("session.hash_key", "SESSION_HASH_KEY")
	viper.BindEnv("session.ttl_hours", "SESSION_TTL_HOURS")
	viper.BindEnv("client.timeout_seconds", "CLIENT_TIMEOUT_SECONDS")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	cfg := config.Get()
	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is required")
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize services
	store := session.NewStore(redisClient)
	sessions := session.NewManager(store, cfg.CookieName, []byte(cfg.HashKey), cfg.SessionTTL)
	client := bankclient.New(cfg.APIBaseURL, cfg.ClientTimeout)
	renderer := web.MustRenderer()
	h := handlers.New(client, sessions, renderer)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Static assets
	r.Handle("/static/*", http.StripPrefix("/static/", mW.StaticFileServer(web.StaticFS())))

	// Pages
	r.Mount("/", h.Routes())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
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
		log.Printf("Portal starting on :%s (backend %s)", port, cfg.APIBaseURL)
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
