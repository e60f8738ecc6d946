package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"invoice-management-backend/internal/config"
	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/gateway/gormstore"
	"invoice-management-backend/internal/gateway/localident"
	"invoice-management-backend/internal/gateway/supabase"
	"invoice-management-backend/internal/logger"
	"invoice-management-backend/internal/middleware"
	"invoice-management-backend/internal/routes"
)

func main() {
	// Load .env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// logger may not be configured yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.WithComponent("main")

	var data gateway.DataGateway
	var identity gateway.IdentityGateway
	switch cfg.DataBackend {
	case config.BackendSupabase:
		client := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
		data, identity = client, client
	case config.BackendPostgres:
		store, err := gormstore.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		data = store
		identity = localident.New(store, cfg.JWTSecret)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	// CORS config: the API is meant to be hosted anywhere
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.RegisterRoutes(r, data, identity, cfg.RequireAuth)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.DataBackend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
