package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mgavilanes/campline-be/internal/api"
	"github.com/mgavilanes/campline-be/internal/auth"
	"github.com/mgavilanes/campline-be/internal/avatar"
	"github.com/mgavilanes/campline-be/internal/config"
	"github.com/mgavilanes/campline-be/internal/database"
	"github.com/mgavilanes/campline-be/internal/logger"
	"github.com/mgavilanes/campline-be/internal/monitoring"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/mgavilanes/campline-be/internal/session"
	"github.com/mgavilanes/campline-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	auth.SetSecret(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the refresh session store
	sessions, err := session.New(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to session store")
	}
	defer sessions.Close()

	// Set up the avatar blob store
	avatars, err := avatar.NewStore(cfg.AvatarDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize avatar store")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	departmentService := services.NewDepartmentService(db)
	eventService := services.NewEventService(db, hub)
	announcementService := services.NewAnnouncementService(db, hub)
	accessService := services.NewAccessService(db)
	interchangeService := services.NewInterchangeService(eventService, departmentService, userService)

	// Set up and run the background host stats updater
	statsUpdater := monitoring.NewStatsUpdater(hub)
	go statsUpdater.Run()

	// Set up and run the daily digest scheduler
	digest, err := monitoring.NewDigestScheduler(eventService, announcementService, cfg.DigestCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize digest scheduler")
	}
	go digest.Run()

	// Set up router
	router := api.NewRouter(hub, sessions, avatars, statsUpdater,
		userService, eventService, departmentService, announcementService,
		accessService, interchangeService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statsUpdater.Stop()
	digest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
