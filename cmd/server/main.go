package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixdrop/config"
	"pixdrop/internal/adapters/drive"
	"pixdrop/internal/adapters/googleauth"
	httpdelivery "pixdrop/internal/delivery/http"
	"pixdrop/internal/delivery/http/controllers"
	"pixdrop/internal/delivery/http/middleware"
	"pixdrop/internal/repository/redis"
	"pixdrop/internal/services"
)

const serviceTimeout = 30 * time.Second

// @title PixDrop API
// @version 1.0
// @description Photo drop service: guests upload event photos straight into the event's shared folder.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	store, err := redis.NewEventStore(cfg.RedisURL, cfg.EventsKey)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	storage := drive.NewFileStorage(ctx, drive.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GoogleRefreshToken,
		RedirectURL:  cfg.OAuthRedirectURL(),
	})
	resolver := services.NewFolderResolver(storage)

	registry := services.NewEventRegistry(store, resolver, services.RegistryConfig{
		DefaultFolderID:    cfg.DriveFolderID,
		PublicBaseURL:      cfg.PublicBaseURL,
		FolderProvisioning: cfg.HasGoogleCredentials() && cfg.GoogleRefreshToken != "",
	}, logger, serviceTimeout)

	uploader := services.NewUploadService(storage, registry, services.UploaderConfig{
		DefaultFolderID: cfg.DriveFolderID,
		MakePublic:      cfg.DrivePublic,
		TmpDir:          cfg.UploadTmpDir,
	}, logger, serviceTimeout)

	eventController := controllers.NewEventController(logger, registry)
	uploadController := controllers.NewUploadController(logger, uploader)
	photoController := controllers.NewPhotoController(logger, storage)
	oauthController := controllers.NewOAuthController(logger, googleauth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL(),
	})
	adminController := controllers.NewAdminController(controllers.StatusConfig{
		HasGoogleCredentials: cfg.HasGoogleCredentials(),
		HasRefreshToken:      cfg.GoogleRefreshToken != "",
		HasRedis:             true,
		DefaultFolderID:      cfg.DriveFolderID,
		DrivePublic:          cfg.DrivePublic,
	})

	mux := httpdelivery.NewRouter(eventController, uploadController, photoController, oauthController, adminController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       time.Minute,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
