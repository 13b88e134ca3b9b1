package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blockedby/starred-jobs/internal/database"
	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/nats"
	"github.com/blockedby/starred-jobs/internal/publisher"
	"github.com/blockedby/starred-jobs/internal/repository"
	"github.com/blockedby/starred-jobs/internal/service"
	"github.com/blockedby/starred-jobs/internal/web"
	"github.com/blockedby/starred-jobs/internal/web/handlers"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the favorites HTTP backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.HTTPPort = servePort
		}

		if err := logger.Init(cfg.LogLevel, cfg.LogFile, true); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log := logger.Get()
		log.Info().Msg("starting favorites backend")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		hub := web.NewHub()
		go hub.Run()
		defer hub.Stop()

		publishers := []service.EventPublisher{hub}
		if cfg.NatsURL != "" {
			nc, err := nats.New(ctx, cfg.NatsURL)
			if err != nil {
				log.Warn().Err(err).Msg("failed to connect to nats, stream publishing disabled")
			} else {
				defer nc.Close()
				publishers = append(publishers, publisher.NewNATSPublisher(nc))
			}
		}

		favoritesRepo := repository.NewFavoritesRepository(db.GORM)
		usersRepo := repository.NewUsersRepository(db.GORM)
		favoritesSvc := service.NewFavoritesService(favoritesRepo, publishers...)

		server := web.NewServer(&web.Config{
			Port:          cfg.HTTPPort,
			CORSOrigins:   web.ParseOrigins(cfg.CORSOrigins),
			DefaultUserID: cfg.DefaultUserID,
		}, hub)
		server.RegisterFavoritesHandler(handlers.NewFavoritesHandler(favoritesSvc))
		server.RegisterUsersHandler(handlers.NewUsersHandler(usersRepo))

		errCh := make(chan error, 1)
		go func() {
			log.Info().Int("port", cfg.HTTPPort).Str("dialect", string(db.Dialect)).Msg("starting web server")
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("received shutdown signal")
		case err := <-errCh:
			return fmt.Errorf("server: %w", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}

		log.Info().Msg("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides HTTP_PORT)")
}
