package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/nats"
	"github.com/blockedby/starred-jobs/internal/publisher"
	"github.com/blockedby/starred-jobs/internal/service"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print favorite events from the NATS stream as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("consumer")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.NatsURL == "" {
			return errors.New("NATS_URL is required")
		}

		// stdout carries the events
		if err := logger.Init(cfg.LogLevel, cfg.LogFile, false); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log := logger.Get()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		nc, err := nats.New(ctx, cfg.NatsURL)
		if err != nil {
			return err
		}
		defer nc.Close()

		enc := json.NewEncoder(cmd.OutOrStdout())
		consumer := publisher.NewConsumer(nc, name, func(event service.FavoriteEvent) error {
			return enc.Encode(event)
		}, &log.Logger)

		stopConsumer, err := consumer.Start(ctx)
		if err != nil {
			return err
		}
		defer stopConsumer()

		<-ctx.Done()
		return nil
	},
}

func init() {
	eventsCmd.Flags().String("consumer", "starred_events_tail", "durable consumer name")
}
