package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/config"
	"github.com/anish435/Hotel-Inventory-management-system/internal/infra"
	"github.com/anish435/Hotel-Inventory-management-system/internal/notify"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"
	"github.com/anish435/Hotel-Inventory-management-system/internal/router"
	"github.com/anish435/Hotel-Inventory-management-system/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure the fixed room roster exists before taking traffic.
	roomRepo := repository.NewRoomRepository(db)
	if err := roomRepo.Seed(ctx, cfg.RoomNumberList()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed rooms")
	}

	// Change feed broker — fans Redis pub/sub events out to SSE subscribers.
	broker := notify.NewBroker(rdb)
	go broker.Run(ctx)

	// Goroutine worker pool for async jobs (receipt PDFs, ledger emails).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	saleRepo := repository.NewSaleRepository(db)
	mailer := infra.NewMailer(cfg)
	workerHandlers := &worker.WorkerHandlers{
		Receipt: worker.NewReceiptWorker(saleRepo, cfg.PropertyName, cfg.ReceiptStoragePath),
		Email:   worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, broker)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /v1/events holds long-lived SSE streams.
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("inn POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
