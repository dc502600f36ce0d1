package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"webshop-backend/internal/client"
	"webshop-backend/internal/config"
	"webshop-backend/internal/logger"
	"webshop-backend/internal/repository"
	"webshop-backend/internal/server"
	"webshop-backend/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := client.InitPostgresClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("database init failed", "err", err)
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)
	mailer := client.NewSMTPMailer(&cfg.SMTP)

	// the shop keeps selling when the bot is down
	var notifier client.Notifier
	notifier, err = client.NewTelegramNotifier(&cfg.Telegram)
	if err != nil {
		log.Warnw("telegram notifier unavailable", "err", err)
		notifier = client.NoopNotifier{}
	}

	orderRepo := repository.NewOrderRepository(db)
	callRequestRepo := repository.NewCallRequestRepository(db)

	orderService := service.NewOrderService(orderRepo, stripeClient, cfg.SiteURL, log)
	callRequestService := service.NewCallRequestService(callRequestRepo)
	settlementService := service.NewSettlementService(orderRepo, stripeClient, mailer, notifier, log)
	sweepService := service.NewSweepService(orderRepo, mailer, cfg.SiteURL, log)

	srv := server.NewServer(
		orderService,
		callRequestService,
		settlementService,
		sweepService,
		stripeClient,
		&cfg.Cron,
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Infow("starting http server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http server error", "err", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Infow("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatalw("http server shutdown error", "err", err)
	}
}
