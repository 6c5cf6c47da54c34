package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/famledger/famledger/internal/config"
	"github.com/famledger/famledger/internal/database"
	"github.com/famledger/famledger/internal/notify"
	"github.com/famledger/famledger/internal/repository"
	"github.com/famledger/famledger/internal/scheduler"
	"github.com/famledger/famledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	reminderRepo := repository.NewReminderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	svc := service.New(reminderRepo, transactionRepo)

	var notifiers []notify.Notifier
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, notify.NewEmailNotifier(notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
			Currency: cfg.CurrencySymbol,
		}))
		log.Printf("Email notifications enabled (to %s)", cfg.EmailTo)
	}
	if cfg.TelegramEnabled() {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, cfg.CurrencySymbol)
		if err != nil {
			log.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		notifiers = append(notifiers, tn)
		log.Printf("Telegram notifications enabled (chat %d)", cfg.TelegramChatID)
	}
	if len(notifiers) == 0 {
		log.Println("Warning: no notification channel configured, sweeps will only log")
	}

	sched, err := scheduler.New(svc, notifiers, cfg.SweepRule, cfg.WindowDays)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Starting sweep scheduler (rule %q, window %d days)...", cfg.SweepRule, cfg.WindowDays)
	sched.Start(ctx)
}
