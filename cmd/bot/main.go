package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/nikitkaralius/weeklypoll/internal/app"
	"github.com/nikitkaralius/weeklypoll/internal/config"
	"github.com/nikitkaralius/weeklypoll/internal/handlers"
	"github.com/nikitkaralius/weeklypoll/internal/jobs"
	"github.com/nikitkaralius/weeklypoll/internal/logging"
	"github.com/nikitkaralius/weeklypoll/internal/polls"
	"github.com/nikitkaralius/weeklypoll/internal/scheduler"
	"github.com/nikitkaralius/weeklypoll/internal/settings"
	"github.com/nikitkaralius/weeklypoll/internal/storage"
	"github.com/nikitkaralius/weeklypoll/internal/telegram"
	"github.com/nikitkaralius/weeklypoll/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional, env wins)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("cannot load config: %v", err)
	}
	log := logging.New(cfg.LogLevel, os.Stdout)

	pollAt, summaryAt, err := cfg.Schedules()
	if err != nil {
		log.Fatal(err)
	}
	labels, err := cfg.Labels()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store storage.Store
		pool  *pgxpool.Pool
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err = storage.NewPostgresPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("failed to create pgx pool: %v", err)
		}
		defer pool.Close()
		if err := utils.WaitForDB(ctx, pool, 2*time.Minute, 2*time.Second, log); err != nil {
			log.Fatal(err)
		}
		pg := storage.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = pg
	case config.StorageMemory:
		store = storage.NewMemoryStore()
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatalf("data dir: %v", err)
		}
		store = storage.NewFileStore(cfg.DataDir)
	}
	log.WithField("storage", cfg.Storage).Info("state store ready")

	bot, err := telegram.NewClient(cfg.BotToken, cfg.LogVerbose)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Authorized on account @%s", bot.Username())

	a := app.New(
		settings.Load(ctx, store, cfg.GroupChatID, log),
		polls.LoadLedger(ctx, store, log),
		bot, labels, log,
	)
	go func() { _ = a.Run(ctx) }()

	h := handlers.New(a, bot, bot.Username(), handlers.Schedule{Poll: pollAt, Summary: summaryAt}, log)

	if pool != nil {
		riverClient, err := jobs.NewClient(ctx, pool, a, pollAt, summaryAt)
		if err != nil {
			log.Fatal(err)
		}
		if err := riverClient.Start(ctx); err != nil {
			log.Fatalf("failed to start river client: %v", err)
		}
		defer jobs.Stop(riverClient, 10*time.Second, log)
	} else {
		sched := scheduler.New(scheduler.SystemClock{}, log)
		sched.Add("weekly_poll", pollAt, a.ScheduledPoll)
		sched.Add("weekly_summary", summaryAt, a.ScheduledSummary)
		for _, e := range sched.Entries() {
			log.WithField("job", e.Name).WithField("next", e.Next).Info("scheduled")
		}
		go func() { _ = sched.Run(ctx) }()
	}

	if cfg.WebhookURL == "" {
		log.Info("Bot is running (long polling)")
		bot.Poll(ctx, h, log)
		return
	}

	if err := bot.SetWebhook(cfg.WebhookURL, log); err != nil {
		log.Fatalf("failed to set webhook: %v", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/telegram/webhook", telegram.WebhookHandler(h))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		log.Infof("Service listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
}
