package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/abinijav/absensi-digital/internal/app"
	"github.com/abinijav/absensi-digital/internal/config"
	"github.com/abinijav/absensi-digital/internal/db"
	"github.com/abinijav/absensi-digital/internal/jobs"
	"github.com/abinijav/absensi-digital/internal/logging"
	"github.com/abinijav/absensi-digital/internal/observability"
	"github.com/abinijav/absensi-digital/internal/settings"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()
	sugar := lg.Sugar

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("db connect failed", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		sugar.Fatalw("migrations failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := &settings.Cache{}
	if err := cache.Refresh(ctx, database); err != nil {
		// the gate stays closed until the first successful refresh
		sugar.Warnw("initial settings load failed", "err", err)
		observability.CaptureErr(err)
	}

	runner := jobs.New(ctx)
	runner.Every(time.Minute, "settings_refresh", func(ctx context.Context) error {
		if err := cache.Refresh(ctx, database); err != nil {
			sugar.Warnw("settings refresh failed", "err", err)
			return err
		}
		return nil
	})

	app.StartHTTP(ctx, cfg.HTTPAddr, database)
	sugar.Infow("server started", "addr", cfg.HTTPAddr, "env", cfg.Env, "version", version)

	<-ctx.Done()
	sugar.Infow("shutting down")
}
