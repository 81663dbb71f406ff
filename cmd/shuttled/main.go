package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/example/campus-shuttle/internal/app"
	"github.com/example/campus-shuttle/internal/config"
	"github.com/example/campus-shuttle/internal/geo"
	httpapi "github.com/example/campus-shuttle/internal/http"
	"github.com/example/campus-shuttle/internal/logging"
	"github.com/example/campus-shuttle/internal/models"
	"github.com/example/campus-shuttle/internal/notify"
	"github.com/example/campus-shuttle/internal/payments"
	"github.com/example/campus-shuttle/internal/store"
	"github.com/example/campus-shuttle/internal/telemetry"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	// Persisted store: redis, then postgres, then in-memory.
	var st store.Store
	if cfg.RedisAddr != "" {
		st = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	} else if cfg.PGDSN != "" {
		if ps, err := store.NewPostgresStore(cfg.PGDSN); err == nil {
			st = ps
		} else {
			logger.Warn("postgres store unavailable, using memory", "error", err)
		}
	}
	if st == nil {
		st = store.NewMemoryStore()
	}

	var notifier notify.Notifier
	if cfg.NotifyEndpoint != "" {
		notifier = notify.NewPushNotifier(cfg.NotifyEndpoint, cfg.NotifyKey)
	} else {
		notifier = &notify.LogNotifier{Logger: logger}
	}

	var charger payments.Charger
	if cfg.StripeEnabled {
		charger = payments.NewStripeCharger()
	} else {
		charger = &payments.MockCharger{Logger: logger}
	}

	var locator geo.Locator
	if cfg.GeoEndpoint != "" {
		locator = geo.NewHTTPLocator(cfg.GeoEndpoint)
	}

	var producer *telemetry.KafkaProducer
	if len(cfg.KafkaBrokers) > 0 {
		producer = telemetry.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	wsreg := notify.NewWSRegistry()
	onPosition := func(ev models.PositionEvent) {
		wsreg.Broadcast(ev)
		if producer != nil {
			if err := producer.PublishPosition(ev); err != nil {
				logger.Warn("position publish failed", "vehicle", ev.VehicleID, "error", err)
			}
		}
	}

	sess := app.New(app.Options{
		Store:         st,
		Logger:        logger,
		Notifier:      notifier,
		Locator:       locator,
		Charger:       charger,
		Fare:          cfg.Fare,
		TrackInterval: cfg.TrackInterval,
		TrackSteps:    cfg.TrackSteps,
		ListLoadDelay: cfg.ListLoadDelay,
		GeoTimeout:    cfg.GeoTimeout,
		OnPosition:    onPosition,
	})
	defer sess.Close()

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewServer(sess, wsreg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("shuttle listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
