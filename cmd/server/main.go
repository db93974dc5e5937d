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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yusufkecer/calorist-backend/internal/config"
	"github.com/yusufkecer/calorist-backend/internal/db"
	"github.com/yusufkecer/calorist-backend/internal/handler"
	"github.com/yusufkecer/calorist-backend/internal/i18n"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/middleware"
	"github.com/yusufkecer/calorist-backend/internal/repository"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting calorist", "env", cfg.Env, "driver", cfg.DB.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, log); err != nil {
		log.Fatal("migrations failed", "error", err)
	}

	userRepo := repository.NewUserRepository(database)
	measurementRepo := repository.NewMeasurementRepository(database)
	trackingRepo := repository.NewTrackingRepository(database)
	locks := service.NewKeyedMutex()

	lang, _ := i18n.Parse(cfg.Language)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(database, cfg.DB.Driver),
	)

	router := handler.NewRouter(handler.RouterOptions{
		Log:            log,
		Metrics:        middleware.NewMetrics(reg),
		Gatherer:       reg,
		APIKey:         cfg.APIKey,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Language:       lang,
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxy,
		Profile:        service.NewProfileService(userRepo, measurementRepo, locks, log),
		Progress:       service.NewProgressService(userRepo, measurementRepo, locks, log),
		Tracking:       service.NewTrackingService(userRepo, trackingRepo, locks, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", "error", err)
	}
	log.Info("server stopped")
}
