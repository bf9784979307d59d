package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"pxdata/api/polygon"
	"pxdata/config"
	c "pxdata/core"
	"pxdata/data/cache"
	r "pxdata/data/repos"
	"pxdata/export"
)

const (
	instrumentCacheSize = 10_000
	shutdownTimeout     = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "optional yaml config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("pxdata: %v", err)
	}
}

func run(configPath string) error {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var ids *cache.InstrumentIds
	if cfg.CacheTTL > 0 {
		if ids, err = cache.NewInstrumentIds(instrumentCacheSize, cfg.CacheTTL); err != nil {
			return err
		}
		defer ids.Close()
	}

	postgresConnection, err := r.GetPostgresConnection(ctx, cfg.DatabaseUrl, r.Options{
		MaxConns:         cfg.MaxConns,
		StatementTimeout: cfg.StatementTimeout,
		InstrumentIds:    ids,
	})
	if err != nil {
		return err
	}
	defer postgresConnection.Close()

	if cfg.MigrateOnStart {
		if err := postgresConnection.EnsureSchema(ctx); err != nil {
			return err
		}
		logger.Info("schema ensured")
	}

	polygonClient, err := polygon.GetClient(cfg.BaseUrl, cfg.ApiKey, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	sc := c.NewServiceContext(postgresConnection, polygonClient, logger)

	dumper, err := export.NewDumper(cfg.ExportDir, cfg.ExportFormat)
	if err != nil {
		return err
	}
	if dumper != nil {
		sc.Exporter = dumper
		logger.Info("series dumps enabled", zap.String("dir", cfg.ExportDir), zap.String("format", cfg.ExportFormat))
	}

	s := c.GetHttpServer(sc, cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
