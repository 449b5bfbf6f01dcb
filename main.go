package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/ddrcohort/internal/config"
	"github.com/yumyai/ddrcohort/internal/util"
	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/db"
	"github.com/yumyai/ddrcohort/pkg/handler"
	"github.com/yumyai/ddrcohort/pkg/middle"
	"github.com/yumyai/ddrcohort/pkg/store"
)

const VERSION = "0.1.0"

func main() {

	cfg, dotenv, cfgErr := config.Load()

	// Establish logger
	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if !dotenv {
		logger.Warn("No .env found, using local environment")
	}
	if cfgErr != nil {
		logger.Fatal("Invalid configuration", zap.Error(cfgErr))
	}
	if !util.DirExists(cfg.DataDir) {
		logger.Warn("Data directory does not exist", zap.String("DDR_DATA", cfg.DataDir))
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open table source", zap.String("driver", cfg.TableDriver), zap.String("dsn", cfg.TableDSN))

	ctx := context.Background()

	// sqlite would silently create an empty database
	if cfg.TableDriver == db.DriverSQLite && !util.FileExists(cfg.TableDSN) {
		logger.Fatal("Table database not found", zap.String("DDR_TABLE_DSN", cfg.TableDSN))
	}
	tables, err := db.Open(cfg.TableDriver, cfg.TableDSN)
	if err != nil {
		logger.Fatal("Cannot open table source", zap.Error(err))
	}
	data, err := db.LoadDataset(ctx, tables, cfg.Tables)
	if err != nil {
		logger.Fatal("Cannot load dataset", zap.Error(err))
	}
	// the dataset is cached in memory for the life of the process
	tables.Close()

	durable, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logger.Fatal("Cannot open cohort store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	logger.Info("Cohort store", zap.String("driver", cfg.Store.Driver))

	metrics := middle.NewMetrics()
	app := &handler.AppContext{
		Data:    data,
		Cohorts: store.NewSession(durable),
		Metrics: metrics,
	}

	zl := logger.Logger()
	srv := &http.Server{
		Addr: cfg.Listen,
		Handler: middle.Chain(handler.NewRouter(app),
			middle.RequestIDMiddleware(zl),
			metrics.Middleware,
			middle.LoggingMiddleware(zl),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("listen", cfg.Listen))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Error starting server:", zap.String("error message", err.Error()))
	}
}
