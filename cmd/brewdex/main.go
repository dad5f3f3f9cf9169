package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/app"
	"github.com/kailas-cloud/brewdex/internal/config"
	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
	"github.com/kailas-cloud/brewdex/internal/metrics"
	"github.com/kailas-cloud/brewdex/internal/transport/openbrewerydb"
	"github.com/kailas-cloud/brewdex/internal/usecase/browse"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
	healthuc "github.com/kailas-cloud/brewdex/internal/usecase/health"
	"github.com/kailas-cloud/brewdex/internal/version"
)

func main() {
	var (
		initial   string
		chartFlag string
		once      bool
	)
	flag.StringVar(&initial, "location", "", "initial location, e.g. /?search=dog (default: ui.initial_location)")
	flag.StringVar(&chartFlag, "chart", "", "chart kind: bar or pie (default: ui.chart)")
	flag.BoolVar(&once, "once", false, "render the initial location and exit")
	flag.Parse()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if initial == "" {
		initial = cfg.UI.InitialLocation
	}
	if chartFlag == "" {
		chartFlag = cfg.UI.Chart
	}
	kind, err := chart.Parse(chartFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting brewdex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("directory", cfg.Directory.BaseURL),
		zap.String("location", initial),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterDirectoryMetrics()
	metrics.RegisterScreenMetrics()

	client := openbrewerydb.NewClient(&openbrewerydb.Config{
		BaseURL:   cfg.Directory.BaseURL,
		UserAgent: cfg.Directory.UserAgent,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ops *http.Server
	if cfg.Metrics.Addr != "" {
		ops = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newOpsRouter(healthuc.New(client), logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Starting ops listener", zap.String("addr", cfg.Metrics.Addr))
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Ops listener error", zap.Error(err))
			}
		}()
	}

	cli := newREPL(os.Stdout)
	session := app.New(browse.New(client), detail.New(client), logger,
		app.WithChart(kind),
		app.WithObserver(cli.observe),
	)
	cli.session = session

	if once {
		err = cli.once(ctx, initial)
	} else {
		err = cli.run(ctx, os.Stdin, initial)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Session ended with error", zap.Error(err))
	}

	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Metrics.ShutdownSec)*time.Second)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during ops listener shutdown", zap.Error(err))
		}
	}

	logger.Info("brewdex stopped")
}
