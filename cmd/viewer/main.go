package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoViewer/internal/catalog"
	"CryptoViewer/internal/chart"
	"CryptoViewer/internal/config"
	"CryptoViewer/internal/httpapi"
	"CryptoViewer/internal/marketdata"
	"CryptoViewer/internal/presenter"
	"CryptoViewer/internal/recorder"
	"CryptoViewer/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	logrus.Info("CryptoViewer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logrus.SetLevel(level)

	// Init fetcher
	var fetcher marketdata.Fetcher
	if cfg.Market.Source == "mock" {
		fetcher = &marketdata.MockFetcher{}
	} else {
		fetcher = marketdata.NewCoinGeckoFetcher(cfg.Market.BaseURL, cfg.Market.UserAgent, cfg.Proxy, cfg.Timeout())
	}
	logrus.WithField("source", fetcher.Name()).Info("market data source ready")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logrus.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Pipeline
	cat := catalog.New()
	builder := &chart.Builder{
		Color:      cfg.Chart.Color,
		TimeFormat: cfg.Chart.TimeFormat,
		Labels:     chart.AxisLabels{Time: cfg.Chart.TimeTitle, Price: cfg.Chart.PriceTitle},
	}
	viewer := presenter.NewViewer(
		presenter.NewHome(fetcher, cat, rec, cfg.Market.TopLimit),
		presenter.NewDetails(fetcher, cat, builder, rec, cfg.Market.HistoryDays),
	)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, viewer)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		logrus.Fatalf("register cron task: %v", err)
	}
	sched.RefreshNow()
	sched.Start()
	defer sched.Stop()

	// Optional HTTP boundary
	var srv *httpapi.Server
	if cfg.HTTP.Addr != "" {
		gin.SetMode(gin.ReleaseMode)
		srv = httpapi.NewServer(cfg.HTTP.Addr, viewer)
		go func() {
			logrus.WithField("addr", cfg.HTTP.Addr).Info("http server listening")
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Error("http server")
				cancel()
			}
		}()
	}

	// Console on stdin
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		runConsole(presenter.NewConsole(ctx, viewer))
	}()

	logrus.Info("CryptoViewer is running. Type 'help' for commands, Ctrl+C to stop.")

	// Wait for shutdown signal, or end of input when there is no server to keep alive
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	var consoleCh <-chan struct{} = consoleDone
	if srv != nil {
		consoleCh = nil
	}
	select {
	case <-sigCh:
		logrus.Info("shutdown signal received, stopping...")
	case <-consoleCh:
		logrus.Info("input closed, stopping...")
	case <-ctx.Done():
	}

	cancel()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("http server shutdown")
		}
	}
	logrus.Info("CryptoViewer stopped")
}

func runConsole(c *presenter.Console) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if reply := c.HandleCommand(scanner.Text()); reply != "" {
			fmt.Print(reply)
		}
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		logrus.WithError(err).Warn("read console input")
	}
}
