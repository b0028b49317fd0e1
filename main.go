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

	"github.com/JerryLinyx/NewsSummarizer/config"
	"github.com/JerryLinyx/NewsSummarizer/logging"
	"github.com/JerryLinyx/NewsSummarizer/router"
	"github.com/JerryLinyx/NewsSummarizer/scraper"
	"github.com/JerryLinyx/NewsSummarizer/services"
	"github.com/JerryLinyx/NewsSummarizer/store"
	"github.com/JerryLinyx/NewsSummarizer/summarizer"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(cfg.App.Mode)

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	// Run database migrations
	if err := config.MigrateDB(db); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	generator, err := summarizer.New(cfg.LLM, logger.With("component", "summarizer"))
	if err != nil {
		logger.Error("summarizer init failed", "error", err)
		os.Exit(1)
	}

	articleStore := store.NewArticleStore(db)
	svc, err := services.NewArticleService(services.Deps{
		Fetcher:   scraper.New(cfg.Scraper, nil, logger.With("component", "scraper")),
		Generator: generator,
		Store:     articleStore,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("service init failed", "error", err)
		os.Exit(1)
	}

	r := router.InitRouter(cfg, router.Deps{
		Articles: svc,
		DB:       articleStore,
		Logger:   logger.With("component", "http"),
	})

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.App.Port, "name", cfg.App.Name, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server exiting")
}
