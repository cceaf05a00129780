// Platform server - orchestrates screen capture, OCR, translation and vocabulary tracking
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/screenlex/platform/internal/config"
	"github.com/screenlex/platform/internal/ocr"
	"github.com/screenlex/platform/internal/ollama"
	"github.com/screenlex/platform/internal/pipeline"
	"github.com/screenlex/platform/internal/screen"
	"github.com/screenlex/platform/internal/server"
	"github.com/screenlex/platform/internal/translate"
	"github.com/screenlex/platform/internal/vocab"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	llm := ollama.New(cfg.OllamaBaseURL(), cfg.ConnectTimeout, cfg.ReadTimeout)

	gateway := translate.NewGateway(ctx, cfg, llm)

	store := vocab.NewStore(cfg.VocabularyCapacity)
	if cfg.VocabularyFile != "" {
		if err := store.LoadFile(cfg.VocabularyFile); err != nil {
			slog.Warn("could not load vocabulary file", "path", cfg.VocabularyFile, "error", err)
		}
	}
	manager := vocab.NewManager(store, cfg.MinWordLength, gateway, cfg.TargetLanguage, cfg.AutoTranslate)

	var engine ocr.Engine
	switch cfg.OCREngine {
	case "vision":
		engine = ocr.NewVisionEngine(llm, cfg.VisionModel)
	default:
		engine = ocr.NewTesseractEngine(cfg.TesseractLan)
	}
	slog.Info("ocr engine selected", "engine", engine.Name())

	capturer, err := screen.New()
	if err != nil {
		slog.Error("screen capture unavailable", "error", err)
		os.Exit(1)
	}
	defer capturer.Close()

	region := screen.Region{
		X:      cfg.Region.X,
		Y:      cfg.Region.Y,
		Width:  cfg.Region.Width,
		Height: cfg.Region.Height,
	}
	worker := pipeline.NewWorker(engine)
	proc := pipeline.NewProcessor(capturer, worker, gateway, manager, cfg.CaptureInterval, region, cfg.TargetLanguage)

	srv := server.New(proc, gateway, manager, llm, cfg.TargetLanguage)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("platform server starting", "http", cfg.HTTPAddr, "ollama", cfg.OllamaBaseURL())
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")
	proc.Stop(ctx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}

	if cfg.VocabularyFile != "" {
		if err := store.SaveFile(cfg.VocabularyFile); err != nil {
			slog.Error("could not save vocabulary file", "path", cfg.VocabularyFile, "error", err)
		}
	}
	slog.Info("shutdown complete")
}
