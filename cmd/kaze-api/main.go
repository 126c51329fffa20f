// README: Entry point; loads config, wires the pipeline, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
	"github.com/n3utr7no/Kaze-AI/internal/config"
	httptransport "github.com/n3utr7no/Kaze-AI/internal/http"
	"github.com/n3utr7no/Kaze-AI/internal/modules/itinerary"
	"github.com/n3utr7no/Kaze-AI/internal/modules/routing"
	"github.com/n3utr7no/Kaze-AI/internal/service"
	"github.com/n3utr7no/Kaze-AI/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Env)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completion, err := ai.NewClient(ctx, cfg.AI)
	if err != nil {
		slog.Error("init completion client", "error", err)
		os.Exit(1)
	}
	retrying := ai.NewRetryingClient(completion)

	resolver := weather.NewResolver(weather.NewClient(cfg.Weather))

	planner := service.NewPlanner(
		routing.NewService(retrying, cfg.AI.RoutingModel),
		itinerary.NewGenerator(retrying, cfg.AI.GenerationModel),
		itinerary.NewTranslator(retrying, cfg.AI.RoutingModel),
		resolver,
	)
	transcriber := service.NewTranscriber(retrying, cfg.AI.TranscribeModel, cfg.AI.RoutingModel)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:        planner,
		Transcriber:    transcriber,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		slog.Info("listening", "addr", cfg.HTTP.Addr, "provider", cfg.AI.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

// setupLogger picks tinted console logging for development and JSON for
// production, and installs the result as the process default.
func setupLogger(env string) {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}
